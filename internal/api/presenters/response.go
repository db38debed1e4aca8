package presenters

import "github.com/gofiber/fiber/v2"

// SuccessResponse writes the payload with success set, matching the
// client contract: every success body carries "success": true.
func SuccessResponse(c *fiber.Ctx, status int, payload fiber.Map) error {
	if payload == nil {
		payload = fiber.Map{}
	}
	payload["success"] = true
	return c.Status(status).JSON(payload)
}

// ErrorResponse writes {"error": "<message>"} with the given status.
func ErrorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
