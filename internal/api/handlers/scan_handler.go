package handlers

import (
	"errors"

	"nutrify-backend/domain"
	"nutrify-backend/internal/api/presenters"
	"nutrify-backend/pkg/scan"

	"github.com/gofiber/fiber/v2"
)

type (
	ScanHandler interface {
		AnalyzeFood(c *fiber.Ctx) error
		AnalyzeHealth(c *fiber.Ctx) error
		History(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
	}
)

func NewScanHandler(scanService scan.ScanService) ScanHandler {
	return &scanHandler{scanService: scanService}
}

func (h *scanHandler) AnalyzeFood(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrNoImageFile)
	}
	if file.Filename == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrNoSelectedFile)
	}

	res, err := h.scanService.AnalyzeFood(c.Context(), file)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFile) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ingredients": res.Ingredients,
		"image_url":   res.ImageURL,
	})
}

func (h *scanHandler) AnalyzeHealth(c *fiber.Ctx) error {
	req := new(domain.AnalyzeHealthRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrInvalidBody)
	}

	userID, _ := c.Locals("user_id").(string)

	analysis, err := h.scanService.AnalyzeHealth(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoIngredients) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{"analysis": analysis})
}

// History returns the 20 most recent scans for the session's user,
// newest first, or an empty list for anonymous callers.
func (h *scanHandler) History(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	history, err := h.scanService.History(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{"history": history})
}
