package domain

import (
	"encoding/json"
	"errors"
)

var (
	ErrNoImageFile    = errors.New("no image file provided")
	ErrNoSelectedFile = errors.New("no selected file")
	ErrInvalidFile    = errors.New("invalid file type")
	ErrNoIngredients  = errors.New("no ingredients provided")
)

type (
	AnalyzeFoodResponse struct {
		Ingredients []string `json:"ingredients"`
		ImageURL    string   `json:"image_url"`
	}

	AnalyzeHealthRequest struct {
		Ingredients []string `json:"ingredients"`
		ImageURL    string   `json:"image_url"`
	}

	// ScanResponse carries a stored assessment back to the client. The
	// ingredients and analysis blobs are returned exactly as persisted,
	// so older rows with a different analysis shape still decode.
	ScanResponse struct {
		ID          string          `json:"id"`
		Timestamp   string          `json:"timestamp"`
		Ingredients json.RawMessage `json:"ingredients"`
		Analysis    json.RawMessage `json:"analysis"`
		ImageURL    string          `json:"image_url"`
	}
)
