package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"nutrify-backend/domain"
	"nutrify-backend/entities"
	"nutrify-backend/internal/utils"
	"nutrify-backend/internal/utils/storage"
	"nutrify-backend/pkg/gemini"
	"nutrify-backend/pkg/user"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

type (
	ScanService interface {
		AnalyzeFood(ctx context.Context, file *multipart.FileHeader) (domain.AnalyzeFoodResponse, error)
		AnalyzeHealth(ctx context.Context, req domain.AnalyzeHealthRequest, userID string) (json.RawMessage, error)
		History(ctx context.Context, userID string) ([]domain.ScanResponse, error)
	}

	scanService struct {
		scanRepository ScanRepository
		userRepository user.UserRepository
		storage        storage.Storage
		gateway        gemini.Generator
		logger         *slog.Logger
	}
)

func NewScanService(
	scanRepository ScanRepository,
	userRepository user.UserRepository,
	store storage.Storage,
	gateway gemini.Generator,
	logger *slog.Logger,
) ScanService {
	return &scanService{
		scanRepository: scanRepository,
		userRepository: userRepository,
		storage:        store,
		gateway:        gateway,
		logger:         logger,
	}
}

// AnalyzeFood stores the uploaded photo and asks the model for the
// ingredient list. The stored file is kept around as the image reference
// for any history record written later; no scan row is created here.
func (s *scanService) AnalyzeFood(ctx context.Context, file *multipart.FileHeader) (domain.AnalyzeFoodResponse, error) {
	if !storage.IsAllowedImage(file.Filename) {
		return domain.AnalyzeFoodResponse{}, domain.ErrInvalidFile
	}

	// Timestamp prefix keeps repeated uploads of the same filename apart.
	name := fmt.Sprintf("%d_%s", time.Now().Unix(), utils.SecureFilename(file.Filename))
	imageURL, err := s.storage.Save(ctx, name, file)
	if err != nil {
		return domain.AnalyzeFoodResponse{}, fmt.Errorf("storing upload: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return domain.AnalyzeFoodResponse{}, fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return domain.AnalyzeFoodResponse{}, fmt.Errorf("reading upload: %w", err)
	}

	text, err := s.gateway.Generate(ctx,
		genai.ImageData(imageFormat(file.Filename), data),
		genai.Text(ingredientsPrompt),
	)
	if err != nil {
		return domain.AnalyzeFoodResponse{}, err
	}

	var ingredients []string
	if err := gemini.DecodeJSON(text, &ingredients); err != nil {
		return domain.AnalyzeFoodResponse{}, err
	}

	return domain.AnalyzeFoodResponse{
		Ingredients: ingredients,
		ImageURL:    imageURL,
	}, nil
}

// AnalyzeHealth asks the model for a structured assessment of the
// ingredient list. The reply is validated as JSON only and passed through
// opaquely. For authenticated callers the result is also persisted; a
// failed save is logged and discarded so a completed analysis still
// reaches the client.
func (s *scanService) AnalyzeHealth(ctx context.Context, req domain.AnalyzeHealthRequest, userID string) (json.RawMessage, error) {
	if len(req.Ingredients) == 0 {
		return nil, domain.ErrNoIngredients
	}

	prompt := fmt.Sprintf(healthPromptTemplate,
		strings.Join(req.Ingredients, ", "),
		s.userContext(ctx, userID),
	)

	text, err := s.gateway.Generate(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var analysis json.RawMessage
	if err := gemini.DecodeJSON(text, &analysis); err != nil {
		return nil, err
	}

	if userID != "" {
		s.saveScan(ctx, userID, req, analysis)
	}

	return analysis, nil
}

func (s *scanService) History(ctx context.Context, userID string) ([]domain.ScanResponse, error) {
	if userID == "" {
		return []domain.ScanResponse{}, nil
	}

	scans, err := s.scanRepository.GetScansByUserID(ctx, userID, domain.HistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]domain.ScanResponse, 0, len(scans))
	for _, sc := range scans {
		history = append(history, domain.ScanResponse{
			ID:          sc.ID.String(),
			Timestamp:   sc.CreatedAt.UTC().Format(time.RFC3339),
			Ingredients: json.RawMessage(sc.Ingredients),
			Analysis:    json.RawMessage(sc.AnalysisJSON),
			ImageURL:    sc.ImageURL,
		})
	}
	return history, nil
}

// userContext builds the profile sentence added to the health prompt for
// authenticated callers. Missing profile data or a lookup failure just
// means no personalization.
func (s *scanService) userContext(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil || u.Age == nil || u.Gender == "" {
		return ""
	}
	return fmt.Sprintf("The user is a %d year old %s.", *u.Age, u.Gender)
}

func (s *scanService) saveScan(ctx context.Context, userID string, req domain.AnalyzeHealthRequest, analysis json.RawMessage) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		s.logger.Error("saving scan failed", "error", err, "user_id", userID)
		return
	}

	ingredients, err := json.Marshal(req.Ingredients)
	if err != nil {
		s.logger.Error("saving scan failed", "error", err, "user_id", userID)
		return
	}

	record := &entities.Scan{
		ID:           uuid.New(),
		UserID:       &uid,
		Ingredients:  string(ingredients),
		AnalysisJSON: string(analysis),
		ImageURL:     req.ImageURL,
	}

	if err := s.scanRepository.CreateScan(ctx, record); err != nil {
		s.logger.Error("saving scan failed", "error", err, "user_id", userID)
	}
}

func imageFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	default:
		return "jpeg"
	}
}
