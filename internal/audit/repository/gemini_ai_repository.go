package repository

import (
	"context"
	"fmt"
	"strings"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/pkg/logger"

	"google.golang.org/genai"
)

// AIRepository produces natural-language assessments from committed records.
type AIRepository interface {
	GenerateRiskSummary(ctx context.Context, companyName string, set *RecordSet) (string, error)
}

// geminiAIRepository is an AIRepository backed by the Google Gemini API.
type geminiAIRepository struct {
	cfg         config.Gemini
	logger      *logger.Logger
	genAiClient *genai.Client
}

// NewGeminiAIRepository creates a new Gemini-backed AI repository.
func NewGeminiAIRepository(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client) AIRepository {
	return &geminiAIRepository{
		cfg:         cfg,
		logger:      log,
		genAiClient: genAiClient,
	}
}

// GenerateRiskSummary renders the record set into the summary prompt and asks
// the model for an assessment.
func (r *geminiAIRepository) GenerateRiskSummary(ctx context.Context, companyName string, set *RecordSet) (string, error) {
	prompt := BuildRiskSummaryPrompt(companyName, set)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Model, contents, nil)
	if err != nil {
		r.logger.ErrorContext(ctx, "Gemini request failed",
			logger.StringField("company", companyName), logger.ErrorField(err))
		return "", fmt.Errorf("generate risk summary: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no content in Gemini response for %q", companyName)
	}
	return text, nil
}
