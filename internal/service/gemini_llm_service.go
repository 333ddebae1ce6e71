package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/quizbank/config"
	"github.com/lshigami/quizbank/internal/model"
	apperrors "github.com/lshigami/quizbank/internal/pkg/errors"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService asks a language model to review a multiple-choice question.
type GeminiLLMService interface {
	Available() bool
	ReviewQuestion(ctx context.Context, question *model.Question) (verdict string, feedback string, err error)
	Close() error
}

type geminiLLMService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question review will only run structural checks.")
		return &geminiLLMService{}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client, model: client.GenerativeModel(cfg.Gemini.Model)}, nil
}

func (s *geminiLLMService) Available() bool {
	return s.model != nil
}

func (s *geminiLLMService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *geminiLLMService) ReviewQuestion(ctx context.Context, question *model.Question) (string, string, error) {
	if s.model == nil {
		return "", "", fmt.Errorf("%w: gemini client not initialized", apperrors.ErrAIUnavailable)
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(buildReviewPrompt(question)))
	if err != nil {
		log.Error().Err(err).Str("questionID", question.ID.String()).Msg("Gemini API error during question review")
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrAIUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", "", fmt.Errorf("%w: gemini returned no content", apperrors.ErrAIUnavailable)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", "", fmt.Errorf("%w: gemini returned no text content", apperrors.ErrAIUnavailable)
	}

	verdict, feedback, err := parseVerdictAndFeedback(text.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text.String()).Msg("Failed to parse verdict from Gemini response")
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrAIUnavailable, err)
	}
	return verdict, feedback, nil
}

func buildReviewPrompt(question *model.Question) string {
	var b strings.Builder
	b.WriteString("You are reviewing a multiple-choice quiz question written by a quiz author.\n")
	b.WriteString("Check that the question is clear, that exactly one alternative is correct, ")
	b.WriteString("and that the alternative marked correct really is correct.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(question.Description)
	b.WriteString("\n---\nAlternatives:\n")
	for i, alt := range question.Alternatives {
		mark := " "
		if alt.IsCorrect {
			mark = "x"
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, mark, alt.Text)
	}
	b.WriteString(`
Format your response strictly as:
Verdict: OK or ISSUES
Feedback:
[Short explanation, listing each problem and how to fix it]
`)
	return b.String()
}

func parseVerdictAndFeedback(raw string) (verdict string, feedback string, err error) {
	const verdictPrefix = "Verdict:"
	const feedbackPrefix = "Feedback:"

	verdictIndex := strings.Index(raw, verdictPrefix)
	if verdictIndex == -1 {
		return "", raw, fmt.Errorf("response does not contain %q prefix", verdictPrefix)
	}

	rest := raw[verdictIndex+len(verdictPrefix):]
	line := rest
	if end := strings.Index(rest, "\n"); end != -1 {
		line = rest[:end]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", raw, fmt.Errorf("empty verdict")
	}
	verdict = strings.ToUpper(strings.Trim(fields[0], ".,"))
	if verdict != "OK" && verdict != "ISSUES" {
		return "", raw, fmt.Errorf("unexpected verdict %q", fields[0])
	}

	if idx := strings.Index(rest, feedbackPrefix); idx != -1 {
		feedback = strings.TrimSpace(rest[idx+len(feedbackPrefix):])
	} else if end := strings.Index(rest, "\n"); end != -1 {
		feedback = strings.TrimSpace(rest[end+1:])
	}
	return verdict, feedback, nil
}
