package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"simplimed/internal/domain"
	"simplimed/internal/port"
)

const (
	// maxInputRunes caps prompt size to bound cost, latency, and provider
	// request limits. Truncation is lossy by design.
	maxInputRunes    = 4000
	truncationMarker = "...[truncated]"

	maxOutputTokens = 1500
	temperature     = 0.3
)

// AnalysisOutput pairs the parsed analysis with the provider's reported
// token usage.
type AnalysisOutput struct {
	Analysis   domain.AnalysisResult
	TokensUsed int
}

// AnalysisService turns extracted report text into a structured,
// patient-readable interpretation.
type AnalysisService interface {
	Analyze(ctx context.Context, text string) (*AnalysisOutput, error)
}

type analysisService struct {
	completer port.ChatCompleter // nil means the feature is degraded
}

// NewAnalysisService creates an AnalysisService. completer may be nil when no
// provider credentials are configured; Analyze then fails locally with
// domain.ErrAPIKeyMissing.
func NewAnalysisService(completer port.ChatCompleter) AnalysisService {
	return &analysisService{completer: completer}
}

func (s *analysisService) Analyze(ctx context.Context, text string) (*AnalysisOutput, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoText
	}
	if s.completer == nil {
		return nil, domain.ErrAPIKeyMissing
	}

	truncated := truncate(text, maxInputRunes)
	if len(truncated) != len(text) {
		log.Printf("analysisService.Analyze: input truncated to %d characters", maxInputRunes)
	}

	resp, err := s.completer.Complete(ctx, port.CompletionRequest{
		System:      systemMessage,
		Prompt:      buildReportPrompt(truncated),
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing report: %w", err)
	}

	raw := strings.TrimSpace(resp.Content)

	var analysis domain.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		// Malformed model output is never an error for the caller: downgrade
		// to a schema-valid fallback the consumer can always render.
		log.Printf("analysisService.Analyze: unparseable model output: %v", err)
		return &AnalysisOutput{
			Analysis:   fallbackAnalysis(raw),
			TokensUsed: resp.TokensUsed,
		}, nil
	}

	analysis.Normalize()
	if analysis.Disclaimer == "" {
		analysis.Disclaimer = standardDisclaimer
	}

	log.Printf("analysisService.Analyze: analysis completed (%d tokens)", resp.TokensUsed)
	return &AnalysisOutput{
		Analysis:   analysis,
		TokensUsed: resp.TokensUsed,
	}, nil
}

// truncate cuts text to at most limit runes and appends the truncation
// marker when anything was cut.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + truncationMarker
}

func fallbackAnalysis(raw string) domain.AnalysisResult {
	return domain.AnalysisResult{
		Summary:         "AI analysis completed, but response format needs adjustment.",
		Parameters:      []domain.AnalysisParameter{},
		Recommendations: []string{"Please review the original report with a healthcare professional."},
		Disclaimer:      standardDisclaimer,
		Degraded:        true,
		RawResponse:     raw,
	}
}
