package service

import (
	"context"
	"log"
	"strings"

	"propfinder/internal/model"
)

// IntentParser converts free-text input into a structured filter object. The
// delegated language-model tier is tried first; any failure there falls
// through to the deterministic heuristic extractor and is never surfaced to
// the caller.
type IntentParser struct {
	aiClient AIClient
}

// NewIntentParser creates a new intent parser. A nil client disables the
// language-model tier entirely.
func NewIntentParser(aiClient AIClient) *IntentParser {
	return &IntentParser{
		aiClient: aiClient,
	}
}

// Parse extracts structured filters or a conversational reply from the input.
func (p *IntentParser) Parse(ctx context.Context, text string) *model.IntentResult {
	text = strings.TrimSpace(text)

	if p.aiClient != nil && p.aiClient.IsEnabled() {
		if result, err := p.parseWithAI(ctx, text); err == nil {
			return result
		} else {
			log.Printf("AI intent parsing failed: %v, falling back to heuristic", err)
		}
	}

	return p.parseHeuristic(text)
}

// parseWithAI runs the delegated tier. The result carries the conversational
// text verbatim when present, and the filters only when at least one
// recognized key is populated.
func (p *IntentParser) parseWithAI(ctx context.Context, text string) (*model.IntentResult, error) {
	aiResult, err := p.aiClient.ParseIntent(ctx, text)
	if err != nil {
		return nil, err
	}

	result := &model.IntentResult{Provider: model.ProviderOpenAI}
	if aiResult.Text != "" {
		result.Text = aiResult.Text
	}
	if aiResult.Filters.IsSearchable() {
		result.Filters = aiResult.Filters
	}
	return result, nil
}

// parseHeuristic runs the deterministic fallback tier.
func (p *IntentParser) parseHeuristic(text string) *model.IntentResult {
	filters := HeuristicExtract(text)
	if filters.IsSearchable() {
		return &model.IntentResult{
			Provider: model.ProviderFallback,
			Filters:  filters,
		}
	}

	return &model.IntentResult{
		Provider: model.ProviderFallback,
		Text:     clarifyText,
	}
}
