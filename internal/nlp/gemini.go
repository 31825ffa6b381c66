package nlp

import (
	"context"
	"fmt"

	"github.com/jonathan/applicant-selector/internal/extraction"
	"github.com/jonathan/applicant-selector/internal/llm"
)

// GeminiMatcher asks an LLM which candidate skills a document demonstrates
type GeminiMatcher struct {
	client llm.Client
	tier   llm.ModelTier
}

var _ extraction.SkillMatcher = (*GeminiMatcher)(nil)

// NewGeminiMatcher creates a matcher backed by client
func NewGeminiMatcher(client llm.Client) *GeminiMatcher {
	return &GeminiMatcher{client: client, tier: llm.TierLite}
}

// MatchSkills implements extraction.SkillMatcher. Skills the model returns
// that are not in candidates are dropped; the rest use the candidate spelling.
func (m *GeminiMatcher) MatchSkills(ctx context.Context, text string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return []string{}, nil
	}

	raw, err := m.client.GenerateJSON(ctx, llm.SkillMatchPrompt(text, candidates), m.tier)
	if err != nil {
		return nil, fmt.Errorf("skill matching failed: %w", err)
	}

	parsed, err := decodeResponse([]byte(raw))
	if err != nil {
		return nil, err
	}

	return restrictToCandidates(parsed.Skills, candidates), nil
}
