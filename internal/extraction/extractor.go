package extraction

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/applicant-selector/internal/types"
)

// DefaultMatchTimeout bounds a single remote skill matching call
const DefaultMatchTimeout = 10 * time.Second

// Extractor runs every field extractor over a document.
// The zero value is not usable; construct with NewExtractor.
type Extractor struct {
	vocab        *Vocabulary
	matcher      SkillMatcher
	matchTimeout time.Duration
	now          func() time.Time
}

// Option configures an Extractor
type Option func(*Extractor)

// WithSkillMatcher delegates skill matching to m instead of the local vocabulary
func WithSkillMatcher(m SkillMatcher) Option {
	return func(e *Extractor) {
		e.matcher = m
	}
}

// WithMatchTimeout sets the per-call timeout for the skill matcher
func WithMatchTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.matchTimeout = d
		}
	}
}

// WithClock overrides the clock used to resolve open-ended date ranges
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor over vocab, using the default vocabulary when nil
func NewExtractor(vocab *Vocabulary, opts ...Option) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	e := &Extractor{
		vocab:        vocab,
		matchTimeout: DefaultMatchTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vocabulary returns the vocabulary the extractor was built with
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Extract builds a profile from text. ResumeQualityScore is left at zero for the
// quality scorer to fill in. Extraction never fails: missing fields are nil.
func (e *Extractor) Extract(ctx context.Context, text string) *types.ExtractedProfile {
	return &types.ExtractedProfile{
		Name:            e.vocab.ExtractName(text),
		Email:           e.vocab.ExtractEmail(text),
		Phone:           ExtractPhone(text),
		Education:       ExtractEducation(text),
		ExperienceYears: extractExperience(text, e.now()),
		Skills:          e.Skills(ctx, text),
	}
}

// Skills matches skills with the configured matcher, or the local vocabulary
// when none is set. A matcher failure is logged and yields an empty list.
func (e *Extractor) Skills(ctx context.Context, text string) []string {
	if e.matcher == nil {
		return e.vocab.MatchSkills(text)
	}

	ctx, cancel := context.WithTimeout(ctx, e.matchTimeout)
	defer cancel()

	skills, err := e.matcher.MatchSkills(ctx, text, e.vocab.SemanticSkills())
	if err != nil {
		log.Printf("[skills] Skill matcher failed: %v", err)
		return []string{}
	}
	return dedupe(skills)
}

// dedupe drops blank and repeated skills, keeping first occurrence order
func dedupe(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
