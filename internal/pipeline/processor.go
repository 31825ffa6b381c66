// Package pipeline orchestrates applicant intake: documents are loaded,
// profiled and scored, then the resulting record is stored and announced.
package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/applicant-selector/internal/events"
	"github.com/jonathan/applicant-selector/internal/extraction"
	"github.com/jonathan/applicant-selector/internal/ingestion"
	"github.com/jonathan/applicant-selector/internal/scoring"
	"github.com/jonathan/applicant-selector/internal/storage"
	"github.com/jonathan/applicant-selector/internal/types"
)

// Upload field names, matching the multipart form
const (
	FieldResume      = "resume"
	FieldCoverLetter = "coverLetter"
)

// Upload is one submitted file
type Upload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Submission is a complete application: either document may be absent
type Submission struct {
	Resume          *Upload
	CoverLetter     *Upload
	AssessmentScore *int
}

// Sink persists scored applicants
type Sink interface {
	CreateApplicant(ctx context.Context, a *types.ScoredApplicant) (uuid.UUID, error)
}

// StoredDocument records where an uploaded file was kept
type StoredDocument struct {
	Field    string              `json:"field"`
	Key      string              `json:"key"`
	Location string              `json:"location"`
	Metadata *ingestion.Metadata `json:"metadata"`
}

// Result is the outcome of processing a submission
type Result struct {
	Applicant *types.ScoredApplicant  `json:"applicant"`
	Extracted *types.ExtractedProfile `json:"extracted"`
	Breakdown scoring.Breakdown       `json:"breakdown"`
	Documents []StoredDocument        `json:"documents,omitempty"`
}

// Processor runs submissions through extraction and scoring
type Processor struct {
	extractor   *extraction.Extractor
	quality     *scoring.QualityScorer
	coverLetter *scoring.CoverLetterScorer
	store       storage.Store
	sink        Sink
	publisher   events.Publisher
	now         func() time.Time
}

// Option configures a Processor
type Option func(*Processor)

// WithStore keeps the original upload bytes in store
func WithStore(store storage.Store) Option {
	return func(p *Processor) {
		p.store = store
	}
}

// WithSink persists every processed applicant to sink
func WithSink(sink Sink) Option {
	return func(p *Processor) {
		p.sink = sink
	}
}

// WithPublisher announces every persisted applicant on publisher
func WithPublisher(pub events.Publisher) Option {
	return func(p *Processor) {
		if pub != nil {
			p.publisher = pub
		}
	}
}

// WithClock overrides the time source used for placeholders and events
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProcessor creates a processor. extractor selects the default extractor when nil.
func NewProcessor(extractor *extraction.Extractor, cover *scoring.CoverLetterScorer, opts ...Option) *Processor {
	if extractor == nil {
		extractor = extraction.NewExtractor(nil)
	}
	if cover == nil {
		cover = scoring.NewCoverLetterScorer(extractor.Vocabulary(), nil)
	}
	p := &Processor{
		extractor:   extractor,
		quality:     scoring.NewQualityScorer(extractor.Vocabulary()),
		coverLetter: cover,
		publisher:   events.NoopPublisher{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluate loads and scores a submission without storing anything.
func (p *Processor) Evaluate(ctx context.Context, sub Submission) (*Result, error) {
	if sub.Resume == nil && sub.CoverLetter == nil {
		return nil, &MissingDocumentError{}
	}

	var resumeDoc, coverDoc *types.RawDocument
	var err error
	if sub.Resume != nil {
		if resumeDoc, err = ingestion.Load(sub.Resume.Filename, sub.Resume.MIMEType, sub.Resume.Data); err != nil {
			return nil, err
		}
	}
	if sub.CoverLetter != nil {
		if coverDoc, err = ingestion.Load(sub.CoverLetter.Filename, sub.CoverLetter.MIMEType, sub.CoverLetter.Data); err != nil {
			return nil, err
		}
	}

	profile := &types.ExtractedProfile{Skills: []string{}}
	coverScore := scoring.DefaultCoverLetterScore

	g, gCtx := errgroup.WithContext(ctx)
	if resumeDoc != nil {
		g.Go(func() error {
			extracted := p.extractor.Extract(gCtx, resumeDoc.Text)
			extracted.ResumeQualityScore = p.quality.Score(resumeDoc.Text, extracted)
			profile = extracted
			return nil
		})
	}
	if coverDoc != nil {
		g.Go(func() error {
			coverScore = p.coverLetter.Analyze(coverDoc.Text).Score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	qualityScore := scoring.DefaultResumeQualityScore
	if resumeDoc != nil {
		qualityScore = profile.ResumeQualityScore
	}

	breakdown := scoring.Score(scoring.CompositeInput{
		SkillCount:         len(profile.Skills),
		ExperienceYears:    profile.ExperienceYears,
		HasEducation:       profile.Education != nil,
		AssessmentScore:    sub.AssessmentScore,
		ResumeQualityScore: qualityScore,
		CoverLetterScore:   coverScore,
	})

	return &Result{
		Applicant: p.buildApplicant(profile, breakdown),
		Extracted: profile,
		Breakdown: breakdown,
	}, nil
}

// Process evaluates a submission, keeps its uploads, persists the applicant
// and publishes an event. Uploads are removed again if persisting fails.
// A publish failure is logged and does not fail the submission.
func (p *Processor) Process(ctx context.Context, sub Submission) (*Result, error) {
	result, err := p.Evaluate(ctx, sub)
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		docs, err := p.storeUploads(ctx, sub)
		if err != nil {
			return nil, err
		}
		result.Documents = docs
	}

	if p.sink != nil {
		if _, err := p.sink.CreateApplicant(ctx, result.Applicant); err != nil {
			p.discardUploads(ctx, result.Documents)
			return nil, &PersistError{Cause: err}
		}
		log.Printf("[pipeline] Created applicant %s with %d skills (overall %.2f, %s)",
			result.Applicant.ID, len(result.Applicant.Skills), result.Applicant.OverallScore, result.Applicant.Status)

		event := events.NewApplicantScored(result.Applicant, p.now())
		if err := p.publisher.PublishApplicantScored(ctx, event); err != nil {
			log.Printf("[events] Failed to publish applicant %s: %v", result.Applicant.ID, err)
		}
	}

	return result, nil
}

func (p *Processor) buildApplicant(profile *types.ExtractedProfile, b scoring.Breakdown) *types.ScoredApplicant {
	a := &types.ScoredApplicant{
		FullName:           types.DefaultFullName,
		Phone:              profile.Phone,
		Education:          profile.Education,
		ExperienceYears:    profile.ExperienceYears,
		SkillsScore:        b.Skills,
		ExperienceScore:    b.Experience,
		EducationScore:     b.Education,
		AssessmentScore:    b.Assessment,
		ResumeQualityScore: b.ResumeQuality,
		CoverLetterScore:   b.CoverLetter,
		OverallScore:       b.OverallScore,
		Status:             b.Status,
		MotivationLevel:    types.DefaultMotivationLevel,
		Availability:       types.DefaultAvailability,
		Skills:             append([]string{}, profile.Skills...),
	}
	if profile.Name != nil {
		a.FullName = *profile.Name
	}
	if profile.Email != nil {
		a.Email = *profile.Email
	} else {
		a.Email = PlaceholderEmail(p.now())
	}
	return a
}

func (p *Processor) storeUploads(ctx context.Context, sub Submission) ([]StoredDocument, error) {
	var docs []StoredDocument
	for _, item := range []struct {
		field  string
		upload *Upload
	}{
		{FieldResume, sub.Resume},
		{FieldCoverLetter, sub.CoverLetter},
	} {
		if item.upload == nil {
			continue
		}
		mediaType, _ := ingestion.DetectMediaType(item.upload.Filename, item.upload.MIMEType)
		key := storage.NewKey(item.field, item.upload.Filename, p.now())
		location, err := p.store.Put(ctx, key, item.upload.Data, item.upload.MIMEType)
		if err != nil {
			p.discardUploads(ctx, docs)
			return nil, &StorageError{Field: item.field, Cause: err}
		}
		docs = append(docs, StoredDocument{
			Field:    item.field,
			Key:      key,
			Location: location,
			Metadata: ingestion.NewMetadata(item.upload.Filename, mediaType, item.upload.Data),
		})
	}
	return docs, nil
}

func (p *Processor) discardUploads(ctx context.Context, docs []StoredDocument) {
	for _, doc := range docs {
		if err := p.store.Delete(ctx, doc.Key); err != nil {
			log.Printf("[pipeline] Failed to remove stored upload %s: %v", doc.Location, err)
		}
	}
}

// PlaceholderEmail synthesizes a unique address for applicants whose resume has none.
func PlaceholderEmail(now time.Time) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("applicant_%d@temp.com", now.UnixMilli())
	}
	return fmt.Sprintf("applicant_%d_%s@temp.com", now.UnixMilli(), hex.EncodeToString(b))
}
