package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/applicant-selector/internal/config"
	"github.com/jonathan/applicant-selector/internal/db"
	"github.com/jonathan/applicant-selector/internal/events"
	"github.com/jonathan/applicant-selector/internal/extraction"
	"github.com/jonathan/applicant-selector/internal/llm"
	"github.com/jonathan/applicant-selector/internal/nlp"
	"github.com/jonathan/applicant-selector/internal/pipeline"
	"github.com/jonathan/applicant-selector/internal/scoring"
	"github.com/jonathan/applicant-selector/internal/storage"
)

// app holds the components shared by the subcommands
type app struct {
	cfg       *config.Config
	processor *pipeline.Processor
	database  *db.DB
	closers   []func()
}

// appOptions selects which outward-facing components are wired
type appOptions struct {
	persist bool // connect the database, upload store and event publisher
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	a := &app{cfg: cfg}

	vocab := extraction.DefaultVocabulary()
	if cfg.VocabularyFile != "" {
		loaded, err := extraction.LoadVocabulary(cfg.VocabularyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load vocabulary: %w", err)
		}
		vocab = loaded
	}

	extractorOpts := []extraction.Option{extraction.WithMatchTimeout(cfg.NLPTimeout.Std())}
	matcher, err := a.skillMatcher(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if matcher != nil {
		extractorOpts = append(extractorOpts, extraction.WithSkillMatcher(matcher))
	}
	extractor := extraction.NewExtractor(vocab, extractorOpts...)
	cover := scoring.NewCoverLetterScorer(vocab, nil)

	var pipelineOpts []pipeline.Option
	if opts.persist {
		if err := a.connectPersistence(ctx, &pipelineOpts); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.processor = pipeline.NewProcessor(extractor, cover, pipelineOpts...)
	return a, nil
}

// skillMatcher returns the configured remote matcher, or nil for local vocabulary matching
func (a *app) skillMatcher(ctx context.Context) (extraction.SkillMatcher, error) {
	switch a.cfg.SkillMatcher {
	case config.MatcherHTTP:
		log.Printf("[nlp] Using NLP service at %s", a.cfg.NLPServiceURL)
		return nlp.NewHTTPMatcher(a.cfg.NLPServiceURL, &http.Client{}), nil
	case config.MatcherGemini:
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), a.cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				log.Printf("[nlp] Failed to close Gemini client: %v", err)
			}
		})
		log.Printf("[nlp] Using Gemini skill matcher")
		return nlp.NewGeminiMatcher(client), nil
	default:
		return nil, nil
	}
}

func (a *app) connectPersistence(ctx context.Context, opts *[]pipeline.Option) error {
	database, err := openDB(ctx, a.cfg)
	if err != nil {
		return err
	}
	a.database = database
	a.closers = append(a.closers, database.Close)

	store, err := openStore(ctx, a.cfg)
	if err != nil {
		return err
	}

	publisher, err := openPublisher(a.cfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() {
		if err := publisher.Close(); err != nil {
			log.Printf("[events] Failed to close publisher: %v", err)
		}
	})

	*opts = append(*opts,
		pipeline.WithSink(database),
		pipeline.WithStore(store),
		pipeline.WithPublisher(publisher),
	)
	return nil
}

// Close releases everything newApp opened, most recent first
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == config.StorageS3 {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 store: %w", err)
		}
		log.Printf("[storage] Storing uploads in bucket %s", cfg.S3Bucket)
		return store, nil
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	log.Printf("[storage] Storing uploads in %s", store.Dir())
	return store, nil
}

func openPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.RabbitMQURL == "" {
		return events.NoopPublisher{}, nil
	}
	publisher, err := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return publisher, nil
}
