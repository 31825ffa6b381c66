// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Skill matcher backends
const (
	MatcherLocal  = "local"
	MatcherHTTP   = "http"
	MatcherGemini = "gemini"
)

// Upload storage backends
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config represents the service configuration. It can be loaded from a JSON
// file and is then overlaid with environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Skill matching
	SkillMatcher   string   `json:"skill_matcher,omitempty" validate:"omitempty,oneof=local http gemini"`
	NLPServiceURL  string   `json:"nlp_service_url,omitempty" validate:"omitempty,url"`
	NLPTimeout     Duration `json:"nlp_timeout,omitempty" validate:"gte=0"`
	GeminiAPIKey   string   `json:"gemini_api_key,omitempty"`
	VocabularyFile string   `json:"vocabulary_file,omitempty"` // JSON vocabulary override

	// Upload storage
	StorageBackend string `json:"storage_backend,omitempty" validate:"omitempty,oneof=local s3"`
	UploadDir      string `json:"upload_dir,omitempty"`
	S3Bucket       string `json:"s3_bucket,omitempty"`
	S3Endpoint     string `json:"s3_endpoint,omitempty" validate:"omitempty,url"`
	S3Region       string `json:"s3_region,omitempty"`
	S3AccessKey    string `json:"s3_access_key,omitempty"`
	S3SecretKey    string `json:"s3_secret_key,omitempty"`

	// Events
	RabbitMQURL   string `json:"rabbitmq_url,omitempty" validate:"omitempty,url"`
	RabbitMQQueue string `json:"rabbitmq_queue,omitempty"`

	// Scoring
	DefaultAssessmentScore *int `json:"default_assessment_score,omitempty" validate:"omitempty,min=0,max=100"`

	// Rate limiting of the upload endpoint
	UploadRatePerMinute int `json:"upload_rate_per_minute,omitempty" validate:"gte=0"`
	UploadBurst         int `json:"upload_burst,omitempty" validate:"gte=0"`
}

// Defaults returns the configuration used for any value left unset
func Defaults() Config {
	return Config{
		Port:                5000,
		SkillMatcher:        MatcherLocal,
		NLPTimeout:          Duration(10 * time.Second),
		StorageBackend:      StorageLocal,
		UploadDir:           "uploads",
		S3Region:            "auto",
		RabbitMQQueue:       "applicant_scored",
		UploadRatePerMinute: 30,
		UploadBurst:         10,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the optional JSON file at path,
// then environment variables, then defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overlays every set environment variable onto c
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	setString("DATABASE_URL", &c.DatabaseURL)
	setString("SKILL_MATCHER", &c.SkillMatcher)
	setString("NLP_SERVICE_URL", &c.NLPServiceURL)
	setString("GEMINI_API_KEY", &c.GeminiAPIKey)
	setString("VOCABULARY_FILE", &c.VocabularyFile)
	setString("STORAGE_BACKEND", &c.StorageBackend)
	setString("UPLOAD_DIR", &c.UploadDir)
	setString("S3_BUCKET", &c.S3Bucket)
	setString("S3_ENDPOINT", &c.S3Endpoint)
	setString("S3_REGION", &c.S3Region)
	setString("S3_ACCESS_KEY", &c.S3AccessKey)
	setString("S3_SECRET_KEY", &c.S3SecretKey)
	setString("RABBITMQ_URL", &c.RabbitMQURL)
	setString("RABBITMQ_QUEUE", &c.RabbitMQQueue)

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be an integer, got %q", v)
		}
		c.Port = port
	}
	if v := strings.TrimSpace(getenv("NLP_TIMEOUT")); v != "" {
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config error: NLP_TIMEOUT: %w", err)
		}
		c.NLPTimeout = d
	}
	if v := strings.TrimSpace(getenv("DEFAULT_ASSESSMENT_SCORE")); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: DEFAULT_ASSESSMENT_SCORE must be an integer, got %q", v)
		}
		c.DefaultAssessmentScore = &score
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s' (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Cross-field requirements
	if c.SkillMatcher == MatcherHTTP && c.NLPServiceURL == "" {
		return fmt.Errorf("config error: 'nlp_service_url' is required when skill_matcher is http")
	}
	if c.SkillMatcher == MatcherGemini && c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: 'gemini_api_key' is required when skill_matcher is gemini")
	}
	if c.StorageBackend == StorageS3 && c.S3Bucket == "" {
		return fmt.Errorf("config error: 's3_bucket' is required when storage_backend is s3")
	}
	if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		return fmt.Errorf("config error: 's3_access_key' and 's3_secret_key' must be set together")
	}

	if c.VocabularyFile != "" {
		if _, err := os.Stat(c.VocabularyFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.SkillMatcher, defaults.SkillMatcher)
	mergeString(&result.NLPServiceURL, defaults.NLPServiceURL)
	mergeString(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	mergeString(&result.VocabularyFile, defaults.VocabularyFile)
	mergeString(&result.StorageBackend, defaults.StorageBackend)
	mergeString(&result.UploadDir, defaults.UploadDir)
	mergeString(&result.S3Bucket, defaults.S3Bucket)
	mergeString(&result.S3Endpoint, defaults.S3Endpoint)
	mergeString(&result.S3Region, defaults.S3Region)
	mergeString(&result.S3AccessKey, defaults.S3AccessKey)
	mergeString(&result.S3SecretKey, defaults.S3SecretKey)
	mergeString(&result.RabbitMQURL, defaults.RabbitMQURL)
	mergeString(&result.RabbitMQQueue, defaults.RabbitMQQueue)

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.NLPTimeout == 0 {
		result.NLPTimeout = defaults.NLPTimeout
	}
	if result.UploadRatePerMinute == 0 {
		result.UploadRatePerMinute = defaults.UploadRatePerMinute
	}
	if result.UploadBurst == 0 {
		result.UploadBurst = defaults.UploadBurst
	}

	// Pointer fields: nil means unset
	if result.DefaultAssessmentScore == nil && defaults.DefaultAssessmentScore != nil {
		score := *defaults.DefaultAssessmentScore
		result.DefaultAssessmentScore = &score
	}

	return result
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
