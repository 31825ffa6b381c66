// Package llm provides LLM configuration and client abstractions used for
// semantic skill matching.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, keyword matching
	TierLite ModelTier = "lite"
	// TierStandard is for structured output over longer documents
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.1,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
