package llm

import (
	"context"

	"github.com/claimlens/claimlens/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs a single-turn chat completion and returns the raw text
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// ExtractImageText runs a vision completion that reads the text out of
	// an image. Returns the extracted text, which may be a "not found"
	// sentinel the caller must check for.
	ExtractImageText(ctx context.Context, req ImageRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a text completion
type CompletionRequest struct {
	// System is the system prompt (optional)
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the configured default model when non-empty
	Model string

	// MaxTokens limits the response length (0 means configured default)
	MaxTokens int

	// Temperature controls randomness; analysis calls keep this low
	Temperature float32
}

// ImageRequest contains the input for a vision extraction call
type ImageRequest struct {
	// Prompt is the extraction instruction
	Prompt string

	// ImageBase64 is the raw base64 payload, without any data-URI prefix
	ImageBase64 string

	// Format is the image format ("png", "jpeg", "gif", "webp")
	Format string

	// Model overrides the configured vision model when non-empty
	Model string
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "ollama"
	Provider string

	// Model is the default chat model
	Model string

	// VisionModel is the model used for image text extraction
	VisionModel string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., an Ollama OpenAI-compatible server)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		VisionModel: mc.VisionModel,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		VisionModel: "gpt-4o-mini",
		Timeout:     60,
		MaxTokens:   1500,
	}
}
