// Package llm provides interfaces and implementations for LLM providers.
package llm

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/autospec/internal/config"
)

// Provider defines the interface for LLM providers. The pipeline is
// strictly request-response, so there is no streaming surface: every
// generation step blocks on one Complete call.
type Provider interface {
	// Complete sends messages and waits for the full response.
	Complete(ctx context.Context, messages []Message, opts Options) (*Response, error)

	// Name returns the provider name (e.g., "openai", "anthropic").
	Name() string

	// Models returns available model IDs for this provider.
	Models() []string

	// DefaultModel returns the default model for this provider.
	DefaultModel() string
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // Message content
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// Options configures a completion request.
type Options struct {
	Model       string  // Model to use (empty = provider default)
	MaxTokens   int     // Maximum tokens in response
	Temperature float64 // Sampling temperature (0-1)
}

// Response represents a complete chat response.
type Response struct {
	Content      string // Response content
	Model        string // Model used
	FinishReason string // Why generation stopped
	Usage        Usage  // Token usage
}

// Usage tracks token usage for a request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ProviderType represents supported LLM providers.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
)

// NewProvider creates a provider based on configuration, auto-detecting
// from available API keys when none is explicitly set. OpenAI is
// preferred since it also backs the embedding provider.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	providerName := cfg.DefaultProvider
	if providerName == "" {
		providerName = detectProvider(cfg)
	}

	if providerName == "" {
		return nil, fmt.Errorf("no LLM provider configured: set OPENAI_API_KEY or ANTHROPIC_API_KEY")
	}

	switch ProviderType(providerName) {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.DefaultModel)

	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.DefaultModel)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", providerName)
	}
}

// detectProvider picks a provider based on which keys are present.
func detectProvider(cfg config.LLMConfig) string {
	if cfg.OpenAIAPIKey != "" {
		return string(ProviderOpenAI)
	}
	if cfg.AnthropicAPIKey != "" {
		return string(ProviderAnthropic)
	}
	return ""
}
