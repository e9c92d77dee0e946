// Package aiconnectors talks to model providers directly through
// langchaingo, as an alternative to the hosted completion proxy.
package aiconnectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/cohere"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/tigerprompts/internal/llm"
)

// Provider represents an AI provider type
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderCohere    Provider = "cohere"
	ProviderOllama    Provider = "ollama"
)

// Providers lists the providers NewConnector accepts.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderCohere, ProviderOllama}

// defaultModels is used when the caller does not name a model.
var defaultModels = map[Provider]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-sonnet-latest",
	ProviderGemini:    "gemini-2.5-flash",
	ProviderCohere:    "command-r",
	ProviderOllama:    "llama3",
}

// ParseProvider maps a config value to a Provider. "claude" is accepted
// as an alias for anthropic.
func ParseProvider(s string) (Provider, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "claude" {
		return ProviderAnthropic, true
	}
	for _, p := range Providers {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// ConnectorOptions contains options for creating a connector
type ConnectorOptions struct {
	Provider    Provider `json:"provider"`
	APIKey      string   `json:"api_key"`
	BaseURL     string   `json:"base_url,omitempty"`
	Model       string   `json:"model,omitempty"`
	Temperature float64  `json:"temperature,omitempty"`
}

// Connector is an llm.Completer backed by a langchaingo model.
type Connector struct {
	provider Provider
	model    llms.Model
	options  ConnectorOptions
}

var _ llm.Completer = (*Connector)(nil)

// NewConnector creates a new connector for the specified provider
func NewConnector(ctx context.Context, options ConnectorOptions) (*Connector, error) {
	if options.Model == "" {
		options.Model = defaultModels[options.Provider]
	}

	log.Debug().
		Str("provider", string(options.Provider)).
		Str("model", options.Model).
		Float64("temperature", options.Temperature).
		Msg("Creating new connector")

	var (
		model llms.Model
		err   error
	)
	switch options.Provider {
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithModel(options.Model), openai.WithToken(options.APIKey)}
		if options.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(options.BaseURL))
		}
		model, err = openai.New(opts...)
	case ProviderAnthropic:
		model, err = anthropic.New(anthropic.WithToken(options.APIKey), anthropic.WithModel(options.Model))
	case ProviderGemini:
		model, err = googleai.New(ctx, googleai.WithAPIKey(options.APIKey), googleai.WithDefaultModel(options.Model))
	case ProviderCohere:
		opts := []cohere.Option{cohere.WithToken(options.APIKey), cohere.WithModel(options.Model)}
		if options.BaseURL != "" {
			opts = append(opts, cohere.WithBaseURL(options.BaseURL))
		}
		model, err = cohere.New(opts...)
	case ProviderOllama:
		if options.BaseURL == "" {
			options.BaseURL = DefaultOllamaURL
		}
		model, err = ollama.New(ollama.WithServerURL(options.BaseURL), ollama.WithModel(options.Model))
	default:
		return nil, fmt.Errorf("unsupported provider: %s", options.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create model for provider %s: %w", options.Provider, err)
	}

	return NewWithModel(options, model), nil
}

// NewWithModel wraps an already constructed langchaingo model.
func NewWithModel(options ConnectorOptions, model llms.Model) *Connector {
	return &Connector{provider: options.Provider, model: model, options: options}
}

// Complete sends the system and user prompts as separate chat messages.
// Provider failures are returned as *llm.AdapterError.
func (c *Connector) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}
	callOptions := []llms.CallOption{llms.WithMaxTokens(maxTokens)}
	if c.options.Temperature > 0 {
		callOptions = append(callOptions, llms.WithTemperature(c.options.Temperature))
	}
	if req.Model != "" {
		callOptions = append(callOptions, llms.WithModel(req.Model))
	}

	var messages []llms.MessageContent
	if req.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.UserPrompt))

	resp, err := c.model.GenerateContent(ctx, messages, callOptions...)
	if err != nil {
		log.Error().Err(err).
			Str("provider", string(c.provider)).
			Str("model", c.GetModel()).
			Msg("Provider call failed")
		return "", &llm.AdapterError{Message: fmt.Sprintf("%s request failed", c.provider), Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", &llm.AdapterError{Message: fmt.Sprintf("%s returned no choices", c.provider)}
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// GetProvider returns the provider of this connector
func (c *Connector) GetProvider() Provider {
	return c.provider
}

// GetModel returns the model name from the config
func (c *Connector) GetModel() string {
	return c.options.Model
}
