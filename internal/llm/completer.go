// Package llm defines the boundary between the enhancement pipeline and a
// remote language model, plus the hosted-proxy client that implements it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultMaxTokens is the completion budget used when a request leaves it unset.
const DefaultMaxTokens = 2000

// CompletionRequest is a single system + user prompt exchange.
type CompletionRequest struct {
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
	Model        string `json:"model,omitempty"`
	MaxTokens    int    `json:"maxTokens"`
}

// Completer returns the model's text reply for a request. Implementations
// report remote failures as *AdapterError and never retry on their own.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

// AdapterError is returned when the remote call does not succeed: a non-2xx
// response, a payload that cannot be understood, or a transport failure.
type AdapterError struct {
	Message    string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *AdapterError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm adapter: %s (status %d)", e.Message, e.StatusCode)
	}
	return "llm adapter: " + e.Message
}

func (e *AdapterError) Unwrap() error { return e.Err }

// IsAdapterError reports whether err wraps an *AdapterError.
func IsAdapterError(err error) bool {
	var ae *AdapterError
	return errors.As(err, &ae)
}

// Logged wraps c so every call is logged at debug level and failures at
// error level.
func Logged(name string, c Completer) Completer {
	return CompleterFunc(func(ctx context.Context, req CompletionRequest) (string, error) {
		start := time.Now()
		log.Debug().
			Str("adapter", name).
			Str("model", req.Model).
			Int("system_len", len(req.SystemPrompt)).
			Int("user_len", len(req.UserPrompt)).
			Msg("LLM completion request")

		out, err := c.Complete(ctx, req)
		if err != nil {
			log.Error().Err(err).Str("adapter", name).Dur("elapsed", time.Since(start)).Msg("LLM completion failed")
			return "", err
		}
		log.Debug().Str("adapter", name).Int("reply_len", len(out)).Dur("elapsed", time.Since(start)).Msg("LLM completion done")
		return out, nil
	})
}
