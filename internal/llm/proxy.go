package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const genericFailure = "API request failed"

// ProxyClient calls a hosted completion proxy that accepts
// {systemPrompt, userPrompt, model, maxTokens} and answers in the
// chat-completions shape {choices:[{message:{content}}]} or {error:{message}}.
type ProxyClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// ProxyOption configures a ProxyClient.
type ProxyOption func(*ProxyClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ProxyOption {
	return func(p *ProxyClient) { p.httpClient = c }
}

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) ProxyOption {
	return func(p *ProxyClient) { p.apiKey = key }
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) ProxyOption {
	return func(p *ProxyClient) { p.httpClient.Timeout = d }
}

// NewProxyClient creates a client for the proxy at endpoint.
func NewProxyClient(endpoint string, opts ...ProxyOption) *ProxyClient {
	p := &ProxyClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

type proxyResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete implements Completer.
func (p *ProxyClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &AdapterError{Message: genericFailure, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AdapterError{Message: genericFailure, StatusCode: resp.StatusCode, Err: err}
	}

	parsed, decodeErr := decodeProxyResponse(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := genericFailure
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", &AdapterError{Message: msg, StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		return "", &AdapterError{Message: "malformed response payload", StatusCode: resp.StatusCode, Err: decodeErr}
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", &AdapterError{Message: parsed.Error.Message, StatusCode: resp.StatusCode}
	}
	if len(parsed.Choices) == 0 {
		return "", &AdapterError{Message: "response contained no choices", StatusCode: resp.StatusCode}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// decodeProxyResponse parses the body, falling back to RepairPayload when
// the proxy emitted almost-JSON. Bodies that were cut off are rejected
// rather than completed.
func decodeProxyResponse(raw []byte) (proxyResponse, error) {
	var out proxyResponse
	err := json.Unmarshal(raw, &out)
	if err == nil {
		return out, nil
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return out, err
	}

	repaired, stats, repairErr := RepairPayload(string(raw))
	if repairErr != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	if stats.Truncated {
		return out, fmt.Errorf("response truncated (%s): %w", strings.Join(stats.Strategies, ", "), err)
	}
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		return out, fmt.Errorf("decode repaired response: %w", err)
	}
	return out, nil
}
