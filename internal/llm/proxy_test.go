package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProxy(t *testing.T, status int, body string, inspect func(*http.Request, CompletionRequest)) *ProxyClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if inspect != nil {
			inspect(r, req)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewProxyClient(srv.URL, WithAPIKey("secret"))
}

func TestProxyCompleteSuccess(t *testing.T) {
	var got CompletionRequest
	var auth string
	p := newProxy(t, http.StatusOK, `{"choices":[{"message":{"content":"  refined prompt \n"}}]}`, func(r *http.Request, req CompletionRequest) {
		got = req
		auth = r.Header.Get("Authorization")
	})

	out, err := p.Complete(context.Background(), CompletionRequest{SystemPrompt: "sys", UserPrompt: "user", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "refined prompt", out)
	assert.Equal(t, CompletionRequest{SystemPrompt: "sys", UserPrompt: "user", Model: "gpt-4o-mini", MaxTokens: DefaultMaxTokens}, got)
	assert.Equal(t, "Bearer secret", auth)
}

func TestProxyCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error message", http.StatusBadRequest, `{"error":{"message":"model not allowed"}}`, "model not allowed"},
		{"no message", http.StatusInternalServerError, `oops`, genericFailure},
		{"empty error object", http.StatusBadGateway, `{"error":{}}`, genericFailure},
		{"error in 200", http.StatusOK, `{"error":{"message":"quota exceeded"}}`, "quota exceeded"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "response contained no choices"},
		{"garbage", http.StatusOK, `<<not json>>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProxy(t, tt.status, tt.body, nil)
			out, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
			require.Error(t, err)
			assert.Empty(t, out)
			assert.True(t, IsAdapterError(err))

			var ae *AdapterError
			require.True(t, errors.As(err, &ae))
			if tt.message != "" {
				assert.Equal(t, tt.message, ae.Message)
			}
			assert.Equal(t, tt.status, ae.StatusCode)
		})
	}
}

func TestProxyCompleteRepairsPayload(t *testing.T) {
	for _, body := range []string{
		`{"choices":[{"message":{"content":"fixed"}},]}`,
		"```json\n{\"choices\":[{\"message\":{\"content\":\"fixed\"}}]}\n```",
		`Sure: {"choices":[{"message":{"content":"fixed"}}]} done`,
	} {
		p := newProxy(t, http.StatusOK, body, nil)
		out, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
		require.NoError(t, err, body)
		assert.Equal(t, "fixed", out)
	}
}

func TestProxyCompleteRejectsTruncatedPayload(t *testing.T) {
	for _, body := range []string{
		`{"choices":[{"message":{"content":"You are a senior engineer. Write the full`,
		`{"choices":[{"message":{"content":"complete sentence."}}`,
	} {
		p := newProxy(t, http.StatusOK, body, nil)
		out, err := p.Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
		require.Error(t, err, body)
		assert.Empty(t, out)

		var ae *AdapterError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "malformed response payload", ae.Message)
		assert.Equal(t, http.StatusOK, ae.StatusCode)
	}
}

func TestProxyTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewProxyClient(url).Complete(context.Background(), CompletionRequest{UserPrompt: "x"})
	require.Error(t, err)
	var ae *AdapterError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, 0, ae.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestLoggedPassesThrough(t *testing.T) {
	inner := CompleterFunc(func(_ context.Context, req CompletionRequest) (string, error) {
		return req.UserPrompt + "!", nil
	})
	out, err := Logged("test", inner).Complete(context.Background(), CompletionRequest{UserPrompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi!", out)

	boom := &AdapterError{Message: "boom"}
	failing := CompleterFunc(func(context.Context, CompletionRequest) (string, error) { return "", boom })
	_, err = Logged("test", failing).Complete(context.Background(), CompletionRequest{})
	assert.ErrorIs(t, err, boom)
}
