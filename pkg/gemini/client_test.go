package gemini

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusengine/dietitian-focus/pkg/errors"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGenerateText_Success(t *testing.T) {
	var got GenerateContentRequest
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.Query().Get("key"), "key must not travel in the URL")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Kale is rich in vitamin K."}]}}]}`))
	})

	c := NewClient(WithAPIKey("secret"), WithModel("gemini-test"), WithBaseURL(srv.URL+"/"))
	text, err := c.GenerateText(context.Background(), "Tell me about kale")

	require.NoError(t, err)
	assert.Equal(t, "Kale is rich in vitamin K.", text)
	assert.Equal(t, int32(1), calls.Load())
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "Tell me about kale", got.Contents[0].Parts[0].Text)
	assert.Nil(t, got.GenerationConfig)
}

func TestGenerateText_GenerationConfig(t *testing.T) {
	var raw map[string]any
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	temp := 0.2
	c := NewClient(
		WithAPIKey("k"),
		WithBaseURL(srv.URL),
		WithGenerationConfig(&GenerationConfig{Temperature: &temp, MaxOutputTokens: 128}),
	)
	_, err := c.GenerateText(context.Background(), "p")
	require.NoError(t, err)

	gc, ok := raw["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig should be present")
	assert.InDelta(t, 0.2, gc["temperature"], 1e-9)
	assert.InDelta(t, 128, gc["maxOutputTokens"], 1e-9)
}

func TestGenerateText_MissingAPIKey(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	c := NewClient(WithAPIKey("   "), WithBaseURL(srv.URL))
	_, err := c.GenerateText(context.Background(), "p")

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrMissingAPIKey))
	assert.Equal(t, errors.ErrCodeConfiguration, errors.CodeOf(err))
	assert.Equal(t, int32(0), calls.Load(), "no network call without a key")
}

func TestGenerateText_Fallback(t *testing.T) {
	bodies := map[string]string{
		"no candidates":   `{}`,
		"empty list":      `{"candidates":[]}`,
		"no parts":        `{"candidates":[{"content":{"parts":[]}}]}`,
		"empty text":      `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
		"blocked prompt":  `{"promptFeedback":{"blockReason":"SAFETY"}}`,
		"finish w/o text": `{"candidates":[{"finishReason":"SAFETY","content":{}}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			c := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
			text, err := c.GenerateText(context.Background(), "p")

			require.NoError(t, err)
			assert.Equal(t, FallbackText, text)
		})
	}
}

func TestGenerateText_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errors.ErrorCode
	}{
		{
			name:     "server error with envelope",
			status:   http.StatusInternalServerError,
			body:     `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`,
			wantCode: errors.ErrCodeUpstream,
		},
		{
			name:     "bad key",
			status:   http.StatusBadRequest,
			body:     `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
			wantCode: errors.ErrCodeUpstream,
		},
		{
			name:     "quota",
			status:   http.StatusTooManyRequests,
			body:     `not json`,
			wantCode: errors.ErrCodeUpstream,
		},
		{
			name:     "malformed success body",
			status:   http.StatusOK,
			body:     `{"candidates":`,
			wantCode: errors.ErrCodeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			c := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
			_, err := c.GenerateText(context.Background(), "p")

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}

func TestGenerateText_StatusErrorContext(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED"}}`))
	})

	c := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	_, err := c.GenerateText(context.Background(), "p")

	var se *errors.StructuredError
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.Context["status"])
	assert.Equal(t, "denied", se.Context["upstreamMessage"])
	assert.Equal(t, "PERMISSION_DENIED", se.Context["upstreamStatus"])
}

func TestGenerateText_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(base))
	_, err := c.GenerateText(context.Background(), "p")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUpstream, errors.CodeOf(err))
}

func TestGenerateText_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := c.GenerateText(context.Background(), "p")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient()

	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.False(t, c.HasAPIKey())
	assert.NotNil(t, c.httpClient)

	c = NewClient(WithModel("  "), WithBaseURL(""), WithHTTPClient(nil))
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.NotNil(t, c.httpClient)
}

func TestFirstText(t *testing.T) {
	var nilResp *GenerateContentResponse
	_, ok := nilResp.FirstText()
	assert.False(t, ok)

	resp := &GenerateContentResponse{Candidates: []Candidate{
		{Content: Content{Parts: []Part{{Text: "first"}, {Text: "second"}}}},
		{Content: Content{Parts: []Part{{Text: "other"}}}},
	}}
	text, ok := resp.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "first", text)
}
