package gemini_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/phyraph/gemki/internal/generation"
	"github.com/phyraph/gemki/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-api-key"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordedRequest is what the fake endpoint saw of the last call.
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
}

// newFakeGemini serves a fixed GenerateContent reply and records requests.
func newFakeGemini(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *recordedRequest) {
	t.Helper()

	var calls atomic.Int32
	captured := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Header = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &calls, captured
}

func newProvider(t *testing.T, server *httptest.Server) *gemini.Provider {
	t.Helper()
	p, err := gemini.NewProvider(newTestLogger(),
		gemini.WithBaseURL(server.URL),
		gemini.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return p
}

func TestNewProvider(t *testing.T) {
	_, err := gemini.NewProvider(nil)
	assert.Error(t, err)

	p, err := gemini.NewProvider(newTestLogger())
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestComplete(t *testing.T) {
	t.Run("joins text parts of the first candidate", func(t *testing.T) {
		server, calls, req := newFakeGemini(t, http.StatusOK, `{
			"candidates": [{
				"content": {"role": "model", "parts": [
					{"text": "The capital of France: Paris\n"},
					{"text": "The capital of Japan: Tokyo"}
				]},
				"finishReason": "STOP"
			}]
		}`)

		text, err := newProvider(t, server).Complete(context.Background(), testKey, "gemini-1.5-flash", "prompt")
		require.NoError(t, err)
		assert.Equal(t, "The capital of France: Paris\nThe capital of Japan: Tokyo", text)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, http.MethodPost, req.Method)
		assert.True(t, strings.HasSuffix(req.Path, "models/gemini-1.5-flash:generateContent"),
			"unexpected path %s", req.Path)
		assert.Equal(t, testKey, req.Header.Get("x-goog-api-key"))
	})

	t.Run("no candidates", func(t *testing.T) {
		server, _, _ := newFakeGemini(t, http.StatusOK, `{"candidates": []}`)

		_, err := newProvider(t, server).Complete(context.Background(), testKey, "gemini-1.5-flash", "prompt")
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("safety block", func(t *testing.T) {
		server, _, _ := newFakeGemini(t, http.StatusOK, `{
			"candidates": [{"content": {"role": "model", "parts": []}, "finishReason": "SAFETY"}]
		}`)

		_, err := newProvider(t, server).Complete(context.Background(), testKey, "gemini-1.5-pro", "prompt")
		assert.ErrorIs(t, err, generation.ErrContentBlocked)
	})

	t.Run("prompt blocked", func(t *testing.T) {
		server, _, _ := newFakeGemini(t, http.StatusOK, `{"promptFeedback": {"blockReason": "SAFETY"}}`)

		_, err := newProvider(t, server).Complete(context.Background(), testKey, "gemini-1.5-pro", "prompt")
		assert.ErrorIs(t, err, generation.ErrContentBlocked)
	})

	t.Run("api error", func(t *testing.T) {
		server, calls, _ := newFakeGemini(t, http.StatusForbidden, `{
			"error": {"code": 403, "message": "API key not valid.", "status": "PERMISSION_DENIED"}
		}`)

		_, err := newProvider(t, server).Complete(context.Background(), testKey, "gemini-1.5-flash", "prompt")
		assert.Error(t, err)
		assert.Equal(t, int32(1), calls.Load(), "no retry")
	})

	t.Run("empty key never reaches the network", func(t *testing.T) {
		server, calls, _ := newFakeGemini(t, http.StatusOK, `{}`)

		_, err := newProvider(t, server).Complete(context.Background(), "", "gemini-1.5-flash", "prompt")
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		assert.Zero(t, calls.Load())
	})
}
