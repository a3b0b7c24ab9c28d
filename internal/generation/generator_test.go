package generation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProvider counts calls so tests can prove no request was emitted.
type recordingProvider struct {
	calls   int
	modelID string
	apiKey  string
	prompt  string
	text    string
	err     error
}

func (p *recordingProvider) Complete(_ context.Context, apiKey, modelID, prompt string) (string, error) {
	p.calls++
	p.apiKey = apiKey
	p.modelID = modelID
	p.prompt = prompt
	return p.text, p.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testModels = generation.Models{Fast: "gemini-1.5-flash", Smart: "gemini-1.5-pro"}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, err := generation.NewClient(nil, testModels, newTestLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = generation.NewClient(&recordingProvider{}, testModels, nil)
	assert.Error(t, err)

	_, err = generation.NewClient(&recordingProvider{}, generation.Models{Fast: "x"}, newTestLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	c, err := generation.NewClient(&recordingProvider{}, testModels, newTestLogger())
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClientGenerate(t *testing.T) {
	t.Parallel()

	t.Run("empty key fails without a request", func(t *testing.T) {
		t.Parallel()

		for _, key := range []string{"", "   "} {
			provider := &recordingProvider{text: "unused"}
			c, err := generation.NewClient(provider, testModels, newTestLogger())
			require.NoError(t, err)

			text, err := c.Generate(context.Background(), key, domain.ModelFast, "prompt")
			assert.ErrorIs(t, err, domain.ErrMissingCredential)
			assert.Empty(t, text)
			assert.Zero(t, provider.calls, "no request may be emitted")
		}
	})

	t.Run("resolves tiers to model ids", func(t *testing.T) {
		t.Parallel()

		provider := &recordingProvider{text: "The capital of France: Paris"}
		c, err := generation.NewClient(provider, testModels, newTestLogger())
		require.NoError(t, err)

		text, err := c.Generate(context.Background(), "key", domain.ModelSmart, "the prompt")
		require.NoError(t, err)
		assert.Equal(t, "The capital of France: Paris", text)
		assert.Equal(t, "gemini-1.5-pro", provider.modelID)
		assert.Equal(t, "key", provider.apiKey)
		assert.Equal(t, "the prompt", provider.prompt)

		_, err = c.Generate(context.Background(), "key", domain.ModelFast, "p")
		require.NoError(t, err)
		assert.Equal(t, "gemini-1.5-flash", provider.modelID)
	})

	t.Run("provider failures become generation failures", func(t *testing.T) {
		t.Parallel()

		causes := []error{
			errors.New("403 API key not valid"),
			errors.New("429 quota exceeded"),
			generation.ErrContentBlocked,
			context.DeadlineExceeded,
		}

		for _, cause := range causes {
			provider := &recordingProvider{err: cause}
			c, err := generation.NewClient(provider, testModels, newTestLogger())
			require.NoError(t, err)

			_, err = c.Generate(context.Background(), "key", domain.ModelFast, "p")
			assert.ErrorIs(t, err, domain.ErrGenerationFailed)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, domain.MsgGenerationFailed, domain.UserMessage(err))
			assert.Equal(t, 1, provider.calls, "no retry")
		}
	})

	t.Run("unknown tier", func(t *testing.T) {
		t.Parallel()

		provider := &recordingProvider{}
		c, err := generation.NewClient(provider, testModels, newTestLogger())
		require.NoError(t, err)

		_, err = c.Generate(context.Background(), "key", domain.ModelTier("ultra"), "p")
		assert.ErrorIs(t, err, domain.ErrGenerationFailed)
		assert.Zero(t, provider.calls)
	})
}

func TestCompleterFunc(t *testing.T) {
	t.Parallel()

	f := generation.CompleterFunc(func(_ context.Context, apiKey, modelID, prompt string) (string, error) {
		return apiKey + "|" + modelID + "|" + prompt, nil
	})

	out, err := f.Complete(context.Background(), "k", "m", "p")
	require.NoError(t, err)
	assert.Equal(t, "k|m|p", out)
}
