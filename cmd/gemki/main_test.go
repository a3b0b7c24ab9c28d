package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyraph/gemki/internal/config"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/pipeline"
	"github.com/phyraph/gemki/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text    string
	err     error
	calls   int
	lastKey string
}

func (g *fakeGenerator) Generate(_ context.Context, apiKey string, _ domain.ModelTier, _ string) (string, error) {
	g.calls++
	g.lastKey = apiKey
	return g.text, g.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type harness struct {
	cli  *cli
	out  *bytes.Buffer
	errs *bytes.Buffer
	gen  *fakeGenerator
	clip *fakeClipboard
}

func newHarness(t *testing.T, gen *fakeGenerator, env map[string]string) *harness {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("GEMKI_REVEAL_STEP_DELAY", "0s")

	h := &harness{out: &bytes.Buffer{}, errs: &bytes.Buffer{}, gen: gen, clip: &fakeClipboard{}}
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	h.cli = &cli{
		out:    h.out,
		errOut: h.errs,
		getenv: func(k string) string { return env[k] },
		clip:   h.clip,
		newPipeline: func(cfg *config.Config, logger *slog.Logger) (flashcardPipeline, error) {
			builder, err := prompt.NewBuilder("")
			if err != nil {
				return nil, err
			}
			return pipeline.NewService(builder, gen, cfg.Reveal.StepDelay, logger)
		},
	}
	return h
}

func (h *harness) run(args ...string) error {
	return run(context.Background(), h.cli, args)
}

const reply = "The capital of France: Paris\nThe largest planet: Jupiter"

func TestGenerateCommand(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)

	err := h.run("generate", "--text", "notes", "--api-key", "flag-key")
	require.NoError(t, err)

	assert.Equal(t, "flag-key", h.gen.lastKey)
	assert.Contains(t, h.out.String(), reply+" \n", "revealed text ends with the trailing space of the last step")
	assert.Contains(t, h.out.String(), "2 flashcards")
	assert.Contains(t, h.out.String(), "The largest planet")
}

func TestGenerateCommandKeyFromEnv(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, map[string]string{apiKeyEnv: "env-key"})

	require.NoError(t, h.run("generate", "--text", "notes", "--no-reveal"))
	assert.Equal(t, "env-key", h.gen.lastKey)
	assert.Contains(t, h.out.String(), reply+"\n")
}

func TestGenerateCommandMissingKey(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)

	err := h.run("generate", "--text", "notes")
	require.Error(t, err)
	assert.Equal(t, domain.MsgMissingCredential, err.Error())
	assert.Contains(t, h.errs.String(), domain.MsgMissingCredential)
	assert.Zero(t, h.gen.calls)
}

func TestGenerateCommandGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: quota exceeded", domain.ErrGenerationFailed)}
	h := newHarness(t, gen, nil)

	err := h.run("generate", "--text", "notes", "--api-key", "k")
	require.Error(t, err)
	assert.Equal(t, domain.MsgGenerationFailed, err.Error())
	assert.Contains(t, h.errs.String(), domain.MsgGenerationFailed)
}

func TestGenerateCommandFromFile(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)

	require.NoError(t, os.WriteFile("notes.txt", []byte("Paris is the capital"), 0o600))
	require.NoError(t, h.run("generate", "--file", "notes.txt", "--api-key", "k", "--no-reveal"))
	assert.Equal(t, 1, h.gen.calls)

	require.NoError(t, os.WriteFile("photo.png", []byte("\x89PNG\r\n\x1a\n"), 0o600))
	err := h.run("generate", "--file", "photo.png", "--api-key", "k")
	require.Error(t, err)
	assert.Equal(t, domain.MsgUnsupportedFileType, err.Error())
	assert.Equal(t, 1, h.gen.calls, "rejected file never reaches the model")
}

func TestGenerateCommandSaveAndCopy(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)

	require.NoError(t, h.run("generate", "--text", "x", "--api-key", "k", "--no-reveal", "--out", "deck", "--copy"))

	data, err := os.ReadFile(filepath.Join(".", "deck.csv"))
	require.NoError(t, err)
	assert.Equal(t, reply, string(data))
	assert.Equal(t, reply, h.clip.text)
	assert.Contains(t, h.out.String(), "COLON (:)")
}

func TestGenerateCommandCopyFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)
	h.clip.err = errors.New("no display")

	require.NoError(t, h.run("generate", "--text", "x", "--api-key", "k", "--no-reveal", "--copy"))
	assert.NotContains(t, h.out.String(), "Copied")
}

func TestGenerateCommandFlagValidation(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)

	assert.Error(t, h.run("generate", "--api-key", "k"), "no input")
	assert.Error(t, h.run("generate", "--text", "x", "--model", "ultra", "--api-key", "k"))
	assert.Error(t, h.run("generate", "--text", "x", "--file", "y", "--api-key", "k"))
	assert.Zero(t, h.gen.calls)
}

func TestCommandErrorsAreShown(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no input",
			args: []string{"generate", "--api-key", "k"},
			want: "provide --text or --file",
		},
		{
			name: "unknown model",
			args: []string{"generate", "--text", "x", "--model", "ultra", "--api-key", "k"},
			want: `invalid --model "ultra"`,
		},
		{
			name: "bad export name",
			args: []string{"generate", "--text", "x", "--api-key", "k", "--no-reveal", "--out", "a/b"},
			want: "invalid export filename",
		},
		{
			name: "unknown flag",
			args: []string{"generate", "--colour"},
			want: "unknown flag",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, &fakeGenerator{text: reply}, nil)

			err := h.run(tc.args...)

			require.Error(t, err)
			assert.Contains(t, h.errs.String(), tc.want)
			assert.Equal(t, 1, strings.Count(h.errs.String(), tc.want), "shown exactly once")
		})
	}
}

func TestCommandConfigErrorIsShown(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)

	err := h.run("--config", filepath.Join(t.TempDir(), "missing.yaml"), "generate", "--text", "x")

	require.Error(t, err)
	assert.Contains(t, h.errs.String(), "failed to read config file")
	assert.Zero(t, h.gen.calls)
}

func TestUserErrorsAreShownOnce(t *testing.T) {
	h := newHarness(t, &fakeGenerator{text: reply}, nil)

	require.Error(t, h.run("generate", "--text", "notes"))
	assert.Equal(t, 1, strings.Count(h.errs.String(), domain.MsgMissingCredential))
}
