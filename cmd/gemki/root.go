package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/phyraph/gemki/internal/config"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/export"
	"github.com/phyraph/gemki/internal/pipeline"
	"github.com/phyraph/gemki/internal/platform/logger"
	"github.com/phyraph/gemki/internal/redact"
	"github.com/phyraph/gemki/internal/reveal"
	"github.com/phyraph/gemki/internal/session"
	"github.com/spf13/cobra"
)

// apiKeyEnv is read when --api-key is not given. It may come from .env.
const apiKeyEnv = "GEMKI_API_KEY"

// flashcardPipeline is the part of pipeline.Service the commands drive.
type flashcardPipeline interface {
	Prepare(in pipeline.GenerateInput) domain.GenerationRequest
	Run(ctx context.Context, apiKey string, req domain.GenerationRequest) (*pipeline.Result, error)
	Reveal(ctx context.Context, s *reveal.Scheduler, t reveal.Ticket, res *pipeline.Result, emit func(reveal.Step)) error
}

// cli carries what every command needs. Fields are swapped out in tests.
type cli struct {
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
	clip   export.Clipboard

	newPipeline func(cfg *config.Config, logger *slog.Logger) (flashcardPipeline, error)

	verbose    bool
	configPath string

	// Interactive prompts, replaced in tests.
	askAction   func(session.Carousel) (string, error)
	askFilename func(suggested string) (string, error)

	cfg    *config.Config
	logger *slog.Logger
}

func defaultCLI() *cli {
	return &cli{
		out:    os.Stdout,
		errOut: os.Stderr,
		getenv: os.Getenv,
		clip:   export.SystemClipboard{},

		askAction:   askAction,
		askFilename: askFilename,
		newPipeline: func(cfg *config.Config, logger *slog.Logger) (flashcardPipeline, error) {
			return pipeline.NewFromConfig(cfg, logger)
		},
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "gemki",
		Short: "Turn study notes into flashcards",
		Long: `Gemki sends your notes to a Gemini model, turns the reply into
term/definition flashcards and exports them as a CSV that Anki can import.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a config file")

	root.AddCommand(newGenerateCmd(c), newStudyCmd(c))
	return root
}

// setup loads .env, configuration and the logger.
func (c *cli) setup() error {
	envErr := godotenv.Load()

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	l, err := logger.Setup(logger.LoggerConfig{Level: level, Format: logger.FormatText, Output: c.errOut})
	if err != nil {
		return err
	}
	c.logger = l

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		c.logger.Warn("failed to read .env file", "error", envErr)
	}

	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// run executes the command line in args. Any error not already shown to the
// user is printed to errOut before it is returned.
func run(ctx context.Context, c *cli, args []string) error {
	root := newRootCmd(c)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var shown *shownError
	if !errors.As(err, &shown) {
		fmt.Fprintln(c.errOut, errorStyle.Render("Error: "+err.Error()))
	}
	return err
}

// shownError is an error whose message was already printed.
type shownError struct {
	msg string
}

func (e *shownError) Error() string {
	return e.msg
}

// apiKey prefers the flag and falls back to the environment.
func (c *cli) apiKey(flag string) string {
	if flag != "" {
		return flag
	}
	return c.getenv(apiKeyEnv)
}

// userError logs err and returns an error carrying only the message a user
// may see.
func (c *cli) userError(ctx context.Context, err error) error {
	c.logger.DebugContext(ctx, "command failed", "error", redact.Error(err))
	return c.showError(domain.UserMessage(err))
}

// showError prints msg and returns it as an error run does not print again.
func (c *cli) showError(msg string) error {
	fmt.Fprintln(c.errOut, errorStyle.Render(msg))
	return &shownError{msg: msg}
}
