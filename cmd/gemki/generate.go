package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/export"
	"github.com/phyraph/gemki/internal/pipeline"
	"github.com/phyraph/gemki/internal/reveal"
	"github.com/phyraph/gemki/internal/source"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	model    string
	file     string
	text     string
	out      string
	copy     bool
	noReveal bool
	apiKey   string
}

func newGenerateCmd(c *cli) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards once and print them",
		Long: `Generate flashcards from --text or --file, print the reply as it is
revealed and optionally save it as CSV or copy it to the clipboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "fast", "Model tier: fast (flash) or smart (pro)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read input from a .txt or .csv file")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Input text")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Save the result as CSV under this name")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVar(&opts.noReveal, "no-reveal", false, "Print the result at once instead of word by word")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Gemini API key (default $"+apiKeyEnv+")")
	cmd.MarkFlagsMutuallyExclusive("file", "text")

	return cmd
}

func (c *cli) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()

	model, err := domain.ParseModelTier(opts.model)
	if err != nil {
		return fmt.Errorf("invalid --model %q: use fast or smart", opts.model)
	}

	input := source.FromText(opts.text)
	if opts.file != "" {
		input, err = source.ReadFile(opts.file)
		if err != nil {
			return c.userError(ctx, err)
		}
	}
	if strings.TrimSpace(input) == "" {
		return errors.New("provide --text or --file")
	}

	key := c.apiKey(opts.apiKey)
	if strings.TrimSpace(key) == "" {
		return c.userError(ctx, domain.ErrMissingCredential)
	}

	svc, err := c.newPipeline(c.cfg, c.logger)
	if err != nil {
		return err
	}

	req := svc.Prepare(pipeline.GenerateInput{APIKey: key, Model: model, Text: input})
	res, err := svc.Run(ctx, key, req)
	if err != nil {
		return c.userError(ctx, err)
	}

	if opts.noReveal {
		fmt.Fprintln(c.out, res.Text)
	} else {
		delay := c.cfg.Reveal.StepDelay
		scheduler := reveal.NewScheduler(delay)
		printed := 0
		err := svc.Reveal(ctx, scheduler, scheduler.Start(res.RequestID), res, func(step reveal.Step) {
			fmt.Fprint(c.out, step.Text[printed:])
			printed = len(step.Text)
		})
		fmt.Fprintln(c.out)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, renderSummary(res.Cards))

	if opts.out != "" {
		path, err := export.SaveFile(c.cfg.Export.Dir, opts.out, res.Text)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, successStyle.Render("Saved "+path))
		fmt.Fprintln(c.out, hintStyle.Render(export.ImportHint))
	}

	if opts.copy {
		if err := export.Copy(c.clip, res.Text); err != nil {
			c.logger.WarnContext(ctx, "copy to clipboard failed", "error", err)
		} else {
			fmt.Fprintln(c.out, successStyle.Render("Copied to clipboard"))
		}
	}

	return nil
}
