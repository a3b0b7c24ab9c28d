package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/events"
	"github.com/phyraph/gemki/internal/export"
	"github.com/phyraph/gemki/internal/pipeline"
	"github.com/phyraph/gemki/internal/reveal"
	"github.com/phyraph/gemki/internal/session"
	"github.com/phyraph/gemki/internal/source"
	"github.com/spf13/cobra"
)

// Carousel actions offered after generation.
const (
	actionNext = "next"
	actionPrev = "prev"
	actionFlip = "flip"
	actionCopy = "copy"
	actionSave = "save"
	actionQuit = "quit"
)

func newStudyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Interactively generate and review flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runStudy(cmd.Context())
		},
	}
}

// studyForm collects the session inputs.
type studyForm struct {
	key   string
	model domain.ModelTier
	file  string
	text  string
}

func (c *cli) askStudyForm() (studyForm, error) {
	f := studyForm{key: c.getenv(apiKeyEnv), model: domain.ModelFast}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				EchoMode(huh.EchoModePassword).
				Value(&f.key),
			huh.NewSelect[domain.ModelTier]().
				Title("Model").
				Options(
					huh.NewOption(domain.ModelFast.Label(), domain.ModelFast),
					huh.NewOption(domain.ModelSmart.Label(), domain.ModelSmart),
				).
				Value(&f.model),
			huh.NewInput().
				Title("File (.txt or .csv)").
				Description("Leave empty to paste text instead").
				Value(&f.file),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Text to convert").
				Value(&f.text),
		).WithHideFunc(func() bool { return strings.TrimSpace(f.file) != "" }),
	).Run()

	return f, err
}

func (c *cli) runStudy(ctx context.Context) error {
	form, err := c.askStudyForm()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	svc, err := c.newPipeline(c.cfg, c.logger)
	if err != nil {
		return err
	}

	emitter := events.NewInMemoryEmitter[session.StateChanged](c.logger)
	emitter.RegisterHandler(c.revealPrinter())
	store := session.NewStore(session.New(form.model), emitter, c.logger)

	dispatch := func(ev session.Event) session.State {
		st, err := store.Dispatch(ctx, ev)
		if err != nil {
			c.logger.WarnContext(ctx, "state subscriber failed", "error", err)
		}
		return st
	}

	dispatch(session.KeyEntered{Key: form.key})
	dispatch(session.ModelSelected{Model: form.model})
	if form.file != "" {
		text, err := source.ReadFile(strings.TrimSpace(form.file))
		if err != nil {
			dispatch(session.FileRejected{Err: err})
		} else {
			dispatch(session.FileLoaded{Text: text})
		}
	} else {
		dispatch(session.InputChanged{Text: form.text})
	}

	st := store.State()
	if st.Error != "" {
		return c.showError(st.Error)
	}

	req := svc.Prepare(pipeline.GenerateInput{APIKey: st.APIKey, Model: st.Model, Text: st.Input})
	st = dispatch(session.GenerateRequested{Request: req})
	if st.Error != "" {
		return c.showError(st.Error)
	}

	var res *pipeline.Result
	var genErr error
	if err := spinner.New().
		Title("Generating flashcards...").
		Context(ctx).
		Action(func() { res, genErr = svc.Run(ctx, st.APIKey, req) }).
		Run(); err != nil {
		return err
	}
	if genErr != nil {
		st = dispatch(session.GenerationFailed{RequestID: req.ID, Err: genErr})
		return c.showError(st.Error)
	}

	scheduler := reveal.NewScheduler(c.cfg.Reveal.StepDelay)
	err = svc.Reveal(ctx, scheduler, scheduler.Start(req.ID), res, func(step reveal.Step) {
		dispatch(session.RevealStepped{Step: step})
	})
	fmt.Fprintln(c.out)
	if err != nil {
		return err
	}

	return c.carouselLoop(ctx, store, dispatch)
}

// revealPrinter writes each newly revealed word as the output grows.
func (c *cli) revealPrinter() events.Handler[session.StateChanged] {
	return events.HandlerFunc[session.StateChanged](func(_ context.Context, e *events.Event[session.StateChanged]) error {
		prev, cur := e.Payload.Previous.Output, e.Payload.Current.Output
		if len(cur) <= len(prev) || !strings.HasPrefix(cur, prev) {
			return nil
		}
		_, err := fmt.Fprint(c.out, cur[len(prev):])
		return err
	})
}

func (c *cli) carouselLoop(ctx context.Context, store *session.Store, dispatch func(session.Event) session.State) error {
	for {
		st := store.State()
		if st.Carousel.Idle() {
			fmt.Fprintln(c.out, renderSummary(nil))
			return nil
		}
		fmt.Fprintln(c.out, renderCard(st.Carousel))

		action, err := c.askAction(st.Carousel)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch action {
		case actionNext, actionPrev:
			ev := session.Event(session.CardNext{})
			if action == actionPrev {
				ev = session.CardPrev{}
			}
			dispatch(ev)
			if err := sleepCtx(ctx, c.cfg.Carousel.Animation); err != nil {
				return nil
			}
			dispatch(session.CardLanded{})
		case actionFlip:
			dispatch(session.CardFlipped{})
		case actionCopy:
			if err := export.Copy(c.clip, st.Output); err != nil {
				dispatch(session.CopyFailed{Err: err})
			} else {
				fmt.Fprintln(c.out, successStyle.Render("Copied to clipboard"))
			}
		case actionSave:
			c.saveInteractive(st.Output)
		case actionQuit:
			return nil
		}
	}
}

func askAction(car session.Carousel) (string, error) {
	options := make([]huh.Option[string], 0, 6)
	if car.HasNext() {
		options = append(options, huh.NewOption("Next", actionNext))
	}
	if car.HasPrev() {
		options = append(options, huh.NewOption("Previous", actionPrev))
	}
	options = append(options,
		huh.NewOption("Flip", actionFlip),
		huh.NewOption("Copy all", actionCopy),
		huh.NewOption("Save CSV", actionSave),
		huh.NewOption("Quit", actionQuit),
	)

	var action string
	err := huh.NewSelect[string]().
		Title("What next?").
		Options(options...).
		Value(&action).
		Run()
	return action, err
}

func askFilename(suggested string) (string, error) {
	name := suggested
	err := huh.NewInput().
		Title("Save as").
		Value(&name).
		Validate(func(s string) error {
			_, err := export.NormalizeFilename(s)
			return err
		}).
		Run()
	return name, err
}

func (c *cli) saveInteractive(text string) {
	name, err := c.askFilename(c.cfg.Export.DefaultFilename)
	if err != nil {
		return
	}

	path, err := export.SaveFile(c.cfg.Export.Dir, name, text)
	if err != nil {
		fmt.Fprintln(c.errOut, errorStyle.Render("Could not save file"))
		c.logger.Warn("export failed", "error", err)
		return
	}
	fmt.Fprintln(c.out, successStyle.Render("Saved "+path))
	fmt.Fprintln(c.out, hintStyle.Render(export.ImportHint))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
