// Command gemki turns study notes into flashcards from the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, defaultCLI(), os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
