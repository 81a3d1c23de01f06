package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/run"

	"todo-cli/internal/cli"
)

func main() {
	if err := Run(context.Background()); err != nil {
		os.Exit(1)
	}
}

// Run executes the root command until it finishes or a termination signal
// arrives.
func Run(ctx context.Context) error {
	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				return cli.Execute(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}
