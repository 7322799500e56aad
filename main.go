package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/harrisonrobin/duke/pkg/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := commands.NewRootCommand().Run(ctx, os.Args); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
