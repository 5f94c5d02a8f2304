package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"soccer/internal/cli"
	"soccer/internal/desktop"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(desktop.Run).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
