package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"auris-notifier/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "notifier:", err)
		stop()
		os.Exit(1)
	}
}
