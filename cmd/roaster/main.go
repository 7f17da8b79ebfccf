package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"roaster-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.Options{Verbose: isVerbose()})
	stop()
	os.Exit(code)
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("ROASTER_DEBUG"), "1") || strings.EqualFold(os.Getenv("ROASTER_DEBUG"), "true")
}
