// cmd/matchlog/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fieldstats/matchlog/internal/cli"
)

func main() {
	// An interrupt cancels the command context so in-flight fetches unwind
	// and the application closes through the normal teardown path.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
