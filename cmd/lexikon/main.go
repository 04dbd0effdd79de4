// Command lexikon resolves German terms and translates text from the
// command line, using the same wiring as the HTTP server.
//
// Usage:
//
//	lexikon lookup <term> [--external]
//	lexikon translate <text> [--source de] [--target en]
//	lexikon suggest
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
