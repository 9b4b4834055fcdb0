// Package main is the entry point for the tid CLI application.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eykd/typedid-go/cmd"
)

func main() {
	// Cancelled on SIGINT so bulk generation stops between ids.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.RunContext(ctx)
	cancel()
	os.Exit(code)
}
