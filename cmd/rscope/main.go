// Package main provides the rscope command, which identifies the resampling
// filter used by an image resizer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Fepozopo/rscope/pkg/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.Execute(ctx)
}
