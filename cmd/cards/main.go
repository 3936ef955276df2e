// Package main prints a filtered Thunderstone card list.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cardscmd "github.com/louisbranch/thunderstone/internal/cmd/cards"
	"github.com/louisbranch/thunderstone/internal/platform/config"
)

func main() {
	cfg, err := cardscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cardscmd.Run(ctx, cfg, os.Stdout); err != nil {
		message := cardscmd.ErrorMessage(err, os.Getenv("LANG"), cfg.Verbose)
		if cardscmd.IsUsageError(err) {
			fmt.Fprintf(os.Stderr, "Error: %s\n\n", message)
			flag.Usage()
			stop()
			os.Exit(2)
		}
		config.Exitf("Error: %s", message)
	}
}
