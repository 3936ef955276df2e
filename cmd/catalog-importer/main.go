// Package main imports a JSON card catalog into the SQLite catalog store.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	platformcmd "github.com/louisbranch/thunderstone/internal/platform/cmd"
	"github.com/louisbranch/thunderstone/internal/platform/config"
	"github.com/louisbranch/thunderstone/internal/platform/errors/i18n"
	catalogimporter "github.com/louisbranch/thunderstone/internal/tools/importer/catalog"
)

func main() {
	cfg, err := catalogimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceImporter, func(ctx context.Context) error {
		return catalogimporter.Run(ctx, cfg, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %s", i18n.GetCatalog(os.Getenv("LANG")).Message(err))
	}
}
