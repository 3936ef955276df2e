// Package catalogimporter loads a JSON catalog directory into the SQLite
// catalog store.
package catalogimporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/louisbranch/thunderstone/internal/catalog/jsonsource"
	storagesqlite "github.com/louisbranch/thunderstone/internal/storage/sqlite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/louisbranch/thunderstone/internal/tools/importer/catalog")

// Config holds configuration for the catalog importer.
type Config struct {
	Dir    string
	DBPath string
	DryRun bool
}

// ParseConfig parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		DBPath: filepath.Join("data", "catalog.db"),
	}

	fs.StringVar(&cfg.Dir, "dir", "", "directory containing cards.json and sets.json")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "catalog database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.Dir) == "" {
		return Config{}, errors.New("dir is required")
	}
	if !cfg.DryRun && strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, errors.New("db-path is required")
	}

	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	ctx, span := tracer.Start(ctx, "catalogimporter.run", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return errors.New("dir is required")
	}

	src := jsonsource.Dir(dir)
	cards, err := src.Cards(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	sets, err := src.Manifest(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	cat, err := validate(cards, sets)
	if err != nil {
		return fmt.Errorf("validate %s: %w", dir, err)
	}
	span.SetAttributes(
		attribute.Int("catalog.cards", cat.Len()),
		attribute.Int("catalog.sets", len(sets.SetNames())),
		attribute.Bool("catalog.dry_run", cfg.DryRun),
	)

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d card(s) in %d set(s)\n", cat.Len(), len(sets.SetNames()))
		return err
	}

	store, err := storagesqlite.OpenCatalog(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer store.Close()

	if err := importCatalog(ctx, store, cat, sets); err != nil {
		return fmt.Errorf("import %s: %w", dir, err)
	}

	_, err = fmt.Fprintf(out, "imported %d card(s) in %d set(s) into %s\n", cat.Len(), len(sets.SetNames()), cfg.DBPath)
	return err
}
