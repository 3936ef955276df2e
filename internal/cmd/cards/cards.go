// Package cards parses the cards command configuration and prints the card
// list it describes.
package cards

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/thunderstone/internal/cardlist"
	"github.com/louisbranch/thunderstone/internal/catalog"
	"github.com/louisbranch/thunderstone/internal/catalog/filter"
	"github.com/louisbranch/thunderstone/internal/catalog/jsonsource"
	"github.com/louisbranch/thunderstone/internal/catalog/manifest"
	entrypoint "github.com/louisbranch/thunderstone/internal/platform/cmd"
	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
	"github.com/louisbranch/thunderstone/internal/platform/errors/i18n"
	storagesqlite "github.com/louisbranch/thunderstone/internal/storage/sqlite"
)

// Config holds cards command configuration.
type Config struct {
	DBPath     string `env:"CATALOG_DB"`
	DataDir    string `env:"DATA_DIR" envDefault:"data"`
	Sets       []string
	Filter     string
	Exclude    string
	Invalidate []string
	Category   string
	Fields     filter.Fields
	Strict     bool
	Verbose    bool `env:"VERBOSE"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite catalog database (overrides -dir)")
	fs.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "directory containing cards.json and sets.json")
	fs.Func("sets", "comma-separated sets to draw cards from (default: whole catalog)", func(value string) error {
		cfg.Sets = splitList(value)
		return nil
	})
	fs.StringVar(&cfg.Filter, "filter", "", `inclusive filter, e.g. category = "Heroes" AND cost >= 5`)
	fs.StringVar(&cfg.Exclude, "exclude", "", "exclusive filter; matching cards are hidden")
	fs.Func("invalidate", "comma-separated card names to mark invalid", func(value string) error {
		cfg.Invalidate = splitList(value)
		return nil
	})
	fs.StringVar(&cfg.Category, "category", "", "print a single category: "+categoryChoices())
	fs.Func("fields", "typed card attributes usable in filters, e.g. cost:int,gold:int,class:string", func(value string) error {
		fields, err := filter.ParseFields(value)
		if err != nil {
			return err
		}
		cfg.Fields = fields
		return nil
	})
	fs.BoolVar(&cfg.Strict, "strict", false, "ignore card names missing from the catalog")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "include error codes and details in error output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the card list and prints it to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCards, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	src, sets, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return err
	}
	list, err := buildList(cat, sets, cfg)
	if err != nil {
		return err
	}
	return render(out, list, cfg.Category)
}

func openSource(ctx context.Context, cfg Config) (catalog.Source, *manifest.Manifest, func(), error) {
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		store, err := storagesqlite.OpenCatalog(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open catalog store: %w", err)
		}
		closeStore := func() { _ = store.Close() }
		var sets *manifest.Manifest
		if len(cfg.Sets) > 0 {
			if sets, err = store.Manifest(ctx); err != nil {
				closeStore()
				return nil, nil, nil, err
			}
		}
		return store, sets, closeStore, nil
	}

	dir := jsonsource.Dir(strings.TrimSpace(cfg.DataDir))
	var sets *manifest.Manifest
	if len(cfg.Sets) > 0 {
		var err error
		if sets, err = dir.Manifest(ctx); err != nil {
			return nil, nil, nil, err
		}
	}
	return dir, sets, func() {}, nil
}

func buildList(cat *catalog.Catalog, sets *manifest.Manifest, cfg Config) (*cardlist.List, error) {
	var opts []cardlist.Option
	if cfg.Strict {
		opts = append(opts, cardlist.WithStrictNames())
	}

	src := cardlist.FromCatalog()
	if len(cfg.Sets) > 0 {
		names, err := sets.Cards(cfg.Sets...)
		if err != nil {
			return nil, err
		}
		src = cardlist.FromNames(names...)
	}
	list, err := cardlist.New(cat, src, opts...)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		expr      string
		exclusive bool
	}{
		{expr: cfg.Filter, exclusive: false},
		{expr: cfg.Exclude, exclusive: true},
	} {
		match, err := filter.Parse(f.expr, cfg.Fields)
		if err != nil {
			return nil, err
		}
		if match != nil {
			list.AddFilter(cardlist.NewFilter(f.expr, match), f.exclusive)
		}
	}

	if len(cfg.Invalidate) > 0 {
		list.Invalidate(cardlist.Names(cfg.Invalidate...))
	}
	return list, nil
}

func render(out io.Writer, list *cardlist.List, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		for _, c := range catalog.Categories() {
			if err := renderSection(out, c.Title(), list.InCategory(c)); err != nil {
				return err
			}
		}
		return nil
	}

	if strings.EqualFold(category, "market") {
		return renderNames(out, list.Market())
	}
	c, err := catalog.ParseCategory(category)
	if err != nil {
		return err
	}
	return renderNames(out, list.InCategory(c))
}

func renderSection(out io.Writer, title string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(out, "%s:\n", title); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(out, "  %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

func renderNames(out io.Writer, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// categoryChoices lists the short category names accepted by -category.
func categoryChoices() string {
	choices := make([]string, 0, len(catalog.Categories())+1)
	for _, c := range catalog.Categories() {
		if alias := c.Alias(); alias != "" {
			choices = append(choices, alias)
		}
	}
	return strings.Join(append(choices, "market"), ", ")
}

// ErrorMessage renders err for the terminal in the given locale. Verbose
// output appends the error code and metadata.
func ErrorMessage(err error, locale string, verbose bool) string {
	message := i18n.GetCatalog(locale).Message(err)
	var appErr *apperrors.Error
	if verbose && errors.As(err, &appErr) {
		return message + "\n" + appErr.Describe()
	}
	return message
}

// IsUsageError reports whether err stems from bad command input rather than
// an unavailable catalog.
func IsUsageError(err error) bool {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeFilterInvalid, apperrors.CodeManifestUnknownSet, apperrors.CodeCatalogUnknownCategory:
		return true
	default:
		return false
	}
}
