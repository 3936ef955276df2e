package cardlist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/thunderstone/internal/catalog"
)

// List is a filterable, mutable subset of a catalog.
type List struct {
	catalog *catalog.Catalog
	opts    options

	// order keeps working-set insertion order; flags holds the valid bit.
	order []string
	flags map[string]bool

	include []*Filter
	exclude []*Filter
}

// Source seeds a new list. See FromCatalog, FromList and FromNames.
type Source interface {
	source()
}

type catalogSource struct{}

type listSource struct{ list *List }

type namesSource struct{ names []string }

func (catalogSource) source() {}
func (listSource) source()    {}
func (namesSource) source()   {}

// FromCatalog seeds a list with every catalog card, all valid.
func FromCatalog() Source { return catalogSource{} }

// FromList seeds a list as a deep copy of l.
func FromList(l *List) Source { return listSource{list: l} }

// FromNames seeds a list with exactly names, all valid, in order.
func FromNames(names ...string) Source {
	return namesSource{names: append([]string(nil), names...)}
}

// Option configures list behavior.
type Option func(*options)

type options struct {
	legacyAddPredicate bool
	strictNames        bool
}

// WithLegacyAddPredicate makes Add with a predicate mark matching cards
// invalid instead of valid, for callers that depend on the old randomizer
// behavior.
func WithLegacyAddPredicate() Option {
	return func(o *options) { o.legacyAddPredicate = true }
}

// WithStrictNames ignores names the catalog does not know, both when seeding
// and on every mutation.
func WithStrictNames() Option {
	return func(o *options) { o.strictNames = true }
}

// New creates a list over cat seeded from src. A nil src seeds every catalog
// card. New fails only when cat is not loaded.
func New(cat *catalog.Catalog, src Source, opts ...Option) (*List, error) {
	if err := cat.Ready(); err != nil {
		return nil, fmt.Errorf("new card list: %w", err)
	}

	if s, ok := src.(listSource); ok && s.list != nil {
		cp := s.list.Copy()
		cp.catalog = cat
		for _, opt := range opts {
			if opt != nil {
				opt(&cp.opts)
			}
		}
		return cp, nil
	}

	l := &List{
		catalog: cat,
		flags:   make(map[string]bool),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&l.opts)
		}
	}

	switch s := src.(type) {
	case namesSource:
		l.Add(Names(s.names...))
	default:
		l.Add(Names(cat.Names()...))
	}
	return l, nil
}

// Copy returns an independent list with the same working set, validity flags
// and filter chains. Filters are shared by reference.
func (l *List) Copy() *List {
	cp := &List{
		catalog: l.catalog,
		opts:    l.opts,
		order:   make([]string, 0, len(l.order)),
		flags:   make(map[string]bool, len(l.flags)),
	}
	for _, name := range l.order {
		cp.order = append(cp.order, name)
		cp.flags[name] = true
	}
	cp.include = slices.Clone(l.include)
	cp.exclude = slices.Clone(l.exclude)

	var invalid []string
	for _, name := range l.order {
		if !l.flags[name] {
			invalid = append(invalid, name)
		}
	}
	cp.Invalidate(Names(invalid...))
	return cp
}

// Catalog returns the catalog the list reads from.
func (l *List) Catalog() *catalog.Catalog {
	return l.catalog
}

// Has reports whether name is tracked, valid or not. Surrounding whitespace
// is ignored, as it is for ByName selectors.
func (l *List) Has(name string) bool {
	_, ok := l.flags[strings.TrimSpace(name)]
	return ok
}

// Tracked returns every tracked name in working-set order.
func (l *List) Tracked() []string {
	return slices.Clone(l.order)
}

// Len returns the number of tracked names.
func (l *List) Len() int {
	return len(l.order)
}

func (l *List) set(name string, valid bool) {
	if l.opts.strictNames && !l.catalog.Contains(name) {
		return
	}
	if _, ok := l.flags[name]; !ok {
		l.order = append(l.order, name)
	}
	l.flags[name] = valid
}

func (l *List) delete(names ...string) {
	if len(names) == 0 {
		return
	}
	gone := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := l.flags[name]; ok {
			delete(l.flags, name)
			gone[name] = struct{}{}
		}
	}
	if len(gone) == 0 {
		return
	}
	l.order = slices.DeleteFunc(l.order, func(name string) bool {
		_, ok := gone[name]
		return ok
	})
}

// matching returns tracked names whose catalog record satisfies match.
// Names missing from the catalog have no record and never match.
func (l *List) matching(match catalog.Predicate) []string {
	var out []string
	for _, name := range l.order {
		card, ok := l.catalog.Get(name)
		if ok && match(card) {
			out = append(out, name)
		}
	}
	return out
}
