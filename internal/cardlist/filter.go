package cardlist

import (
	"slices"

	"github.com/louisbranch/thunderstone/internal/catalog"
)

// Filter is a named predicate attached to a list's filter chains.
// Identity is the pointer: adding the same *Filter twice is a no-op.
type Filter struct {
	label string
	match catalog.Predicate
}

// NewFilter wraps a predicate for use in a filter chain.
func NewFilter(label string, match catalog.Predicate) *Filter {
	return &Filter{label: label, match: match}
}

// Label returns the filter's descriptive label.
func (f *Filter) Label() string {
	return f.label
}

// Match reports whether card satisfies the filter. A filter without a
// predicate matches everything.
func (f *Filter) Match(card catalog.Card) bool {
	if f.match == nil {
		return true
	}
	return f.match(card)
}

func (f *Filter) usable() bool {
	return f != nil && f.match != nil
}

// AddFilter appends f to the exclusive chain when exclusive is true, else to
// the inclusive chain. Filters already in the chain, nil filters and filters
// without a predicate are ignored.
func (l *List) AddFilter(f *Filter, exclusive bool) *List {
	if !f.usable() {
		return l
	}
	chain := l.chain(exclusive)
	if !slices.Contains(*chain, f) {
		*chain = append(*chain, f)
	}
	return l
}

// RemoveFilter removes f from the chosen chain.
func (l *List) RemoveFilter(f *Filter, exclusive bool) *List {
	if f == nil {
		return l
	}
	chain := l.chain(exclusive)
	*chain = slices.DeleteFunc(*chain, func(existing *Filter) bool {
		return existing == f
	})
	return l
}

// Filters returns a chain in insertion order.
func (l *List) Filters(exclusive bool) []*Filter {
	return slices.Clone(*l.chain(exclusive))
}

func (l *List) chain(exclusive bool) *[]*Filter {
	if exclusive {
		return &l.exclude
	}
	return &l.include
}

// visible applies both chains to one name. A name without a catalog record
// fails any inclusive filter and is ignored by exclusive ones.
func (l *List) visible(name string) bool {
	if len(l.include) == 0 && len(l.exclude) == 0 {
		return true
	}
	card, ok := l.catalog.Get(name)
	if !ok {
		return len(l.include) == 0
	}
	for _, f := range l.include {
		if !f.match(card) {
			return false
		}
	}
	for _, f := range l.exclude {
		if f.match(card) {
			return false
		}
	}
	return true
}
