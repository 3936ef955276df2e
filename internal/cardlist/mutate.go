package cardlist

import "github.com/louisbranch/thunderstone/internal/catalog"

// Add marks the selected cards valid, tracking names not yet in the list.
//
// A predicate only considers cards already tracked and marks matches valid.
// With WithLegacyAddPredicate it marks them invalid instead.
func (l *List) Add(sel Selector) *List {
	l.apply(sel, func(name string) {
		l.set(name, true)
	}, func(match catalog.Predicate) {
		valid := !l.opts.legacyAddPredicate
		for _, name := range l.matching(match) {
			l.set(name, valid)
		}
	})
	return l
}

// Remove drops the selected cards from the working set entirely.
func (l *List) Remove(sel Selector) *List {
	l.apply(sel, func(name string) {
		l.delete(name)
	}, func(match catalog.Predicate) {
		l.delete(l.matching(match)...)
	})
	return l
}

// Validate marks the selected cards valid.
func (l *List) Validate(sel Selector) *List {
	l.apply(sel, func(name string) {
		l.set(name, true)
	}, func(match catalog.Predicate) {
		for _, name := range l.matching(match) {
			l.set(name, true)
		}
	})
	return l
}

// Invalidate marks the selected cards invalid, keeping them tracked.
func (l *List) Invalidate(sel Selector) *List {
	l.apply(sel, func(name string) {
		l.set(name, false)
	}, func(match catalog.Predicate) {
		for _, name := range l.matching(match) {
			l.set(name, false)
		}
	})
	return l
}

func (l *List) apply(sel Selector, onName func(string), onMatch func(catalog.Predicate)) {
	for _, lf := range normalize(sel) {
		if lf.match != nil {
			onMatch(lf.match)
			continue
		}
		onName(lf.name)
	}
}
