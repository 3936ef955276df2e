// Package cardlist implements filterable card lists over a catalog.
//
// A List tracks a working set of card names, each flagged valid or invalid,
// plus two filter chains: inclusive filters that every visible card must
// satisfy and exclusive filters that no visible card may satisfy. Views such
// as Names, Cards and the per-category accessors are recomputed on every call
// from the live working set and chains.
//
// Mutations take a Selector: a card name, a card record, a predicate over
// card records, or a list of any of those. Malformed selectors are silent
// no-ops. The only error this package reports is an unavailable catalog at
// construction time.
//
// A List is not safe for concurrent mutation; callers serialize access.
package cardlist
