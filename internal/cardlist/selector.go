package cardlist

import (
	"strings"

	"github.com/louisbranch/thunderstone/internal/catalog"
)

// Selector picks the cards a mutation applies to.
//
// The variants are ByName, ByRecord, ByPredicate and ByList. A nil Selector,
// an empty name, a record without a name and a nil predicate select nothing.
type Selector interface {
	selector()
}

// ByName selects one card by name.
type ByName string

// ByRecord selects the card named by the record's Name.
type ByRecord catalog.Card

// ByPredicate selects every tracked card whose record matches.
type ByPredicate catalog.Predicate

// ByList selects the union of its elements, applied in order.
type ByList []Selector

func (ByName) selector()      {}
func (ByRecord) selector()    {}
func (ByPredicate) selector() {}
func (ByList) selector()      {}

// Names selects cards by name.
func Names(names ...string) ByList {
	out := make(ByList, 0, len(names))
	for _, name := range names {
		out = append(out, ByName(name))
	}
	return out
}

// Records selects cards by record.
func Records(cards ...catalog.Card) ByList {
	out := make(ByList, 0, len(cards))
	for _, card := range cards {
		out = append(out, ByRecord(card))
	}
	return out
}

// Match selects tracked cards matching p.
func Match(p catalog.Predicate) ByPredicate {
	return ByPredicate(p)
}

// leaf is a normalized selector: exactly one of name or match is set.
type leaf struct {
	name  string
	match catalog.Predicate
}

// normalize flattens lists and records down to name and predicate leaves,
// preserving order and dropping selectors that select nothing.
func normalize(sel Selector) []leaf {
	var leaves []leaf
	var walk func(Selector)
	walk = func(s Selector) {
		switch v := s.(type) {
		case ByName:
			if name := strings.TrimSpace(string(v)); name != "" {
				leaves = append(leaves, leaf{name: name})
			}
		case ByRecord:
			walk(ByName(v.Name))
		case ByPredicate:
			if v != nil {
				leaves = append(leaves, leaf{match: catalog.Predicate(v)})
			}
		case ByList:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(sel)
	return leaves
}

// resolveName returns the single name a selector identifies, if any.
func resolveName(sel Selector) (string, bool) {
	switch v := sel.(type) {
	case ByName:
		name := strings.TrimSpace(string(v))
		return name, name != ""
	case ByRecord:
		return resolveName(ByName(v.Name))
	default:
		return "", false
	}
}
