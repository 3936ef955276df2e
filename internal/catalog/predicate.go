package catalog

// Predicate is a boolean test over a card record.
type Predicate func(Card) bool

// InCategory matches cards tagged with any of cats.
func InCategory(cats ...Category) Predicate {
	return func(card Card) bool {
		for _, category := range cats {
			if card.Category == category {
				return true
			}
		}
		return false
	}
}

// InSet matches cards shipped in any of sets.
func InSet(sets ...string) Predicate {
	return func(card Card) bool {
		for _, set := range sets {
			if card.Set == set {
				return true
			}
		}
		return false
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(card Card) bool {
		return !p(card)
	}
}
