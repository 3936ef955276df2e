package cardlist

import "github.com/louisbranch/thunderstone/internal/catalog"

// Names returns the visible card names: valid, tracked names in working-set
// order that pass every inclusive filter and no exclusive filter.
func (l *List) Names() []string {
	names := make([]string, 0, len(l.order))
	for _, name := range l.order {
		if l.flags[name] && l.visible(name) {
			names = append(names, name)
		}
	}
	return names
}

// Cards returns the records of Names. Names missing from the catalog are
// dropped.
func (l *List) Cards() []catalog.Card {
	names := l.Names()
	cards := make([]catalog.Card, 0, len(names))
	for _, name := range names {
		if card, ok := l.catalog.Get(name); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// IsValid reports whether the card named by a ByName or ByRecord selector is
// tracked and valid. Other selectors are never valid.
func (l *List) IsValid(sel Selector) bool {
	name, ok := resolveName(sel)
	if !ok {
		return false
	}
	return l.flags[name]
}

// InCategory returns the visible names whose card is tagged with any of cats.
func (l *List) InCategory(cats ...catalog.Category) []string {
	match := catalog.InCategory(cats...)
	out := make([]string, 0)
	for _, name := range l.Names() {
		if card, ok := l.catalog.Get(name); ok && match(card) {
			out = append(out, name)
		}
	}
	return out
}

// Heroes returns the visible hero cards.
func (l *List) Heroes() []string { return l.InCategory(catalog.CategoryHeroes) }

// Monsters returns the visible monster cards.
func (l *List) Monsters() []string { return l.InCategory(catalog.CategoryMonsters) }

// Rooms returns the visible dungeon room cards.
func (l *List) Rooms() []string { return l.InCategory(catalog.CategoryDungeonRooms) }

// Items returns the visible item cards.
func (l *List) Items() []string { return l.InCategory(catalog.CategoryItems) }

// Spells returns the visible spell cards.
func (l *List) Spells() []string { return l.InCategory(catalog.CategorySpells) }

// Weapons returns the visible weapon cards.
func (l *List) Weapons() []string { return l.InCategory(catalog.CategoryWeapons) }

// Guardians returns the visible guardian cards.
func (l *List) Guardians() []string { return l.InCategory(catalog.CategoryGuardians) }

// Treasures returns the visible treasure cards.
func (l *List) Treasures() []string { return l.InCategory(catalog.CategoryTreasures) }

// Quests returns the visible side quest cards.
func (l *List) Quests() []string { return l.InCategory(catalog.CategorySideQuests) }

// Guilds returns the visible guild sponsorship cards.
func (l *List) Guilds() []string { return l.InCategory(catalog.CategoryGuildSponsorships) }

// Classes returns the visible prestige class cards.
func (l *List) Classes() []string { return l.InCategory(catalog.CategoryPrestigeClasses) }

// Market returns the visible items, spells and weapons.
func (l *List) Market() []string { return l.InCategory(catalog.MarketCategories...) }
