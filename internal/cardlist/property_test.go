package cardlist

import (
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/louisbranch/thunderstone/internal/catalog"
	"pgregory.net/rapid"
)

// genCatalog draws a catalog of uniquely named cards spread over the
// recognized categories plus one unrecognized tag.
func genCatalog(t *rapid.T) *catalog.Catalog {
	tags := append(catalog.Categories(), catalog.Category("Villagers"))
	count := rapid.IntRange(1, 24).Draw(t, "count")
	cards := make([]catalog.Card, 0, count)
	for i := 0; i < count; i++ {
		cards = append(cards, catalog.Card{
			Name:     fmt.Sprintf("card-%02d", i),
			Category: rapid.SampledFrom(tags).Draw(t, "category"),
			Set:      rapid.SampledFrom([]string{"Base Set", "Dragonspire", "Promos"}).Draw(t, "set"),
		})
	}
	c, err := catalog.New(cards)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

type mutation struct {
	op   string
	name string
}

// applyRandomMutations runs a drawn sequence of name mutations against l.
func applyRandomMutations(t *rapid.T, l *List, names []string, label string) {
	steps := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) mutation {
		return mutation{
			op:   rapid.SampledFrom([]string{"add", "remove", "validate", "invalidate"}).Draw(t, "op"),
			name: rapid.SampledFrom(names).Draw(t, "name"),
		}
	}), 0, 16).Draw(t, label)
	for _, step := range steps {
		sel := ByName(step.name)
		switch step.op {
		case "add":
			l.Add(sel)
		case "remove":
			l.Remove(sel)
		case "validate":
			l.Validate(sel)
		case "invalidate":
			l.Invalidate(sel)
		}
	}
}

func TestPropertyDefaultListIsWholeCatalog(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := genCatalog(t)
		l, err := New(cat, nil)
		if err != nil {
			t.Fatalf("new list: %v", err)
		}
		if !reflect.DeepEqual(l.Names(), cat.Names()) {
			t.Fatalf("Names() = %v, want %v", l.Names(), cat.Names())
		}
		for _, name := range cat.Names() {
			if !l.IsValid(ByName(name)) {
				t.Fatalf("expected %s to be valid", name)
			}
		}
	})
}

func TestPropertyAddThenRemoveIsAbsent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := genCatalog(t)
		l, err := New(cat, nil)
		if err != nil {
			t.Fatalf("new list: %v", err)
		}
		applyRandomMutations(t, l, cat.Names(), "prefix")
		name := rapid.SampledFrom(cat.Names()).Draw(t, "name")

		l.Add(ByName(name)).Remove(ByName(name))

		if l.Has(name) || slices.Contains(l.Tracked(), name) {
			t.Fatalf("expected %s to be absent from the working set", name)
		}
	})
}

func TestPropertyValidityToggle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := genCatalog(t)
		l, err := New(cat, nil)
		if err != nil {
			t.Fatalf("new list: %v", err)
		}
		applyRandomMutations(t, l, cat.Names(), "prefix")
		name := rapid.SampledFrom(cat.Names()).Draw(t, "name")

		l.Validate(ByName(name)).Invalidate(ByName(name))
		if l.IsValid(ByName(name)) {
			t.Fatalf("expected %s to be invalid", name)
		}
		l.Validate(ByName(name))
		if !l.IsValid(ByName(name)) {
			t.Fatalf("expected %s to be valid", name)
		}
	})
}

func TestPropertyCopyIsolation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := genCatalog(t)
		l, err := New(cat, nil)
		if err != nil {
			t.Fatalf("new list: %v", err)
		}
		applyRandomMutations(t, l, cat.Names(), "setup")

		cp := l.Copy()
		if !reflect.DeepEqual(cp.Tracked(), l.Tracked()) || !reflect.DeepEqual(cp.Names(), l.Names()) {
			t.Fatal("expected copy to match source")
		}

		sourceNames := l.Names()
		applyRandomMutations(t, cp, cat.Names(), "copy")
		if !reflect.DeepEqual(l.Names(), sourceNames) {
			t.Fatalf("source changed after copy mutation: %v != %v", l.Names(), sourceNames)
		}

		copyNames := cp.Names()
		applyRandomMutations(t, l, cat.Names(), "source")
		if !reflect.DeepEqual(cp.Names(), copyNames) {
			t.Fatalf("copy changed after source mutation: %v != %v", cp.Names(), copyNames)
		}
	})
}

func TestPropertyFilterComposition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := genCatalog(t)
		l, err := New(cat, nil)
		if err != nil {
			t.Fatalf("new list: %v", err)
		}
		applyRandomMutations(t, l, cat.Names(), "setup")

		includeSet := rapid.SampledFrom([]string{"Base Set", "Dragonspire", "Promos"}).Draw(t, "include")
		excludeCategory := rapid.SampledFrom(catalog.Categories()).Draw(t, "exclude")
		p := catalog.InSet(includeSet)
		q := catalog.InCategory(excludeCategory)

		var valid []string
		for _, name := range l.Tracked() {
			if l.IsValid(ByName(name)) {
				valid = append(valid, name)
			}
		}

		l.AddFilter(NewFilter("p", p), false).AddFilter(NewFilter("q", q), true)

		want := []string{}
		for _, name := range valid {
			card, _ := cat.Get(name)
			if p(card) && !q(card) {
				want = append(want, name)
			}
		}
		if got := l.Names(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	})
}

func TestPropertyCategoryPartition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cat := genCatalog(t)
		l, err := New(cat, nil)
		if err != nil {
			t.Fatalf("new list: %v", err)
		}
		applyRandomMutations(t, l, cat.Names(), "setup")

		views := [][]string{
			l.Heroes(), l.Monsters(), l.Rooms(), l.Items(), l.Spells(), l.Weapons(),
			l.Guardians(), l.Treasures(), l.Quests(), l.Guilds(), l.Classes(),
		}
		seen := make(map[string]int)
		for _, view := range views {
			for _, name := range view {
				seen[name]++
			}
		}
		for name, count := range seen {
			if count != 1 {
				t.Fatalf("%s appears in %d category views", name, count)
			}
		}

		union := make(map[string]bool)
		for _, view := range [][]string{
			l.Heroes(), l.Monsters(), l.Rooms(), l.Market(), l.Guardians(),
			l.Treasures(), l.Quests(), l.Guilds(), l.Classes(),
		} {
			for _, name := range view {
				union[name] = true
			}
		}
		for _, name := range l.Names() {
			card, _ := cat.Get(name)
			if card.Category.Known() != union[name] {
				t.Fatalf("%s (%s) partition membership = %v", name, card.Category, union[name])
			}
		}
		if len(union) > len(l.Names()) {
			t.Fatal("category views contain names outside Names()")
		}
	})
}
