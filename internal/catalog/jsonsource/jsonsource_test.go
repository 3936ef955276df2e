package jsonsource

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/louisbranch/thunderstone/internal/catalog"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirCards(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CardsFile, `[
		{"Name": "Arnak", "Category": "heroes", "Set": "Wrath of the Elements", "Cost": 7, "Class": "Wizard"},
		{"Name": "Slime", "Category": "Monsters", "Health": 2},
		{"Name": "Villager", "Category": "Villagers"}
	]`)

	cards, err := Dir(dir).Cards(context.Background())
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("cards = %d, want 3", len(cards))
	}
	arnak := cards[0]
	if arnak.Name != "Arnak" || arnak.Category != catalog.CategoryHeroes || arnak.Set != "Wrath of the Elements" {
		t.Fatalf("unexpected card: %+v", arnak)
	}
	if cost, ok := arnak.Attribute("Cost"); !ok || cost != float64(7) {
		t.Fatalf("Cost = %v, %v", cost, ok)
	}
	if _, ok := arnak.Attributes["Name"]; ok {
		t.Fatal("expected Name to stay out of attributes")
	}
	if cards[1].Set != "" {
		t.Fatalf("expected empty set, got %q", cards[1].Set)
	}
	if cards[2].Category != catalog.Category("Villagers") {
		t.Fatalf("category = %q, want Villagers", cards[2].Category)
	}

	cat, err := catalog.Load(context.Background(), Dir(dir))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if got := cat.Names(); !reflect.DeepEqual(got, []string{"Arnak", "Slime", "Villager"}) {
		t.Fatalf("Names() = %v", got)
	}
}

func TestDirCardsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing"},
		{name: "not array", content: `{"Name": "Arnak"}`},
		{name: "name type", content: `[{"Name": 3, "Category": "Heroes"}]`},
		{name: "category type", content: `[{"Name": "Arnak", "Category": ["Heroes"]}]`},
		{name: "set type", content: `[{"Name": "Arnak", "Category": "Heroes", "Set": 1}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.content != "" {
				writeFile(t, dir, CardsFile, tc.content)
			}
			if _, err := Dir(dir).Cards(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDirManifest(t *testing.T) {
	dir := t.TempDir()

	m, err := Dir(dir).Manifest(context.Background())
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil manifest without sets.json")
	}

	writeFile(t, dir, SetsFile, `{"Base Set": {"Quest Number": 1, "Heroes": ["Amazon"]}}`)
	m, err = Dir(dir).Manifest(context.Background())
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if got := m.SetNames(); !reflect.DeepEqual(got, []string{"Base Set"}) {
		t.Fatalf("SetNames() = %v", got)
	}

	writeFile(t, dir, SetsFile, `{"Base Set": {"Villagers": ["Amazon"]}}`)
	if _, err := Dir(dir).Manifest(context.Background()); err == nil {
		t.Fatal("expected manifest error")
	}
}

func TestDirCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Dir(t.TempDir()).Cards(ctx); err == nil {
		t.Fatal("expected canceled context error")
	}
	if _, err := Dir(t.TempDir()).Manifest(ctx); err == nil {
		t.Fatal("expected canceled context error")
	}
}
