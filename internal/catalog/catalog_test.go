package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func sampleCards() []Card {
	return []Card{
		{Name: "Arnak", Category: CategoryHeroes, Set: "Wrath of the Elements"},
		{Name: "Slime", Category: CategoryMonsters},
		{Name: "Sword", Category: CategoryWeapons, Attributes: map[string]any{"Cost": float64(3)}},
	}
}

func TestNewKeepsCatalogOrder(t *testing.T) {
	c, err := New(sampleCards())
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if got, want := c.Names(), []string{"Arnak", "Slime", "Sword"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if err := c.Ready(); err != nil {
		t.Fatalf("Ready() = %v", err)
	}
}

func TestGet(t *testing.T) {
	c, err := New(sampleCards())
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	card, ok := c.Get("Sword")
	if !ok {
		t.Fatal("expected Sword to be found")
	}
	if card.Category != CategoryWeapons {
		t.Fatalf("category = %q", card.Category)
	}
	if cost, ok := card.Attribute("Cost"); !ok || cost != float64(3) {
		t.Fatalf("Cost attribute = %v, %v", cost, ok)
	}

	if _, ok := c.Get("Dragon"); ok {
		t.Fatal("expected unknown name to be absent")
	}
	if c.Contains("Dragon") {
		t.Fatal("expected Contains to be false for unknown name")
	}
}

func TestNewRejectsDuplicateAndEmptyNames(t *testing.T) {
	_, err := New([]Card{{Name: "Slime"}, {Name: " Slime "}})
	if apperrors.CodeOf(err) != apperrors.CodeCatalogDuplicateCard {
		t.Fatalf("expected duplicate card error, got %v", err)
	}

	_, err = New([]Card{{Name: "  "}})
	if apperrors.CodeOf(err) != apperrors.CodeCatalogCardNameEmpty {
		t.Fatalf("expected empty name error, got %v", err)
	}
}

func TestNewAllowsEmptyCatalog(t *testing.T) {
	c, err := New(nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if err := c.Ready(); err != nil {
		t.Fatalf("expected empty catalog to be ready, got %v", err)
	}
}

func TestReadyUnavailable(t *testing.T) {
	var nilCatalog *Catalog
	if !errors.Is(nilCatalog.Ready(), ErrUnavailable) {
		t.Fatal("expected nil catalog to be unavailable")
	}
	if !errors.Is((&Catalog{}).Ready(), ErrUnavailable) {
		t.Fatal("expected zero catalog to be unavailable")
	}
	if nilCatalog.Names() != nil || nilCatalog.Len() != 0 {
		t.Fatal("expected nil catalog to be empty")
	}
	if _, ok := nilCatalog.Get("Arnak"); ok {
		t.Fatal("expected nil catalog lookup to miss")
	}
}

func TestLoad(t *testing.T) {
	src := SourceFunc(func(context.Context) ([]Card, error) {
		return sampleCards(), nil
	})

	c, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
}

func TestLoadErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		src  Source
		want error
	}{
		{name: "nil source", src: nil, want: ErrUnavailable},
		{name: "empty source", src: SourceFunc(func(context.Context) ([]Card, error) { return nil, nil }), want: ErrUnavailable},
		{name: "source error", src: SourceFunc(func(context.Context) ([]Card, error) { return nil, boom }), want: boom},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(context.Background(), tc.src)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Load() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	if _, err := Load(context.Background(), SourceFunc(func(context.Context) ([]Card, error) { return sampleCards(), nil })); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := Load(context.Background(), nil); err == nil {
		t.Fatal("expected nil source error")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	ok := spans[0]
	if ok.Name() != "catalog.load" {
		t.Fatalf("span name = %q", ok.Name())
	}
	found := false
	for _, attr := range ok.Attributes() {
		if attr.Key == attribute.Key("catalog.cards") && attr.Value.AsInt64() == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected catalog.cards attribute, got %v", ok.Attributes())
	}
	if spans[1].Status().Code != codes.Error {
		t.Fatalf("failed load status = %v, want error", spans[1].Status().Code)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, SourceFunc(func(context.Context) ([]Card, error) { return sampleCards(), nil }))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestPredicates(t *testing.T) {
	sword := Card{Name: "Sword", Category: CategoryWeapons, Set: "Base Set"}

	if !InCategory(MarketCategories...)(sword) {
		t.Fatal("expected sword to be a market card")
	}
	if InCategory(CategoryHeroes)(sword) {
		t.Fatal("expected sword not to be a hero")
	}
	if !InSet("Promos", "Base Set")(sword) {
		t.Fatal("expected sword to be in base set")
	}
	if Not(InSet("Base Set"))(sword) {
		t.Fatal("expected negated set predicate to fail")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{raw: "Heroes", want: CategoryHeroes},
		{raw: "heroes", want: CategoryHeroes},
		{raw: "  dungeon   ROOMS ", want: CategoryDungeonRooms},
		{raw: "rooms", want: CategoryDungeonRooms},
		{raw: "quests", want: CategorySideQuests},
		{raw: "Guild Sponsorships", want: CategoryGuildSponsorships},
		{raw: "classes", want: CategoryPrestigeClasses},
	}
	for _, tc := range tests {
		got, err := ParseCategory(tc.raw)
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{"", "villagers"} {
		if _, err := ParseCategory(raw); apperrors.CodeOf(err) != apperrors.CodeCatalogUnknownCategory {
			t.Fatalf("ParseCategory(%q) error = %v", raw, err)
		}
	}
}

func TestCategoryHelpers(t *testing.T) {
	if len(Categories()) != 11 {
		t.Fatalf("expected 11 categories, got %d", len(Categories()))
	}
	if !CategorySpells.Known() || Category("Villagers").Known() {
		t.Fatal("unexpected Known() result")
	}
	if CategoryDungeonRooms.Alias() != "rooms" {
		t.Fatalf("Alias() = %q", CategoryDungeonRooms.Alias())
	}
	if Category("Villagers").Alias() != "" {
		t.Fatal("expected unknown category to have no alias")
	}
	if CategorySideQuests.Title() != "Side Quests" {
		t.Fatalf("Title() = %q", CategorySideQuests.Title())
	}
}
