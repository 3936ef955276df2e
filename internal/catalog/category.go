package catalog

import (
	"strings"

	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the closed set of card type tags used by the catalog data.
type Category string

const (
	CategoryHeroes            Category = "Heroes"
	CategoryMonsters          Category = "Monsters"
	CategoryDungeonRooms      Category = "Dungeon Rooms"
	CategoryItems             Category = "Items"
	CategorySpells            Category = "Spells"
	CategoryWeapons           Category = "Weapons"
	CategoryGuardians         Category = "Guardians"
	CategoryTreasures         Category = "Treasures"
	CategorySideQuests        Category = "Side Quests"
	CategoryGuildSponsorships Category = "Guild Sponsorships"
	CategoryPrestigeClasses   Category = "Prestige Classes"
)

var categories = []Category{
	CategoryHeroes,
	CategoryMonsters,
	CategoryDungeonRooms,
	CategoryItems,
	CategorySpells,
	CategoryWeapons,
	CategoryGuardians,
	CategoryTreasures,
	CategorySideQuests,
	CategoryGuildSponsorships,
	CategoryPrestigeClasses,
}

// MarketCategories are the categories bought from the village market.
var MarketCategories = []Category{CategoryItems, CategorySpells, CategoryWeapons}

var categoryAliases = map[string]Category{
	"heroes":    CategoryHeroes,
	"monsters":  CategoryMonsters,
	"rooms":     CategoryDungeonRooms,
	"items":     CategoryItems,
	"spells":    CategorySpells,
	"weapons":   CategoryWeapons,
	"guardians": CategoryGuardians,
	"treasures": CategoryTreasures,
	"quests":    CategorySideQuests,
	"guilds":    CategoryGuildSponsorships,
	"classes":   CategoryPrestigeClasses,
}

// Categories returns the recognized tags in canonical order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Known reports whether c is one of the recognized tags.
func (c Category) Known() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Alias returns the short lowercase name of a recognized category, or "".
func (c Category) Alias() string {
	for alias, category := range categoryAliases {
		if category == c {
			return alias
		}
	}
	return ""
}

// Title renders a category the way it is printed in headings.
func (c Category) Title() string {
	return cases.Title(language.English).String(string(c))
}

// ParseCategory resolves a display tag ("dungeon rooms") or short alias
// ("rooms") to a Category, ignoring case and surrounding whitespace.
func ParseCategory(raw string) (Category, error) {
	fold := cases.Fold()
	key := fold.String(strings.Join(strings.Fields(raw), " "))
	if key == "" {
		return "", apperrors.New(apperrors.CodeCatalogUnknownCategory, "category is required")
	}
	if category, ok := categoryAliases[key]; ok {
		return category, nil
	}
	for _, category := range categories {
		if fold.String(string(category)) == key {
			return category, nil
		}
	}
	return "", apperrors.WithMetadata(apperrors.CodeCatalogUnknownCategory, "unknown category", map[string]string{"category": raw})
}
