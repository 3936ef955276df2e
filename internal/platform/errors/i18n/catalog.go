// Package i18n renders user-facing messages for coded errors.
package i18n

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"text/template"

	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
	"golang.org/x/text/language"
)

// BaseLocale is the locale every lookup falls back to.
var BaseLocale = language.AmericanEnglish

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   language.Tag
	messages map[apperrors.Code]string
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[language.Tag]*Catalog{
		BaseLocale: NewCatalog(BaseLocale, enUSMessages),
	}
)

// GetCatalog returns the best catalog for locale, which may be a BCP 47 tag
// ("en-US") or a POSIX locale ("en_US.UTF-8"). Unknown locales fall back to
// en-US.
func GetCatalog(locale string) *Catalog {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()

	tags := make([]language.Tag, 0, len(catalogs))
	tags = append(tags, BaseLocale)
	for tag := range catalogs {
		if tag != BaseLocale {
			tags = append(tags, tag)
		}
	}
	_, index, confidence := language.NewMatcher(tags).Match(parseLocale(locale))
	if confidence == language.No {
		return catalogs[BaseLocale]
	}
	return catalogs[tags[index]]
}

func parseLocale(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if before, _, ok := strings.Cut(locale, "."); ok {
		locale = before
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || strings.EqualFold(locale, "C") || strings.EqualFold(locale, "POSIX") {
		return BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return BaseLocale
	}
	return tag
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() language.Tag {
	return c.locale
}

// Format renders the message template for code with metadata as data.
// It falls back to the code itself when no template is registered, and to
// the raw template when it fails to render.
func (c *Catalog) Format(code apperrors.Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return string(code)
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// Message renders err for the user. Coded errors use the catalog template;
// anything else falls back to err.Error().
func (c *Catalog) Message(err error) string {
	if err == nil {
		return ""
	}
	var coded *apperrors.Error
	if !errors.As(err, &coded) {
		return err.Error()
	}
	if _, ok := c.messages[coded.Code]; !ok {
		return err.Error()
	}
	return c.Format(coded.Code, coded.Metadata)
}

// RegisterCatalog registers or replaces the catalog for its locale.
func RegisterCatalog(cat *Catalog) {
	if cat == nil {
		return
	}
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[cat.locale] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale language.Tag, messages map[apperrors.Code]string) *Catalog {
	cloned := make(map[apperrors.Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}
