package i18n

import apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"

// enUSMessages holds the base templates. Template data is the error metadata.
var enUSMessages = map[apperrors.Code]string{
	apperrors.CodeCatalogUnavailable:      "The card catalog could not be loaded.",
	apperrors.CodeCatalogCardNameEmpty:    "Card entry {{.index}} has no name.",
	apperrors.CodeCatalogDuplicateCard:    "Card {{.name}} is listed more than once (entry {{.index}}).",
	apperrors.CodeCatalogUnknownCategory:  "{{with .name}}Card {{.}} has an {{else}}An {{end}}unknown category: {{.category}}.",
	apperrors.CodeCatalogUnknownCardInSet: "Set {{.set}} lists {{.name}}, which is not in the catalog.",
	apperrors.CodeFilterInvalid:           "The filter {{with .filter}}{{printf \"%q\" .}} {{end}}is not valid.",
	apperrors.CodeManifestUnknownSet:      "Unknown set: {{.set}}.",
	apperrors.CodeNotFound:                "The requested card was not found.",
}
