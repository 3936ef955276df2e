// Package errors provides structured, code-carrying errors for the catalog
// and card list packages.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog errors
	CodeCatalogUnavailable      Code = "CATALOG_UNAVAILABLE"
	CodeCatalogCardNameEmpty    Code = "CATALOG_CARD_NAME_EMPTY"
	CodeCatalogDuplicateCard    Code = "CATALOG_DUPLICATE_CARD"
	CodeCatalogUnknownCategory  Code = "CATALOG_UNKNOWN_CATEGORY"
	CodeCatalogUnknownCardInSet Code = "CATALOG_UNKNOWN_CARD_IN_SET"

	// Filter errors
	CodeFilterInvalid Code = "FILTER_INVALID"

	// Manifest errors
	CodeManifestUnknownSet Code = "MANIFEST_UNKNOWN_SET"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

