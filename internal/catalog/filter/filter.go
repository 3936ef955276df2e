// Package filter compiles AIP-160 filter expressions into card predicates.
//
// Every expression may reference the built-in fields name, category and set.
// Card attributes become filterable once declared through Fields:
//
//	filter.Parse(`category = "Heroes" AND cost >= 5`, filter.Fields{"cost": filter.FieldInt})
//
// Attribute lookup is exact first, then case-insensitive with spaces treated
// as underscores, so victory_points resolves "Victory Points".
package filter

import (
	"fmt"
	"strings"

	"github.com/louisbranch/thunderstone/internal/catalog"
	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FieldType describes a supported filter field type.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
	FieldBool   FieldType = "bool"
)

// Fields declares filterable card attributes and their types.
type Fields map[string]FieldType

const (
	fieldName     = "name"
	fieldCategory = "category"
	fieldSet      = "set"
)

// Parse compiles filterStr into a predicate. An empty expression yields a
// nil predicate, which callers treat as match-all.
func Parse(filterStr string, fields Fields) (catalog.Predicate, error) {
	e, err := ParseExpr(filterStr, fields)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return func(card catalog.Card) bool {
		ok, err := Evaluate(e, CardResolver(card))
		return err == nil && ok
	}, nil
}

// ParseExpr parses and type-checks filterStr, returning the checked tree.
func ParseExpr(filterStr string, fields Fields) (*expr.Expr, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}

	decls, err := declarations(fields)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFilterInvalid, "declare filter fields", err)
	}

	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid, "parse filter", map[string]string{
			"filter": filterStr,
		}, err)
	}

	return filter.CheckedExpr.GetExpr(), nil
}

func declarations(fields Fields) (*filtering.Declarations, error) {
	decls := []filtering.DeclarationOption{
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(fieldName, filtering.TypeString),
		filtering.DeclareIdent(fieldCategory, filtering.TypeString),
		filtering.DeclareIdent(fieldSet, filtering.TypeString),
	}
	for name, kind := range fields {
		switch name {
		case fieldName, fieldCategory, fieldSet:
			return nil, fmt.Errorf("field %s is built in", name)
		}
		switch kind {
		case FieldString:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeString))
		case FieldInt:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeInt))
		case FieldFloat:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeFloat))
		case FieldBool:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeBool))
		default:
			return nil, fmt.Errorf("unsupported field type for %s", name)
		}
	}

	return filtering.NewDeclarations(decls...)
}

// ParseFields parses "name:type" pairs separated by commas, e.g.
// "cost:int,gold:int,light:int".
func ParseFields(raw string) (Fields, error) {
	fields := Fields{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, kind, ok := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apperrors.WithMetadata(apperrors.CodeFilterInvalid, "field must be name:type", map[string]string{"field": part})
		}
		fieldType := FieldType(strings.ToLower(strings.TrimSpace(kind)))
		switch fieldType {
		case FieldString, FieldInt, FieldFloat, FieldBool:
		default:
			return nil, apperrors.WithMetadata(apperrors.CodeFilterInvalid, "unsupported field type", map[string]string{"field": part})
		}
		fields[name] = fieldType
	}
	return fields, nil
}

// CardResolver resolves filter fields against a card.
func CardResolver(card catalog.Card) Resolver {
	return func(name string) (any, bool) {
		switch name {
		case fieldName:
			return card.Name, true
		case fieldCategory:
			return string(card.Category), true
		case fieldSet:
			return card.Set, true
		}
		if value, ok := card.Attributes[name]; ok {
			return value, true
		}
		want := normalizeKey(name)
		for key, value := range card.Attributes {
			if normalizeKey(key) == want {
				return value, true
			}
		}
		return nil, false
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.Join(strings.Fields(key), "_"))
}
