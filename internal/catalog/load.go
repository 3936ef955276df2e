package catalog

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/thunderstone/internal/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/thunderstone/internal/catalog"

// Source yields the raw card records of a catalog.
type Source interface {
	Cards(ctx context.Context) ([]Card, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Card, error)

// Cards calls f.
func (f SourceFunc) Cards(ctx context.Context) ([]Card, error) {
	return f(ctx)
}

// Load reads src once and builds the catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.load", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	c, err := load(ctx, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.cards", c.Len()))
	return c, nil
}

func load(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		return nil, apperrors.New(apperrors.CodeCatalogUnavailable, "catalog source is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cards, err := src.Cards(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog source: %w", err)
	}
	if len(cards) == 0 {
		return nil, apperrors.New(apperrors.CodeCatalogUnavailable, "catalog source has no cards")
	}
	return New(cards)
}
