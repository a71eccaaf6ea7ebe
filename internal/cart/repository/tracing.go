package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tranvu/storefront/internal/cart/domain"
)

var tracer = otel.Tracer("cart-repository")

// TracingCartRepository wraps a CartRepository with tracing
type TracingCartRepository struct {
	inner domain.CartRepository
}

// NewTracingCartRepository creates a new repository decorator with tracing
func NewTracingCartRepository(inner domain.CartRepository) *TracingCartRepository {
	return &TracingCartRepository{inner: inner}
}

func (r *TracingCartRepository) AddOrMerge(ctx context.Context, line domain.CartLine) (int, error) {
	ctx, span := tracer.Start(ctx, "cart.AddOrMerge",
		trace.WithAttributes(
			attribute.String("cart.user_id", line.UserID),
			attribute.String("cart.product_id", line.Product.ID),
			attribute.Int("cart.quantity", line.Quantity),
		),
	)
	defer span.End()

	count, err := r.inner.AddOrMerge(ctx, line)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Int("cart.line_count", count))
	return count, err
}

func (r *TracingCartRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	ctx, span := tracer.Start(ctx, "cart.SetQuantity",
		trace.WithAttributes(
			attribute.String("cart.user_id", userID),
			attribute.String("cart.product_id", productID),
			attribute.Int("cart.quantity", quantity),
		),
	)
	defer span.End()

	found, err := r.inner.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Bool("cart.found", found))
	return found, err
}

func (r *TracingCartRepository) Remove(ctx context.Context, userID, productID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "cart.Remove",
		trace.WithAttributes(
			attribute.String("cart.user_id", userID),
			attribute.String("cart.product_id", productID),
		),
	)
	defer span.End()

	removed, err := r.inner.Remove(ctx, userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Bool("cart.removed", removed))
	return removed, err
}

func (r *TracingCartRepository) LinesFor(ctx context.Context, userID string) ([]domain.CartLine, error) {
	ctx, span := tracer.Start(ctx, "cart.LinesFor",
		trace.WithAttributes(attribute.String("cart.user_id", userID)),
	)
	defer span.End()

	lines, err := r.inner.LinesFor(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Int("cart.line_count", len(lines)))
	return lines, err
}

func (r *TracingCartRepository) CountFor(ctx context.Context, userID string) (int, error) {
	ctx, span := tracer.Start(ctx, "cart.CountFor",
		trace.WithAttributes(attribute.String("cart.user_id", userID)),
	)
	defer span.End()

	count, err := r.inner.CountFor(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Int("cart.line_count", count))
	return count, err
}
