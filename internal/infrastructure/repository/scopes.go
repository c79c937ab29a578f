package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

const (
	// OutletIDKey is the context key for the caller's outlet ID
	OutletIDKey ctxKey = "outlet_id"
	// SkipOutletScopeKey is the context key for skipping outlet scope (admin tooling)
	SkipOutletScopeKey ctxKey = "skip_outlet_scope"
)

// OutletScope returns a GORM scope that filters by the caller's outlet.
// Applied to all queries over outlet-scoped entities. If the outlet is
// missing from the context the query returns no rows rather than leaking
// another outlet's data.
func OutletScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip, ok := ctx.Value(SkipOutletScopeKey).(bool); ok && skip {
			return db
		}

		outletID, ok := ctx.Value(OutletIDKey).(uint)
		if !ok {
			// Fail-safe: no outlet context, no rows
			return db.Where("1 = 0")
		}
		return db.Where("outlet_id = ?", outletID)
	}
}

// WithSkipOutletScope adds the skip flag to context (for admin tooling)
func WithSkipOutletScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipOutletScopeKey, skip)
}

// WithOutlet adds the outlet ID to context
func WithOutlet(ctx context.Context, outletID uint) context.Context {
	return context.WithValue(ctx, OutletIDKey, outletID)
}

// GetOutletID extracts the outlet ID from context
func GetOutletID(ctx context.Context) (uint, bool) {
	outletID, ok := ctx.Value(OutletIDKey).(uint)
	return outletID, ok
}
