package billing

import (
	"github.com/restroworks/restropos-api/internal/domain/enum"
	"github.com/restroworks/restropos-api/pkg/apperror"
)

// Discount validation bounds. The staff limit is the default; outlets may
// override it through configuration.
const (
	MinDiscountPct          = 0.5
	MaxDiscountPct          = 100.0
	DefaultStaffDiscountPct = 20.0
)

// ApplyDiscount validates a discount against the actor's role and returns the
// adjusted grand total. The breakdown itself is never mutated: the discount is
// a view-layer adjustment re-derived from the pre-discount total on every
// call, so later line edits recompute against the correct base.
//
// staffLimitPct is the percentage above which an admin must approve; pass
// DefaultStaffDiscountPct unless the outlet overrides it.
func ApplyDiscount(b TaxBreakdown, d Discount, actorRole string, staffLimitPct float64) (float64, error) {
	if staffLimitPct <= 0 {
		staffLimitPct = DefaultStaffDiscountPct
	}

	var off float64
	switch d.Type {
	case enum.DiscountTypeAmount:
		if sanitize(d.Value) != d.Value {
			return 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "discount", Message: "amount discount must be a non-negative number"},
			})
		}
		if d.Value > b.GrandTotal {
			return 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "discount", Message: "amount discount cannot exceed the bill total"},
			})
		}
		off = d.Value
	default:
		if d.Value < MinDiscountPct || d.Value > MaxDiscountPct {
			return 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "discount", Message: "percentage discount must be between 0.5 and 100"},
			})
		}
		if d.Value > staffLimitPct && actorRole != "admin" {
			return 0, apperror.ErrDiscountRequiresApproval
		}
		off = b.GrandTotal * d.Value / 100
	}

	return b.GrandTotal - off, nil
}
