package billing

import (
	"errors"
	"testing"

	"github.com/restroworks/restropos-api/internal/domain/enum"
	"github.com/restroworks/restropos-api/pkg/apperror"
)

func breakdown(total float64) TaxBreakdown {
	return TaxBreakdown{Subtotal: total, GrandTotal: total}
}

func TestApplyDiscountPercentageBounds(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		ok    bool
	}{
		{"below minimum", 0.4, false},
		{"at minimum", 0.5, true},
		{"typical", 10, true},
		{"full", 100, true},
		{"above full", 100.1, false},
		{"zero", 0, false},
		{"negative", -5, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Discount{Type: enum.DiscountTypePercentage, Value: tc.value}
			_, err := ApplyDiscount(breakdown(1000), d, "admin", DefaultStaffDiscountPct)
			if tc.ok && err != nil {
				t.Errorf("value %v rejected: %v", tc.value, err)
			}
			if !tc.ok && err == nil {
				t.Errorf("value %v accepted, want validation error", tc.value)
			}
		})
	}
}

func TestApplyDiscountPercentageMath(t *testing.T) {
	d := Discount{Type: enum.DiscountTypePercentage, Value: 15}
	total, err := ApplyDiscount(breakdown(400), d, "cashier", DefaultStaffDiscountPct)
	if err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if total != 340 {
		t.Errorf("total = %v, want 340", total)
	}
}

func TestApplyDiscountAboveStaffLimitNeedsAdmin(t *testing.T) {
	d := Discount{Type: enum.DiscountTypePercentage, Value: 25}

	_, err := ApplyDiscount(breakdown(1000), d, "cashier", DefaultStaffDiscountPct)
	if !errors.Is(err, apperror.ErrDiscountRequiresApproval) {
		t.Errorf("cashier at 25%%: err = %v, want ErrDiscountRequiresApproval", err)
	}

	_, err = ApplyDiscount(breakdown(1000), d, "manager", DefaultStaffDiscountPct)
	if !errors.Is(err, apperror.ErrDiscountRequiresApproval) {
		t.Errorf("manager at 25%%: err = %v, want ErrDiscountRequiresApproval", err)
	}

	total, err := ApplyDiscount(breakdown(1000), d, "admin", DefaultStaffDiscountPct)
	if err != nil {
		t.Fatalf("admin at 25%%: %v", err)
	}
	if total != 750 {
		t.Errorf("admin total = %v, want 750", total)
	}
}

func TestApplyDiscountAtStaffLimitAllowed(t *testing.T) {
	// Exactly at the limit is staff territory; approval starts above it.
	d := Discount{Type: enum.DiscountTypePercentage, Value: 20}
	total, err := ApplyDiscount(breakdown(1000), d, "cashier", DefaultStaffDiscountPct)
	if err != nil {
		t.Fatalf("cashier at 20%%: %v", err)
	}
	if total != 800 {
		t.Errorf("total = %v, want 800", total)
	}
}

func TestApplyDiscountOutletOverridesLimit(t *testing.T) {
	d := Discount{Type: enum.DiscountTypePercentage, Value: 25}

	total, err := ApplyDiscount(breakdown(1000), d, "cashier", 30)
	if err != nil {
		t.Fatalf("cashier under raised limit: %v", err)
	}
	if total != 750 {
		t.Errorf("total = %v, want 750", total)
	}

	_, err = ApplyDiscount(breakdown(1000), Discount{Type: enum.DiscountTypePercentage, Value: 15}, "cashier", 10)
	if !errors.Is(err, apperror.ErrDiscountRequiresApproval) {
		t.Errorf("cashier over lowered limit: err = %v, want ErrDiscountRequiresApproval", err)
	}
}

func TestApplyDiscountAmount(t *testing.T) {
	d := Discount{Type: enum.DiscountTypeAmount, Value: 50}
	total, err := ApplyDiscount(breakdown(262.5), d, "cashier", DefaultStaffDiscountPct)
	if err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if total != 212.5 {
		t.Errorf("total = %v, want 212.5", total)
	}
}

func TestApplyDiscountAmountBounds(t *testing.T) {
	if _, err := ApplyDiscount(breakdown(100), Discount{Type: enum.DiscountTypeAmount, Value: -1}, "admin", 0); err == nil {
		t.Error("negative amount accepted")
	}
	if _, err := ApplyDiscount(breakdown(100), Discount{Type: enum.DiscountTypeAmount, Value: 100.01}, "admin", 0); err == nil {
		t.Error("amount above bill total accepted")
	}
	total, err := ApplyDiscount(breakdown(100), Discount{Type: enum.DiscountTypeAmount, Value: 100}, "cashier", 0)
	if err != nil {
		t.Fatalf("full amount write-off: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
}

func TestApplyDiscountAmountNeedsNoApproval(t *testing.T) {
	// Amount discounts carry no percentage so the staff limit does not apply.
	d := Discount{Type: enum.DiscountTypeAmount, Value: 900}
	total, err := ApplyDiscount(breakdown(1000), d, "cashier", DefaultStaffDiscountPct)
	if err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if total != 100 {
		t.Errorf("total = %v, want 100", total)
	}
}
