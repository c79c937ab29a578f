package billing

import (
	"math"
	"testing"

	"github.com/restroworks/restropos-api/internal/domain/enum"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeBreakdownEachTaxFromSubtotal(t *testing.T) {
	items := []LineItem{
		{ItemCode: "PLN-DOSA", Quantity: 2, Rate: 80},
		{ItemCode: "FLT-CFE", Quantity: 3, Rate: 30},
	}
	rates := TaxRates{CGSTPct: 2.5, SGSTPct: 2.5}

	b := ComputeBreakdown(items, rates)

	if !almostEqual(b.Subtotal, 250) {
		t.Fatalf("subtotal = %v, want 250", b.Subtotal)
	}
	if !almostEqual(b.CGSTAmt, 6.25) || !almostEqual(b.SGSTAmt, 6.25) {
		t.Errorf("cgst/sgst = %v/%v, want 6.25/6.25", b.CGSTAmt, b.SGSTAmt)
	}
	if b.IGSTAmt != 0 || b.CESSAmt != 0 {
		t.Errorf("igst/cess = %v/%v, want 0/0", b.IGSTAmt, b.CESSAmt)
	}
	if !almostEqual(b.GrandTotal, 262.5) {
		t.Errorf("grand total = %v, want 262.5", b.GrandTotal)
	}
}

func TestComputeBreakdownTaxesNotCompounded(t *testing.T) {
	// Every tax component must be a percentage of the same subtotal,
	// never of subtotal-plus-another-tax.
	items := []LineItem{{Quantity: 1, Rate: 1000}}
	rates := TaxRates{CGSTPct: 9, SGSTPct: 9, IGSTPct: 18, CESSPct: 1}

	b := ComputeBreakdown(items, rates)

	if !almostEqual(b.CGSTAmt, 90) || !almostEqual(b.SGSTAmt, 90) {
		t.Errorf("cgst/sgst = %v/%v, want 90/90", b.CGSTAmt, b.SGSTAmt)
	}
	if !almostEqual(b.IGSTAmt, 180) {
		t.Errorf("igst = %v, want 180", b.IGSTAmt)
	}
	if !almostEqual(b.CESSAmt, 10) {
		t.Errorf("cess = %v, want 10", b.CESSAmt)
	}
	if !almostEqual(b.GrandTotal, 1370) {
		t.Errorf("grand total = %v, want 1370", b.GrandTotal)
	}
}

func TestComputeBreakdownKeepsFullPrecision(t *testing.T) {
	// 3 x 33.33 at 2.5% produces a repeating fraction; the breakdown must
	// not round it away.
	items := []LineItem{{Quantity: 3, Rate: 33.33}}
	b := ComputeBreakdown(items, TaxRates{CGSTPct: 2.5, SGSTPct: 2.5})

	wantSub := 3 * 33.33
	if b.Subtotal != wantSub {
		t.Fatalf("subtotal = %v, want %v", b.Subtotal, wantSub)
	}
	if b.CGSTAmt != wantSub*2.5/100 {
		t.Errorf("cgst kept rounded value %v", b.CGSTAmt)
	}
	if got := Round2(b.GrandTotal); !almostEqual(got, 104.99) {
		t.Errorf("Round2(grand total) = %v, want 104.99", got)
	}
}

func TestComputeBreakdownEmptyOrder(t *testing.T) {
	b := ComputeBreakdown(nil, TaxRates{CGSTPct: 2.5, SGSTPct: 2.5})
	if b.Subtotal != 0 || b.GrandTotal != 0 {
		t.Errorf("empty order breakdown = %+v, want all zero", b)
	}
}

func TestComputeBreakdownSanitizesGarbage(t *testing.T) {
	items := []LineItem{
		{Quantity: math.NaN(), Rate: 100},
		{Quantity: 2, Rate: math.Inf(1)},
		{Quantity: -3, Rate: 50},
		{Quantity: 1, Rate: 120},
	}
	b := ComputeBreakdown(items, TaxRates{CGSTPct: math.NaN(), SGSTPct: 2.5})

	if b.Subtotal != 120 {
		t.Fatalf("subtotal = %v, want 120", b.Subtotal)
	}
	if b.CGSTAmt != 0 {
		t.Errorf("NaN rate produced cgst %v, want 0", b.CGSTAmt)
	}
	if math.IsNaN(b.GrandTotal) || math.IsInf(b.GrandTotal, 0) {
		t.Errorf("grand total is not finite: %v", b.GrandTotal)
	}
}

func TestNormalizeItemsDropsZeroQuantity(t *testing.T) {
	items := []LineItem{
		{ItemCode: "A", Quantity: 2, Rate: 50},
		{ItemCode: "B", Quantity: 0, Rate: 80},
		{ItemCode: "C", Quantity: 1.5, Rate: 40},
	}

	out := NormalizeItems(items)

	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}
	if out[0].ItemCode != "A" || out[1].ItemCode != "C" {
		t.Errorf("kept items %q/%q, want A/C", out[0].ItemCode, out[1].ItemCode)
	}
	if !almostEqual(out[0].LineTotal, 100) || !almostEqual(out[1].LineTotal, 60) {
		t.Errorf("line totals = %v/%v, want 100/60", out[0].LineTotal, out[1].LineTotal)
	}
}

func TestNormalizeItemsIdempotent(t *testing.T) {
	items := []LineItem{
		{ItemCode: "A", Quantity: 2, Rate: 50},
		{ItemCode: "B", Quantity: 0, Rate: 80},
	}

	once := NormalizeItems(items)
	twice := NormalizeItems(once)

	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("item %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestPerLineTaxFromOwnSubtotal(t *testing.T) {
	it := PerLineTax(LineItem{ItemCode: "BRIYANI", Quantity: 2, Rate: 180}, TaxRates{CGSTPct: 2.5, SGSTPct: 2.5})

	if !almostEqual(it.LineTotal, 360) {
		t.Fatalf("line total = %v, want 360", it.LineTotal)
	}
	if !almostEqual(it.CGST, 9) || !almostEqual(it.SGST, 9) {
		t.Errorf("cgst/sgst = %v/%v, want 9/9", it.CGST, it.SGST)
	}
	if it.IGST != 0 || it.CESS != 0 {
		t.Errorf("igst/cess = %v/%v, want 0/0", it.IGST, it.CESS)
	}
}

func TestPerLineTaxOverwritesClientValues(t *testing.T) {
	// Whatever tax figures arrive on the line are replaced by the server's
	// own computation.
	it := PerLineTax(LineItem{Quantity: 1, Rate: 100, CGST: 999, SGST: 999, IGST: 999, CESS: 999},
		TaxRates{CGSTPct: 2.5, SGSTPct: 2.5})

	if !almostEqual(it.CGST, 2.5) || !almostEqual(it.SGST, 2.5) || it.IGST != 0 || it.CESS != 0 {
		t.Errorf("taxes = %v/%v/%v/%v, want 2.5/2.5/0/0", it.CGST, it.SGST, it.IGST, it.CESS)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{262.499999, 262.5},
		{104.9895, 104.99},
		{0.005, 0.01},
		{-1.005, -1}, // math.Round rounds half away from zero on the stored binary value
		{100, 100},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); !almostEqual(got, tc.want) {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRecomputeAfterQuantityEdit(t *testing.T) {
	// Editing a quantity and recomputing must behave as if the order was
	// entered that way from scratch.
	rates := TaxRates{CGSTPct: 2.5, SGSTPct: 2.5}
	items := []LineItem{
		{ItemCode: "A", Quantity: 2, Rate: 80},
		{ItemCode: "B", Quantity: 3, Rate: 30},
	}
	items = NormalizeItems(items)
	_ = ComputeBreakdown(items, rates)

	items[1].Quantity = 0
	items = NormalizeItems(items)
	after := ComputeBreakdown(items, rates)

	fresh := ComputeBreakdown([]LineItem{{ItemCode: "A", Quantity: 2, Rate: 80}}, rates)
	if after != fresh {
		t.Errorf("edited recompute %+v differs from fresh compute %+v", after, fresh)
	}
}

func TestDiscountDoesNotMutateBreakdown(t *testing.T) {
	b := ComputeBreakdown([]LineItem{{Quantity: 2, Rate: 125}}, TaxRates{CGSTPct: 2.5, SGSTPct: 2.5})
	before := b

	total, err := ApplyDiscount(b, Discount{Type: enum.DiscountTypePercentage, Value: 10}, "cashier", DefaultStaffDiscountPct)
	if err != nil {
		t.Fatalf("ApplyDiscount: %v", err)
	}
	if !almostEqual(total, before.GrandTotal*0.9) {
		t.Errorf("discounted total = %v, want %v", total, before.GrandTotal*0.9)
	}
	if b != before {
		t.Errorf("breakdown mutated by discount: %+v vs %+v", b, before)
	}
}
