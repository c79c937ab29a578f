package billing

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func lineItemGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(LineItem{}), map[string]gopter.Gen{
		"Quantity": gen.Float64Range(0, 50),
		"Rate":     gen.Float64Range(0, 5000),
	})
}

func taxRatesGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(TaxRates{}), map[string]gopter.Gen{
		"CGSTPct": gen.Float64Range(0, 30),
		"SGSTPct": gen.Float64Range(0, 30),
		"IGSTPct": gen.Float64Range(0, 30),
		"CESSPct": gen.Float64Range(0, 30),
	})
}

func TestComputeBreakdownProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("tax amounts are additive over the shared subtotal", prop.ForAll(
		func(items []LineItem, rates TaxRates) bool {
			b := ComputeBreakdown(items, rates)
			wantTax := b.Subtotal * (rates.CGSTPct + rates.SGSTPct + rates.IGSTPct + rates.CESSPct) / 100
			gotTax := b.CGSTAmt + b.SGSTAmt + b.IGSTAmt + b.CESSAmt
			return math.Abs(gotTax-wantTax) < 1e-6*(1+b.Subtotal) &&
				math.Abs(b.GrandTotal-(b.Subtotal+gotTax)) < 1e-9*(1+b.GrandTotal)
		},
		gen.SliceOf(lineItemGen()),
		taxRatesGen(),
	))

	properties.Property("grand total never below subtotal", prop.ForAll(
		func(items []LineItem, rates TaxRates) bool {
			b := ComputeBreakdown(items, rates)
			return b.GrandTotal >= b.Subtotal
		},
		gen.SliceOf(lineItemGen()),
		taxRatesGen(),
	))

	properties.Property("every figure is finite and non-negative", prop.ForAll(
		func(items []LineItem, rates TaxRates) bool {
			b := ComputeBreakdown(items, rates)
			for _, v := range []float64{b.Subtotal, b.CGSTAmt, b.SGSTAmt, b.IGSTAmt, b.CESSAmt, b.GrandTotal} {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(lineItemGen()),
		taxRatesGen(),
	))

	properties.Property("normalize is idempotent and kills zero-quantity lines", prop.ForAll(
		func(items []LineItem) bool {
			once := NormalizeItems(items)
			for _, it := range once {
				if it.Quantity == 0 {
					return false
				}
				if math.Abs(it.LineTotal-it.Quantity*it.Rate) > 1e-9*(1+it.LineTotal) {
					return false
				}
			}
			twice := NormalizeItems(once)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i] != twice[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(lineItemGen()),
	))

	properties.Property("per-line taxes sum to the order breakdown", prop.ForAll(
		func(items []LineItem, rates TaxRates) bool {
			items = NormalizeItems(items)
			b := ComputeBreakdown(items, rates)

			var cgst, sgst, igst, cess float64
			for _, it := range items {
				taxed := PerLineTax(it, rates)
				cgst += taxed.CGST
				sgst += taxed.SGST
				igst += taxed.IGST
				cess += taxed.CESS
			}
			tol := 1e-6 * (1 + b.Subtotal)
			return math.Abs(cgst-b.CGSTAmt) < tol &&
				math.Abs(sgst-b.SGSTAmt) < tol &&
				math.Abs(igst-b.IGSTAmt) < tol &&
				math.Abs(cess-b.CESSAmt) < tol
		},
		gen.SliceOf(lineItemGen()),
		taxRatesGen(),
	))

	properties.TestingRun(t)
}
