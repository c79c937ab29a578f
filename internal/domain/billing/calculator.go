// Package billing holds the pure order/bill computation used by the billing
// screens: line-item normalization, the tax/total breakdown, and discount
// application. Everything here is side-effect free so it can be recomputed on
// every edit without drift.
package billing

import (
	"math"

	"github.com/restroworks/restropos-api/internal/domain/enum"
)

// LineItem is one order line as edited on the billing screen.
// LineTotal is derived from Quantity and Rate; the tax columns are derived from
// LineTotal and the active tax rates.
type LineItem struct {
	ItemCode  string  `json:"item_code"`
	ItemName  string  `json:"item_name"`
	Quantity  float64 `json:"quantity"`
	Rate      float64 `json:"rate"`
	LineTotal float64 `json:"line_total"`
	CGST      float64 `json:"cgst"`
	SGST      float64 `json:"sgst"`
	IGST      float64 `json:"igst"`
	CESS      float64 `json:"cess"`
	KOTRef    string  `json:"kot_ref,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// TaxRates holds the tax percentages active for an outlet+department pair.
type TaxRates struct {
	CGSTPct float64 `json:"cgst_pct"`
	SGSTPct float64 `json:"sgst_pct"`
	IGSTPct float64 `json:"igst_pct"`
	CESSPct float64 `json:"cess_pct"`
}

// TaxBreakdown is the fully derived total of an order. It has no identity of
// its own; it is recomputed from the line items and rates on every change.
type TaxBreakdown struct {
	Subtotal   float64 `json:"subtotal"`
	CGSTAmt    float64 `json:"cgst_amt"`
	SGSTAmt    float64 `json:"sgst_amt"`
	IGSTAmt    float64 `json:"igst_amt"`
	CESSAmt    float64 `json:"cess_amt"`
	GrandTotal float64 `json:"grand_total"`
}

// Discount is a post-total adjustment entered by staff.
type Discount struct {
	Type    enum.DiscountType `json:"type"`
	Value   float64           `json:"value"`
	GivenBy string            `json:"given_by"`
	Reason  string            `json:"reason,omitempty"`
}

// sanitize coerces garbage form input (NaN, Inf, negatives) to zero so that no
// NaN ever propagates into a stored total.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// NormalizeItems recomputes each line total from quantity and rate and drops
// zero-quantity lines. Setting a line's quantity to 0 removes it from the
// working order on the next recompute.
func NormalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		it.Quantity = sanitize(it.Quantity)
		it.Rate = sanitize(it.Rate)
		if it.Quantity == 0 {
			continue
		}
		it.LineTotal = it.Quantity * it.Rate
		out = append(out, it)
	}
	return out
}

// ComputeBreakdown maps line items and tax percentages to a breakdown.
// It is total: invalid numeric input has already been coerced to zero, each
// tax amount is computed independently from the shared subtotal (taxes are
// never compounded on each other), and full float precision is kept. Rounding
// to two decimals happens only at presentation time.
func ComputeBreakdown(items []LineItem, rates TaxRates) TaxBreakdown {
	var subtotal float64
	for _, it := range items {
		subtotal += sanitize(it.Quantity) * sanitize(it.Rate)
	}

	b := TaxBreakdown{
		Subtotal: subtotal,
		CGSTAmt:  subtotal * sanitize(rates.CGSTPct) / 100,
		SGSTAmt:  subtotal * sanitize(rates.SGSTPct) / 100,
		IGSTAmt:  subtotal * sanitize(rates.IGSTPct) / 100,
		CESSAmt:  subtotal * sanitize(rates.CESSPct) / 100,
	}
	b.GrandTotal = b.Subtotal + b.CGSTAmt + b.SGSTAmt + b.IGSTAmt + b.CESSAmt
	return b
}

// PerLineTax returns a copy of the item with its tax columns recomputed from
// the line's own subtotal. Bill detail rows store these so each line stays
// consistent if audited on its own, independent of the aggregate breakdown.
func PerLineTax(item LineItem, rates TaxRates) LineItem {
	item.Quantity = sanitize(item.Quantity)
	item.Rate = sanitize(item.Rate)
	item.LineTotal = item.Quantity * item.Rate
	item.CGST = item.LineTotal * sanitize(rates.CGSTPct) / 100
	item.SGST = item.LineTotal * sanitize(rates.SGSTPct) / 100
	item.IGST = item.LineTotal * sanitize(rates.IGSTPct) / 100
	item.CESS = item.LineTotal * sanitize(rates.CESSPct) / 100
	return item
}

// Round2 rounds a monetary value to two decimals for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
