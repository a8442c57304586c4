package quotation

import "math"

// Totals is derived from the document on every render and never stored, so
// it cannot drift from the item list or the rates.
type Totals struct {
	Subtotal        float64
	VATAmount       float64
	TaxAmount       float64
	GrandTotal      float64
	GrandTotalWords string
	HasTax          bool
}

// ComputeTotals sums the items in document order and applies both rate
// percentages. The grand total is rounded to the nearest whole unit before
// display and before word conversion, so the numeric label and its spelled
// form always agree.
func ComputeTotals(items []Item, vatRate, taxRate float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.LineTotal()
	}

	t := Totals{
		Subtotal:  subtotal,
		VATAmount: subtotal * vatRate / 100,
		TaxAmount: subtotal * taxRate / 100,
		HasTax:    vatRate > 0 || taxRate > 0,
	}
	t.GrandTotal = math.Round(t.Subtotal + t.VATAmount + t.TaxAmount)
	t.GrandTotalWords = AmountInWords(t.GrandTotal)
	return t
}
