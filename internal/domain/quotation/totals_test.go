package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func item(qty, cost float64) Item {
	return Item{Quantity: qty, UnitCost: cost}
}

func TestComputeTotalsSubtotal(t *testing.T) {
	items := []Item{item(1, 100), item(2, 50), item(0.5, 10)}
	got := ComputeTotals(items, 0, 0)

	assert.Equal(t, 205.0, got.Subtotal)
	assert.Equal(t, 205.0, got.GrandTotal)
	assert.Zero(t, got.VATAmount)
	assert.Zero(t, got.TaxAmount)
	assert.False(t, got.HasTax)
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	a := []Item{item(1, 100), item(3, 7), item(2, 50)}
	b := []Item{item(2, 50), item(1, 100), item(3, 7)}
	assert.Equal(t, ComputeTotals(a, 5, 2).Subtotal, ComputeTotals(b, 5, 2).Subtotal)
}

func TestComputeTotalsRates(t *testing.T) {
	tests := []struct {
		name             string
		vat, tax         float64
		wantVAT, wantTax float64
		wantGrand        float64
		wantHasTax       bool
	}{
		{"both zero", 0, 0, 0, 0, 1000, false},
		{"vat only", 15, 0, 150, 0, 1150, true},
		{"tax only", 0, 5, 0, 50, 1050, true},
		{"both", 15, 5, 150, 50, 1200, true},
	}

	items := []Item{item(10, 100)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(items, tt.vat, tt.tax)
			assert.Equal(t, tt.wantVAT, got.VATAmount)
			assert.Equal(t, tt.wantTax, got.TaxAmount)
			assert.Equal(t, tt.wantGrand, got.GrandTotal)
			assert.Equal(t, tt.wantHasTax, got.HasTax)
		})
	}
}

func TestComputeTotalsRoundsGrandTotal(t *testing.T) {
	// 3 × 33.33 = 99.99, plus 16% VAT = 115.9884: rounds to 116 so the
	// numeric label and the words agree.
	got := ComputeTotals([]Item{item(3, 33.33)}, 16, 0)
	assert.Equal(t, 116.0, got.GrandTotal)
	assert.Equal(t, "One Hundred Sixteen Dollars", got.GrandTotalWords)
}

func TestComputeTotalsLargeAmounts(t *testing.T) {
	got := ComputeTotals([]Item{item(2e6, 1e6)}, 0, 0)
	assert.Equal(t, 2e12, got.GrandTotal)
	assert.Equal(t, "Two Trillion Dollars", got.GrandTotalWords)
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, 0, 0)
	assert.Zero(t, got.Subtotal)
	assert.Zero(t, got.GrandTotal)
	assert.Equal(t, "Zero", got.GrandTotalWords)
	assert.False(t, got.HasTax)
}
