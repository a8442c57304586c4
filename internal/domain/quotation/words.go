package quotation

import (
	"fmt"
	"math"
	"strings"
)

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six",
		"Seven", "Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen",
		"Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty",
		"Sixty", "Seventy", "Eighty", "Ninety"}
	scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion",
		"Quadrillion", "Quintillion"}
)

// spellCeiling bounds the spelled form. float64 cannot hold integers this
// large exactly, so bigger amounts fall back to the numeric form.
const spellCeiling = 1e18

// AmountInWords spells a non-negative amount as English words, e.g.
// "One Thousand Five Hundred Dollars and Twenty Five Cents". A zero amount
// yields a bare "Zero" with no currency suffix; that asymmetry is inherited
// behavior and callers rely on it. Amounts at or above spellCeiling come
// back in numeric form.
func AmountInWords(amount float64) string {
	if amount <= 0 {
		return "Zero"
	}
	if amount >= spellCeiling {
		return fmt.Sprintf("%.2f", amount)
	}

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents >= 100 {
		whole++
		cents -= 100
	}
	if whole == 0 && cents == 0 {
		return "Zero"
	}

	var parts []string
	if whole > 0 {
		parts = append(parts, integerWords(whole), "Dollars")
	}
	if cents > 0 {
		if whole > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, integerWords(cents), "Cents")
	}
	return strings.Join(parts, " ")
}

// integerWords renders n by base-1000 groups, most significant first,
// skipping zero groups.
func integerWords(n int64) string {
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		part := hundredsWords(g)
		if scaleWords[i] != "" {
			part += " " + scaleWords[i]
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

func hundredsWords(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		if n%10 > 0 {
			parts = append(parts, tensWords[n/10], onesWords[n%10])
		} else {
			parts = append(parts, tensWords[n/10])
		}
	case n > 0:
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
