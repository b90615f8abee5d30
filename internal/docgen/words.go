package docgen

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var wordsOnes = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var wordsTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// croreOfCrores is the first magnitude with no defined scale word.
const croreOfCrores = int64(1e14)

// AmountInWords spells a monetary amount using Indian grouping
// (crore/lakh/thousand/hundred). The integer part reads
// "<words> Only"; a nonzero fraction appends " and <words> Paise".
// Negative amounts get a "Minus" prefix, zero yields the bare word
// "Zero". Amounts at or beyond one crore crore are rejected.
func AmountInWords(amount decimal.Decimal) (string, error) {
	neg := amount.IsNegative()
	abs := amount.Abs()

	rupees := abs.Truncate(0)
	paise := abs.Sub(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	whole := rupees.IntPart()
	if paise == 100 { // 0.995..0.999 rounds up into the next rupee
		whole++
		paise = 0
	}

	if whole >= croreOfCrores {
		return "", fmt.Errorf("amount %s exceeds the highest spellable scale", amount.String())
	}

	if whole == 0 && paise == 0 {
		return "Zero", nil
	}

	intWords := "Zero"
	if whole > 0 {
		intWords = spellInt(whole)
	}

	out := intWords + " Only"
	if paise > 0 {
		out += " and " + spellInt(paise) + " Paise"
	}
	if neg {
		out = "Minus " + out
	}
	return out, nil
}

// spellInt converts a positive integer to words, recursing through the
// Indian scale groups and omitting zero-valued groups.
func spellInt(n int64) string {
	switch {
	case n < 20:
		return wordsOnes[n]
	case n < 100:
		return strings.TrimSpace(wordsTens[n/10] + " " + wordsOnes[n%10])
	case n < 1000:
		return joinGroup(spellInt(n/100)+" Hundred", n%100)
	case n < 100000:
		return joinGroup(spellInt(n/1000)+" Thousand", n%1000)
	case n < 10000000:
		return joinGroup(spellInt(n/100000)+" Lakh", n%100000)
	default:
		return joinGroup(spellInt(n/10000000)+" Crore", n%10000000)
	}
}

func joinGroup(head string, rest int64) string {
	if rest == 0 {
		return head
	}
	return head + " " + spellInt(rest)
}
