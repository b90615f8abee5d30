package docgen_test

import (
	"strings"
	"testing"

	"backend/internal/docgen"

	"github.com/shopspring/decimal"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "Zero"},
		{"100", "One Hundred Only"},
		{"1500.50", "One Thousand Five Hundred Only and Fifty Paise"},
		{"0.50", "Zero Only and Fifty Paise"},
		{"19", "Nineteen Only"},
		{"45", "Forty Five Only"},
		{"105", "One Hundred Five Only"},
		{"100000", "One Lakh Only"},
		{"10000000", "One Crore Only"},
		{"123456789", "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Only"},
		{"5221606.20", "Fifty Two Lakh Twenty One Thousand Six Hundred Six Only and Twenty Paise"},
		{"0.999", "One Only"}, // paise round up into the next rupee
	}
	for _, c := range cases {
		got, err := docgen.AmountInWords(decimal.RequireFromString(c.in))
		if err != nil {
			t.Fatalf("AmountInWords(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("AmountInWords(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAmountInWordsNegative(t *testing.T) {
	got, err := docgen.AmountInWords(decimal.RequireFromString("-25"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "Minus") {
		t.Errorf("got %q, want Minus prefix", got)
	}
	if got != "Minus Twenty Five Only" {
		t.Errorf("got %q", got)
	}
}

func TestAmountInWordsBeyondScale(t *testing.T) {
	for _, in := range []string{"100000000000000", "-100000000000000.25"} {
		if _, err := docgen.AmountInWords(decimal.RequireFromString(in)); err == nil {
			t.Errorf("AmountInWords(%s): expected error past one crore crore", in)
		}
	}
	// one paisa under the limit still spells
	if _, err := docgen.AmountInWords(decimal.RequireFromString("99999999999999.99")); err != nil {
		t.Errorf("unexpected error just below the limit: %v", err)
	}
}
