package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHints(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Hints
	}{
		{
			name: "typical mortgage sentence",
			text: "Looking at a $450k house, 20% down, 30-year at 6.25%",
			want: Hints{Price: 450_000, DownPercent: 20, RatePercent: 6.25, TermYears: 30},
		},
		{
			name: "dollar down payment",
			text: "home is $320,000 with $40k down at 7%",
			want: Hints{Price: 320_000, DownAmount: 40_000, RatePercent: 7},
		},
		{
			name: "auto loan with trade-in",
			text: "a 30k car, trade-in worth $8,000, 72 months at 6.9%",
			want: Hints{Price: 30_000, TradeIn: 8_000, TermMonths: 72, RatePercent: 6.9},
		},
		{
			name: "bare number price",
			text: "we can spend 450,000 on a 15 yr loan",
			want: Hints{Price: 450_000, TermYears: 15},
		},
		{
			name: "rate above 25 percent is not a rate",
			text: "put 30% toward closing",
			want: Hints{},
		},
		{
			name: "nothing useful",
			text: "thinking about moving somewhere sunny",
			want: Hints{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseHints(tc.text))
		})
	}
}

func TestHintsDown(t *testing.T) {
	assert.Equal(t, 40_000.0, Hints{DownAmount: 40_000}.Down(200_000))
	assert.Equal(t, 40_000.0, Hints{DownPercent: 20}.Down(200_000))
	// Explicit dollars beat percent.
	assert.Equal(t, 10_000.0, Hints{DownAmount: 10_000, DownPercent: 20}.Down(200_000))
	assert.Zero(t, Hints{}.Down(200_000))
}
