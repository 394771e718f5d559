package loan

import (
	"regexp"
	"strconv"
	"strings"
)

// Hints are loan parameters pulled out of freeform text like
// "looking at a $450k house, 20% down, 30-year at 6.25%".
// Zero values mean the text said nothing about the field.
type Hints struct {
	Price       float64
	DownAmount  float64
	DownPercent float64
	RatePercent float64
	TermYears   int
	TermMonths  int
	TradeIn     float64
}

var (
	moneyRe     = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d+)?)\s*([kKmM])?`)
	bareMoneyRe = regexp.MustCompile(`\b([\d,]{4,}(?:\.\d+)?|\d+(?:\.\d+)?\s*[kKmM])\b`)
	pctDownRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*down`)
	moneyDownRe = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d+)?)\s*([kKmM])?\s*down`)
	percentRe   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	yearsRe     = regexp.MustCompile(`(\d{1,2})\s*-?\s*(?:year|yr)`)
	monthsRe    = regexp.MustCompile(`(\d{1,3})\s*-?\s*months?`)
	tradeInRe   = regexp.MustCompile(`trade\s*-?\s*in(?:\s+(?:worth|of|valued\s+at))?\s+\$?\s*([\d,]+(?:\.\d+)?)\s*([kKmM])?`)
)

// ParseHints runs the keyword heuristics over text. It never fails; fields
// the text doesn't mention stay zero.
func ParseHints(text string) Hints {
	lower := strings.ToLower(text)
	var h Hints

	if m := moneyDownRe.FindStringSubmatch(lower); m != nil {
		h.DownAmount = scaledAmount(m[1], m[2])
	}
	if m := pctDownRe.FindStringSubmatch(lower); m != nil {
		h.DownPercent, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := tradeInRe.FindStringSubmatch(lower); m != nil {
		h.TradeIn = scaledAmount(m[1], m[2])
	}

	// Price: the largest dollar amount that isn't the down payment or
	// the trade-in.
	for _, m := range moneyRe.FindAllStringSubmatch(lower, -1) {
		v := scaledAmount(m[1], m[2])
		if v == h.DownAmount || v == h.TradeIn {
			continue
		}
		if v > h.Price {
			h.Price = v
		}
	}
	if h.Price == 0 {
		for _, m := range bareMoneyRe.FindAllStringSubmatch(lower, -1) {
			raw := strings.TrimSpace(m[1])
			suffix := ""
			if n := len(raw); n > 0 && (raw[n-1] == 'k' || raw[n-1] == 'm') {
				suffix = string(raw[n-1])
				raw = strings.TrimSpace(raw[:n-1])
			}
			v := scaledAmount(raw, suffix)
			if v == h.DownAmount || v == h.TradeIn {
				continue
			}
			if v >= 1000 && v > h.Price {
				h.Price = v
			}
		}
	}

	// Rate: a standalone percentage that isn't the down payment share.
	// Anything above 25% is not a plausible loan rate.
	for _, m := range percentRe.FindAllStringSubmatch(lower, -1) {
		v, _ := strconv.ParseFloat(m[1], 64)
		if v == h.DownPercent || v <= 0 || v > 25 {
			continue
		}
		h.RatePercent = v
		break
	}

	if m := yearsRe.FindStringSubmatch(lower); m != nil {
		h.TermYears, _ = strconv.Atoi(m[1])
	}
	if m := monthsRe.FindStringSubmatch(lower); m != nil {
		h.TermMonths, _ = strconv.Atoi(m[1])
	}

	return h
}

// Down resolves the down payment against a price, preferring an explicit
// dollar amount over a percentage.
func (h Hints) Down(price float64) float64 {
	if h.DownAmount > 0 {
		return h.DownAmount
	}
	if h.DownPercent > 0 && price > 0 {
		return price * h.DownPercent / 100
	}
	return 0
}

func scaledAmount(num, suffix string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(suffix) {
	case "k":
		v *= 1_000
	case "m":
		v *= 1_000_000
	}
	return v
}
