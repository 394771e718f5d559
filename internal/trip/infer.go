// Package trip implements the trip-planner app: keyword inference over
// freeform text and a day-by-day outline for the widget.
package trip

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Request is a trip scenario. Zero values mean unspecified.
type Request struct {
	Destination string   `json:"destination,omitempty"`
	StartDate   string   `json:"start_date,omitempty"` // YYYY-MM-DD
	Nights      int      `json:"nights,omitempty"`
	Travelers   int      `json:"travelers,omitempty"`
	Budget      float64  `json:"budget,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

var (
	destRe      = regexp.MustCompile(`(?:\bto|\bin|\bvisiting|\bvisit)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,2})`)
	isoDateRe   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	monthDayRe  = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})\b`)
	nightsRe    = regexp.MustCompile(`(\d{1,2})\s*nights?`)
	daysRe      = regexp.MustCompile(`(\d{1,2})\s*days?`)
	partyRe     = regexp.MustCompile(`(\d{1,2})\s*(?:people|travelers|travellers|adults|of us)`)
	familyOfRe  = regexp.MustCompile(`family of (\d{1,2})`)
	budgetRe    = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d+)?)\s*([kK])?`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var interestWords = map[string][]string{
	"food":      {"food", "restaurant", "eat", "culinary", "street food"},
	"museums":   {"museum", "art", "gallery"},
	"hiking":    {"hike", "hiking", "trail", "trek", "outdoors"},
	"beaches":   {"beach", "beaches", "snorkel", "surf"},
	"nightlife": {"nightlife", "bars", "clubs"},
	"history":   {"history", "historic", "ruins", "temple", "castle"},
	"shopping":  {"shopping", "markets", "boutique"},
	"kids":      {"kids", "children", "family-friendly", "theme park"},
}

// interestOrder keeps inferred interests deterministic.
var interestOrder = []string{"food", "museums", "hiking", "beaches", "nightlife", "history", "shopping", "kids"}

// Infer fills a trip request from freeform text. now anchors forward
// resolution of month-day dates. It never errors.
func Infer(text string, now time.Time) Request {
	var r Request
	lower := strings.ToLower(text)

	if m := destRe.FindStringSubmatch(text); m != nil {
		r.Destination = m[1]
	}

	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if _, err := time.Parse("2006-01-02", m[1]); err == nil {
			r.StartDate = m[1]
		}
	} else if m := monthDayRe.FindStringSubmatch(text); m != nil {
		month := months[strings.ToLower(m[1])]
		day, _ := strconv.Atoi(m[2])
		if day >= 1 && day <= 31 {
			d := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
			if d.Before(now) {
				d = d.AddDate(1, 0, 0)
			}
			r.StartDate = d.Format("2006-01-02")
		}
	}

	if m := nightsRe.FindStringSubmatch(lower); m != nil {
		r.Nights, _ = strconv.Atoi(m[1])
	} else if m := daysRe.FindStringSubmatch(lower); m != nil {
		if d, _ := strconv.Atoi(m[1]); d > 1 {
			r.Nights = d - 1
		}
	} else if strings.Contains(lower, "a week") || strings.Contains(lower, "one week") {
		r.Nights = 7
	} else if strings.Contains(lower, "weekend") {
		r.Nights = 2
	}

	if m := familyOfRe.FindStringSubmatch(lower); m != nil {
		r.Travelers, _ = strconv.Atoi(m[1])
	} else if m := partyRe.FindStringSubmatch(lower); m != nil {
		r.Travelers, _ = strconv.Atoi(m[1])
	} else if hasAny(lower, "my wife", "my husband", "my partner", "couple", "the two of us") {
		r.Travelers = 2
	} else if hasAny(lower, "solo", "by myself", "on my own") {
		r.Travelers = 1
	}

	// A dollar figure with "budget"/"spend" nearby, or any dollar figure
	// of at least a few hundred, is treated as the trip budget.
	if m := budgetRe.FindStringSubmatch(lower); m != nil {
		v, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if strings.EqualFold(m[2], "k") {
			v *= 1000
		}
		if v >= 300 || hasAny(lower, "budget", "spend") {
			r.Budget = v
		}
	}

	for _, name := range interestOrder {
		if hasAny(lower, interestWords[name]...) {
			r.Interests = append(r.Interests, name)
		}
	}

	return r
}

func hasAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
