package trip

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Day is one row of the outline the widget renders.
type Day struct {
	Day     int    `json:"day"`
	Date    string `json:"date,omitempty"`
	Summary string `json:"summary"`
}

// Plan is the tool output for one trip.
type Plan struct {
	Request
	Days   []Day  `json:"days"`
	Source string `json:"source"` // "template" or the model name
}

// Completer generates a short text for a prompt. The OpenAI proxy satisfies
// this; nil means template outlines only.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, string, error)
}

// Build produces the day-by-day outline. When a completer is available its
// text is used for the day summaries; any failure falls back to the
// deterministic template so the widget always gets a plan.
func Build(ctx context.Context, c Completer, r Request) Plan {
	if r.Nights <= 0 {
		r.Nights = 3
	}
	if r.Destination == "" {
		r.Destination = "Somewhere new"
	}

	if c != nil {
		if p, ok := buildWithModel(ctx, c, r); ok {
			return p
		}
	}
	return buildTemplate(r)
}

func buildWithModel(ctx context.Context, c Completer, r Request) (Plan, bool) {
	days := r.Nights + 1
	prompt := fmt.Sprintf(
		"Plan %d days in %s. One line per day, numbered 1-%d, no preamble.",
		days, r.Destination, days,
	)
	if len(r.Interests) > 0 {
		prompt += " Focus on: " + strings.Join(r.Interests, ", ") + "."
	}
	if r.Travelers > 0 {
		prompt += fmt.Sprintf(" Group of %d.", r.Travelers)
	}
	if r.Budget > 0 {
		prompt += fmt.Sprintf(" Total budget about $%.0f.", r.Budget)
	}

	text, model, err := c.Complete(ctx, "You are a concise travel planner.", prompt, 400)
	if err != nil {
		return Plan{}, false
	}

	var out []Day
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Strip "1.", "1)", "Day 1:" style prefixes.
		line = strings.TrimPrefix(line, "Day ")
		line = strings.TrimLeft(line, "0123456789")
		line = strings.TrimLeft(line, ".:)- ")
		if line == "" {
			continue
		}
		out = append(out, Day{Day: len(out) + 1, Summary: line})
		if len(out) == days {
			break
		}
	}
	if len(out) == 0 {
		return Plan{}, false
	}
	stampDates(out, r.StartDate)
	return Plan{Request: r, Days: out, Source: model}, true
}

var dayThemes = map[string][]string{
	"food":      {"Food crawl through the old town", "Market morning and a long lunch"},
	"museums":   {"Museum day, tickets booked ahead", "Gallery hop and a slow afternoon"},
	"hiking":    {"Day hike outside the city", "Morning trail, afternoon to recover"},
	"beaches":   {"Beach day, nothing scheduled", "Boat out in the morning, beach after"},
	"nightlife": {"Late start, out after dark", "Dinner somewhere loud, see where it goes"},
	"history":   {"Old quarter on foot with a guide", "The big historic site, early to beat crowds"},
	"shopping":  {"Markets and side-street shops", "One neighborhood, no list"},
	"kids":      {"Something the kids pick", "Park morning, easy afternoon"},
}

func buildTemplate(r Request) Plan {
	// Only themed interests drive the rotation; anything else (the tool
	// accepts arbitrary strings) falls back to the defaults.
	interests := make([]string, 0, len(r.Interests))
	for _, it := range r.Interests {
		if _, ok := dayThemes[it]; ok {
			interests = append(interests, it)
		}
	}
	if len(interests) == 0 {
		interests = []string{"food", "history"}
	}

	days := make([]Day, 0, r.Nights+1)
	days = append(days, Day{Day: 1, Summary: fmt.Sprintf("Arrive in %s, settle in, walk the neighborhood", r.Destination)})
	for i := 2; i <= r.Nights; i++ {
		theme := interests[(i-2)%len(interests)]
		variants := dayThemes[theme]
		days = append(days, Day{Day: i, Summary: variants[(i-2)/len(interests)%len(variants)]})
	}
	if r.Nights >= 1 {
		days = append(days, Day{Day: r.Nights + 1, Summary: "Slow morning, head home"})
	}
	stampDates(days, r.StartDate)
	return Plan{Request: r, Days: days, Source: "template"}
}

func stampDates(days []Day, start string) {
	t, err := time.Parse("2006-01-02", start)
	if err != nil {
		return
	}
	for i := range days {
		days[i].Date = t.AddDate(0, 0, i).Format("Jan 2")
	}
}
