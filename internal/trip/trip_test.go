package trip

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestInfer(t *testing.T) {
	t.Run("full sentence", func(t *testing.T) {
		r := Infer("Taking my wife to Tokyo for 5 nights starting 2026-10-12, around $4k budget, we love food and museums", testNow)
		assert.Equal(t, "Tokyo", r.Destination)
		assert.Equal(t, "2026-10-12", r.StartDate)
		assert.Equal(t, 5, r.Nights)
		assert.Equal(t, 2, r.Travelers)
		assert.Equal(t, 4000.0, r.Budget)
		assert.Equal(t, []string{"food", "museums"}, r.Interests)
	})

	t.Run("family and days", func(t *testing.T) {
		r := Infer("family of 4, 7 days in San Diego, beaches and something for the kids", testNow)
		assert.Equal(t, "San Diego", r.Destination)
		assert.Equal(t, 6, r.Nights)
		assert.Equal(t, 4, r.Travelers)
		assert.Equal(t, []string{"beaches", "kids"}, r.Interests)
	})

	t.Run("month-day dates resolve forward", func(t *testing.T) {
		r := Infer("solo trip to Lisbon on Mar 14", testNow)
		assert.Equal(t, "Lisbon", r.Destination)
		assert.Equal(t, 1, r.Travelers)
		// March is behind an end-of-August anchor, so it rolls to next year.
		assert.Equal(t, "2027-03-14", r.StartDate)
	})

	t.Run("a week means seven nights", func(t *testing.T) {
		assert.Equal(t, 7, Infer("a week in Rome", testNow).Nights)
		assert.Equal(t, 2, Infer("weekend in Austin", testNow).Nights)
	})

	t.Run("nothing useful", func(t *testing.T) {
		assert.Equal(t, Request{}, Infer("hmm", testNow))
	})
}

func TestBuildTemplate(t *testing.T) {
	p := Build(context.Background(), nil, Request{
		Destination: "Kyoto",
		StartDate:   "2026-10-12",
		Nights:      4,
		Interests:   []string{"history", "food"},
	})

	require.Len(t, p.Days, 5)
	assert.Equal(t, "template", p.Source)
	assert.Contains(t, p.Days[0].Summary, "Kyoto")
	assert.Equal(t, "Oct 12", p.Days[0].Date)
	assert.Equal(t, "Oct 16", p.Days[4].Date)
	// Middle days rotate through the interests.
	assert.Contains(t, p.Days[1].Summary, "Old quarter")
	assert.Contains(t, p.Days[2].Summary, "Food crawl")
	assert.Contains(t, p.Days[4].Summary, "head home")
}

func TestBuildTemplateUnknownInterests(t *testing.T) {
	// Interests the templates have no themes for must not break the
	// rotation; they are dropped in favor of the defaults.
	p := Build(context.Background(), nil, Request{
		Destination: "Zermatt",
		Nights:      3,
		Interests:   []string{"skiing"},
	})

	require.Len(t, p.Days, 4)
	assert.Equal(t, "template", p.Source)
	assert.Contains(t, p.Days[1].Summary, "Food crawl")
	assert.Contains(t, p.Days[2].Summary, "Old quarter")

	// A known interest mixed with unknown ones still drives every day.
	p = Build(context.Background(), nil, Request{
		Nights:    4,
		Interests: []string{"skiing", "hiking", "apres"},
	})
	require.Len(t, p.Days, 5)
	assert.Contains(t, p.Days[1].Summary, "Day hike")
	assert.Contains(t, p.Days[2].Summary, "Morning trail")
}

func TestBuildDefaults(t *testing.T) {
	p := Build(context.Background(), nil, Request{})
	assert.Equal(t, "Somewhere new", p.Destination)
	assert.Equal(t, 3, p.Nights)
	require.Len(t, p.Days, 4)
}

type fakeCompleter struct {
	text string
	err  error
}

func (f fakeCompleter) Complete(_ context.Context, _, _ string, _ int) (string, string, error) {
	return f.text, "fake-model", f.err
}

func TestBuildWithModel(t *testing.T) {
	t.Run("numbered lines become days", func(t *testing.T) {
		p := Build(context.Background(), fakeCompleter{
			text: "1. Arrive and explore Shibuya\n2) Tsukiji market morning\nDay 3: Day trip to Hakone",
		}, Request{Destination: "Tokyo", Nights: 2})

		require.Len(t, p.Days, 3)
		assert.Equal(t, "fake-model", p.Source)
		assert.Equal(t, "Arrive and explore Shibuya", p.Days[0].Summary)
		assert.Equal(t, "Tsukiji market morning", p.Days[1].Summary)
		assert.Equal(t, "Day trip to Hakone", p.Days[2].Summary)
	})

	t.Run("model failure falls back to template", func(t *testing.T) {
		p := Build(context.Background(), fakeCompleter{err: fmt.Errorf("rate limited")}, Request{Destination: "Tokyo", Nights: 2})
		assert.Equal(t, "template", p.Source)
		require.Len(t, p.Days, 3)
	})

	t.Run("empty model output falls back", func(t *testing.T) {
		p := Build(context.Background(), fakeCompleter{text: "\n\n"}, Request{Nights: 1})
		assert.Equal(t, "template", p.Source)
	})
}
