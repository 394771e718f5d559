package analytics

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DayStats holds aggregates for one day file.
type DayStats struct {
	Day    string `json:"day"`
	Total  int    `json:"total"`
	Errors int    `json:"errors"`
}

// ToolStats holds aggregates for one app/tool pair.
type ToolStats struct {
	App    string `json:"app"`
	Tool   string `json:"tool"`
	Count  int    `json:"count"`
	Errors int    `json:"errors"`
	P50MS  int64  `json:"p50_ms"`
	P95MS  int64  `json:"p95_ms"`
}

// Report is the aggregate over a date range.
type Report struct {
	From      string      `json:"from"`
	To        string      `json:"to"`
	Total     int         `json:"total"`
	Errors    int         `json:"errors"`
	ErrorRate float64     `json:"error_rate"`
	Days      []DayStats  `json:"days"`
	Tools     []ToolStats `json:"tools"`
}

type toolAgg struct {
	count     int
	errors    int
	durations []int64
}

// Aggregate reads the day files in [from, to] (inclusive, YYYY-MM-DD) under
// dir and builds a Report. Missing day files and malformed lines are
// skipped. Files are read concurrently.
func Aggregate(dir, from, to string) (*Report, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("bad from date %q: %w", from, err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("bad to date %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("date range is backwards: %s after %s", from, to)
	}

	rep := &Report{From: from, To: to}
	tools := make(map[string]*toolAgg)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(8)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		g.Go(func() error {
			stats, agg, err := readDay(dayFile(dir, day), day)
			if err != nil {
				return err
			}
			if stats == nil {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			rep.Days = append(rep.Days, *stats)
			rep.Total += stats.Total
			rep.Errors += stats.Errors
			for key, a := range agg {
				if cur, ok := tools[key]; ok {
					cur.count += a.count
					cur.errors += a.errors
					cur.durations = append(cur.durations, a.durations...)
				} else {
					tools[key] = a
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if rep.Total > 0 {
		rep.ErrorRate = float64(rep.Errors) / float64(rep.Total)
	}
	sort.Slice(rep.Days, func(i, j int) bool { return rep.Days[i].Day < rep.Days[j].Day })

	for key, a := range tools {
		app, tool := splitKey(key)
		sort.Slice(a.durations, func(i, j int) bool { return a.durations[i] < a.durations[j] })
		rep.Tools = append(rep.Tools, ToolStats{
			App:    app,
			Tool:   tool,
			Count:  a.count,
			Errors: a.errors,
			P50MS:  percentile(a.durations, 50),
			P95MS:  percentile(a.durations, 95),
		})
	}
	sort.Slice(rep.Tools, func(i, j int) bool {
		if rep.Tools[i].Count != rep.Tools[j].Count {
			return rep.Tools[i].Count > rep.Tools[j].Count
		}
		return rep.Tools[i].Tool < rep.Tools[j].Tool
	})
	return rep, nil
}

func readDay(path, day string) (*DayStats, map[string]*toolAgg, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	stats := &DayStats{Day: day}
	agg := make(map[string]*toolAgg)

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var ev Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			continue // skip malformed lines
		}
		stats.Total++
		if !ev.OK {
			stats.Errors++
		}
		key := ev.App + "\x00" + name(ev)
		a, ok := agg[key]
		if !ok {
			a = &toolAgg{}
			agg[key] = a
		}
		a.count++
		if !ev.OK {
			a.errors++
		}
		a.durations = append(a.durations, ev.DurationMS)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return stats, agg, nil
}

func name(ev Event) string {
	if ev.Tool != "" {
		return ev.Tool
	}
	return ev.Kind
}

func splitKey(key string) (app, tool string) {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func percentile(sorted []int64, p int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (len(sorted)*p + 99) / 100
	if idx > 0 {
		idx--
	}
	return sorted[idx]
}
