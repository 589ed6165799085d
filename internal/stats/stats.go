// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/selector"
)

const dayMs = int64(24 * time.Hour / time.Millisecond)

// repsBuckets labels the reps distribution rows; the last bucket is open-ended.
var repsBuckets = []string{"0", "1", "2", "3", "4", "5+"}

// Summary holds the headline counters.
type Summary struct {
	Total     int
	Favorites int
	Due       int
	Studied   int
	Goal      int
}

// BuildSummary computes counters for the corpus at now.
func BuildSummary(cards []model.Card, records model.Records, favorites model.Favorites, today model.DailyProgress, now time.Time) Summary {
	return Summary{
		Total:     len(cards),
		Favorites: len(favorites),
		Due:       len(selector.DueCards(cards, records, now)),
		Studied:   today.Studied,
		Goal:      today.Goal,
	}
}

// RenderSummary prints the headline counters.
func RenderSummary(w io.Writer, s Summary) error {
	lines := []string{
		"Summary",
		fmt.Sprintf("Cards: %d", s.Total),
		fmt.Sprintf("Favorites: %d", s.Favorites),
		fmt.Sprintf("Due now: %d", s.Due),
		fmt.Sprintf("Studied today: %d/%d", s.Studied, s.Goal),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RepsRow aggregates cards that share a reps bucket.
type RepsRow struct {
	Label   string
	Count   int
	AvgEase float64
}

// RepsDistribution groups corpus cards by reps. Never-graded cards count
// in bucket "0" with the default ease.
func RepsDistribution(cards []model.Card, records model.Records) []RepsRow {
	rows := make([]RepsRow, len(repsBuckets))
	easeSum := make([]float64, len(repsBuckets))
	for i, label := range repsBuckets {
		rows[i].Label = label
	}
	for _, c := range cards {
		rec := records.Lookup(c.Key())
		idx := rec.Reps
		if idx < 0 {
			idx = 0
		}
		if idx >= len(repsBuckets) {
			idx = len(repsBuckets) - 1
		}
		rows[idx].Count++
		easeSum[idx] += rec.Ease
	}
	for i := range rows {
		if rows[i].Count > 0 {
			rows[i].AvgEase = easeSum[i] / float64(rows[i].Count)
		}
	}
	return rows
}

// RenderRepsTable prints the reps distribution.
func RenderRepsTable(w io.Writer, rows []RepsRow) error {
	if _, err := fmt.Fprintln(w, "By Reps"); err != nil {
		return err
	}
	headers := []string{"Reps", "Cards", "Avg Ease"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		ease := "-"
		if r.Count > 0 {
			ease = fmt.Sprintf("%.2f", r.AvgEase)
		}
		tableRows = append(tableRows, []string{r.Label, fmt.Sprintf("%d", r.Count), ease})
	}
	table := Table{Headers: headers, Rows: tableRows, RightAlign: map[int]bool{1: true, 2: true}}
	if err := table.Write(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// Forecast counts corpus cards that become due on each of the next days
// days. Index 0 includes everything already due.
func Forecast(cards []model.Card, records model.Records, now time.Time, days int) []int {
	if days <= 0 {
		return nil
	}
	counts := make([]int, days)
	nowMs := now.UnixMilli()
	for _, c := range cards {
		due := records.Lookup(c.Key()).Due
		idx := 0
		if due > nowMs {
			idx = int((due - nowMs + dayMs - 1) / dayMs)
		}
		if idx < days {
			counts[idx]++
		}
	}
	return counts
}
