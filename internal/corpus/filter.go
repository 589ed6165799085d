package corpus

import (
	"strings"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// FilterFunc returns true when a card should be kept.
type FilterFunc func(model.Card) bool

// MatchQuery returns a case-insensitive substring filter over word,
// definition and example. An empty query keeps every card.
func MatchQuery(query string) FilterFunc {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return func(model.Card) bool { return true }
	}
	return func(c model.Card) bool {
		return strings.Contains(strings.ToLower(c.Word), q) ||
			strings.Contains(strings.ToLower(c.Definition), q) ||
			strings.Contains(strings.ToLower(c.Example), q)
	}
}

// Filter returns the cards kept by keep, stopping after limit matches
// when limit is positive.
func Filter(cards []model.Card, keep FilterFunc, limit int) []model.Card {
	out := make([]model.Card, 0)
	for _, c := range cards {
		if !keep(c) {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
