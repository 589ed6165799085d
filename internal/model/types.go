// Package model defines shared data structures.
package model

import "time"

// Record defaults for a card that has never been graded.
const (
	DefaultEase = 2.4
	MinEase     = 1.3
	MaxEase     = 3.0
)

// Card is one entry of the fixed vocabulary corpus.
type Card struct {
	Word         string `json:"word"`
	Sense        int    `json:"sense"`
	PartOfSpeech string `json:"pos"`
	Definition   string `json:"definition"`
	Example      string `json:"example,omitempty"`
}

// CardKey identifies a card for scheduling and favorites.
// Cards with equal values on all four fields share one key.
type CardKey struct {
	Word         string
	Sense        int
	PartOfSpeech string
	Definition   string
}

// Key returns the composite identity of the card.
func (c Card) Key() CardKey {
	return CardKey{
		Word:         c.Word,
		Sense:        c.Sense,
		PartOfSpeech: c.PartOfSpeech,
		Definition:   c.Definition,
	}
}

// Record is the per-card memory-strength state.
type Record struct {
	Due      int64 // unix milliseconds
	Interval int   // days
	Ease     float64
	Reps     int
}

// DefaultRecord returns the record used for never-graded cards.
func DefaultRecord() Record {
	return Record{Due: 0, Interval: 0, Ease: DefaultEase, Reps: 0}
}

// IsDue reports whether the record is eligible for study at now.
func (r Record) IsDue(now time.Time) bool {
	return r.Due <= now.UnixMilli()
}

// DueTime returns Due as a time value.
func (r Record) DueTime() time.Time {
	return time.UnixMilli(r.Due)
}

// Records maps card keys to scheduling records.
type Records map[CardKey]Record

// Lookup returns the record for key or the default record.
func (rs Records) Lookup(key CardKey) Record {
	if r, ok := rs[key]; ok {
		return r
	}
	return DefaultRecord()
}

// Favorites is a set of card keys.
type Favorites map[CardKey]struct{}

// Contains reports whether key is a favorite.
func (f Favorites) Contains(key CardKey) bool {
	_, ok := f[key]
	return ok
}

// Daily goal bounds.
const (
	DefaultDailyGoal = 30
	MinDailyGoal     = 5
	MaxDailyGoal     = 200
)

// DailyProgress tracks cards studied on a calendar day.
type DailyProgress struct {
	Date    time.Time // local midnight
	Studied int
	Goal    int
}

// StartOfDay returns local midnight for t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ClampGoal bounds a daily goal to the accepted range.
func ClampGoal(goal int) int {
	if goal < MinDailyGoal {
		return MinDailyGoal
	}
	if goal > MaxDailyGoal {
		return MaxDailyGoal
	}
	return goal
}

// Config defines study settings.
type Config struct {
	CardsPath string
	Deck      Mode
	QuizType  QuizType
	Goal      int
}

// ListConfig defines filters for the list command.
type ListConfig struct {
	Filter Mode
	Query  string
	Limit  int
}

// StatsConfig defines options for stats output.
type StatsConfig struct {
	ForecastDays int
}
