// Package scheduler implements the spaced-repetition grading transition.
//
// Grade is a pure function of (record, grade, now): it reads no clock and
// holds no state, so the same inputs always yield the same record.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// ErrInvalidGrade is returned when Grade receives a value outside
// Lapse, Hard, Good and Easy.
var ErrInvalidGrade = errors.New("scheduler: invalid grade")

// MaxInterval caps the interval in days, which keeps Due far from int64
// overflow however long an Easy streak runs.
const MaxInterval = 36500

const (
	day         = 24 * time.Hour
	lapseDelay  = 10 * time.Minute
	lapseEase   = -0.2
	firstIvl    = 1
	secondIvl   = 3
	minDueDays  = 1
	minInterval = 0
)

var easeDelta = map[model.Grade]float64{
	model.Hard: -0.05,
	model.Good: 0.0,
	model.Easy: 0.08,
}

var dueMultiplier = map[model.Grade]float64{
	model.Hard: 0.7,
	model.Good: 1.0,
	model.Easy: 1.2,
}

// Grade applies g to rec at now and returns the updated record.
// Ease and interval are clamped on write, so a record loaded with
// out-of-range values is repaired after one call. That includes lapses:
// they clamp ease to both bounds, so a stored ease above MaxEase comes
// back as MaxEase. Intervals never exceed MaxInterval days.
func Grade(rec model.Record, g model.Grade, now time.Time) (model.Record, error) {
	if !g.IsValid() {
		return rec, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	nowMs := now.UnixMilli()

	if g == model.Lapse {
		return model.Record{
			Due:      nowMs + lapseDelay.Milliseconds(),
			Interval: 0,
			Ease:     clampEase(rec.Ease + lapseEase),
			Reps:     0,
		}, nil
	}

	next := model.Record{
		Ease: clampEase(rec.Ease + easeDelta[g]),
		Reps: maxInt(rec.Reps, 0) + 1,
	}
	switch next.Reps {
	case 1:
		next.Interval = firstIvl
	case 2:
		next.Interval = secondIvl
	default:
		prev := clampInterval(rec.Interval)
		next.Interval = clampInterval(int(math.Round(float64(prev) * next.Ease)))
	}

	days := int64(math.Round(float64(next.Interval) * dueMultiplier[g]))
	if days < minDueDays {
		days = minDueDays
	}
	next.Due = nowMs + days*day.Milliseconds()
	return next, nil
}

func clampEase(ease float64) float64 {
	if math.IsNaN(ease) {
		return model.DefaultEase
	}
	return math.Min(model.MaxEase, math.Max(model.MinEase, ease))
}

func clampInterval(days int) int {
	return min(MaxInterval, max(minInterval, days))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
