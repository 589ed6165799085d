package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseGrade(t *testing.T) {
	cases := map[string]Grade{
		"lapse": Lapse,
		"Again": Lapse,
		" 0 ":   Lapse,
		"hard":  Hard,
		"2":     Hard,
		"GOOD":  Good,
		"3":     Good,
		"easy":  Easy,
		"4":     Easy,
	}
	for input, want := range cases {
		got, err := ParseGrade(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %v, got %v", input, want, got)
		}
	}
	for _, input := range []string{"1", "5", "-1", "meh", ""} {
		if _, err := ParseGrade(input); !errors.Is(err, ErrInvalidGrade) {
			t.Fatalf("parse %q: expected ErrInvalidGrade, got %v", input, err)
		}
	}
}

func TestGradeText(t *testing.T) {
	text, err := Good.MarshalText()
	if err != nil || string(text) != "Good" {
		t.Fatalf("expected Good, got %q (%v)", text, err)
	}
	if _, err := Grade(1).MarshalText(); !errors.Is(err, ErrInvalidGrade) {
		t.Fatalf("expected ErrInvalidGrade, got %v", err)
	}
	if got := Grade(7).String(); got != "Grade(7)" {
		t.Fatalf("unexpected string %q", got)
	}
	var g Grade
	if err := g.UnmarshalText([]byte("easy")); err != nil || g != Easy {
		t.Fatalf("expected Easy, got %v (%v)", g, err)
	}
}

func TestParseModeAndNext(t *testing.T) {
	cases := map[string]Mode{"due": ModeDue, "FAVS": ModeFavorites, "favorites": ModeFavorites, "all": ModeAll}
	for input, want := range cases {
		got, err := ParseMode(input)
		if err != nil || got != want {
			t.Fatalf("parse %q: expected %v, got %v (%v)", input, want, got, err)
		}
	}
	if _, err := ParseMode("later"); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if ModeDue.Next() != ModeFavorites || ModeFavorites.Next() != ModeAll || ModeAll.Next() != ModeDue {
		t.Fatalf("unexpected mode cycle")
	}
	for _, m := range []Mode{ModeDue, ModeFavorites, ModeAll} {
		parsed, err := ParseMode(m.String())
		if err != nil || parsed != m {
			t.Fatalf("mode %v does not parse back: %v (%v)", m, parsed, err)
		}
	}
}

func TestParseQuizType(t *testing.T) {
	if q, err := ParseQuizType("mc"); err != nil || q != MultipleChoice {
		t.Fatalf("expected mc, got %v (%v)", q, err)
	}
	if q, err := ParseQuizType("Typed"); err != nil || q != Typed {
		t.Fatalf("expected typed, got %v (%v)", q, err)
	}
	if _, err := ParseQuizType("oral"); !errors.Is(err, ErrInvalidQuizType) {
		t.Fatalf("expected ErrInvalidQuizType, got %v", err)
	}
}

func TestCardKeyDistinguishesSenses(t *testing.T) {
	a := Card{Word: "bank", Sense: 1, PartOfSpeech: "n", Definition: "river side"}
	b := Card{Word: "bank", Sense: 2, PartOfSpeech: "n", Definition: "money place"}
	if a.Key() == b.Key() {
		t.Fatalf("expected distinct keys")
	}
	withExample := a
	withExample.Example = "the bank of the river"
	if a.Key() != withExample.Key() {
		t.Fatalf("example must not affect the key")
	}
}

func TestRecordLookupAndDue(t *testing.T) {
	var records Records
	rec := records.Lookup(CardKey{Word: "x"})
	if rec != DefaultRecord() {
		t.Fatalf("expected default record, got %+v", rec)
	}
	if rec.Ease != DefaultEase || rec.Reps != 0 || rec.Interval != 0 || rec.Due != 0 {
		t.Fatalf("unexpected default record %+v", rec)
	}
	now := time.UnixMilli(5000)
	if !rec.IsDue(now) {
		t.Fatalf("default record must be due")
	}
	if !(Record{Due: 5000}).IsDue(now) {
		t.Fatalf("record due exactly now must be due")
	}
	if (Record{Due: 5001}).IsDue(now) {
		t.Fatalf("future record must not be due")
	}
	if math.Abs(DefaultEase-2.4) > 1e-9 {
		t.Fatalf("unexpected default ease %v", DefaultEase)
	}
}

func TestClampGoalAndStartOfDay(t *testing.T) {
	if ClampGoal(1) != MinDailyGoal || ClampGoal(1000) != MaxDailyGoal || ClampGoal(42) != 42 {
		t.Fatalf("unexpected goal clamping")
	}
	ts := time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC)
	if got := StartOfDay(ts); !got.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start of day %v", got)
	}
}
