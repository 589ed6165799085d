package model

import (
	"encoding"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for enum parsing.
var (
	ErrInvalidGrade    = errors.New("invalid grade")
	ErrInvalidMode     = errors.New("invalid deck mode")
	ErrInvalidQuizType = errors.New("invalid quiz type")
)

// Grade is the learner's recall assessment. Value 1 is reserved.
type Grade int

const (
	Lapse Grade = 0 // Failed to recall.
	Hard  Grade = 2 // Recalled with difficulty.
	Good  Grade = 3 // Recalled.
	Easy  Grade = 4 // Recalled effortlessly.
)

var gradeNames = map[Grade]string{
	Lapse: "Lapse",
	Hard:  "Hard",
	Good:  "Good",
	Easy:  "Easy",
}

var (
	_ fmt.Stringer             = Grade(0)
	_ encoding.TextMarshaler   = Grade(0)
	_ encoding.TextUnmarshaler = (*Grade)(nil)
)

// IsValid reports whether g is one of Lapse, Hard, Good or Easy.
func (g Grade) IsValid() bool {
	_, ok := gradeNames[g]
	return ok
}

// String returns the grade name, or "Grade(n)" for invalid values.
func (g Grade) String() string {
	if name, ok := gradeNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(gradeNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Grade) UnmarshalText(text []byte) error {
	v, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGrade accepts a grade name (case-insensitive, "again" aliases Lapse)
// or its ordinal value.
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		g := Grade(n)
		if !g.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidGrade, n)
		}
		return g, nil
	}
	switch strings.ToLower(s) {
	case "lapse", "again":
		return Lapse, nil
	case "hard":
		return Hard, nil
	case "good":
		return Good, nil
	case "easy":
		return Easy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

// Mode selects the pool a card is drawn from.
type Mode int

const (
	ModeDue Mode = iota
	ModeFavorites
	ModeAll
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDue:
		return "due"
	case ModeFavorites:
		return "favs"
	case ModeAll:
		return "all"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Next cycles through Due, Favorites and All.
func (m Mode) Next() Mode {
	switch m {
	case ModeDue:
		return ModeFavorites
	case ModeFavorites:
		return ModeAll
	default:
		return ModeDue
	}
}

// ParseMode parses "due", "favs"/"favorites" or "all".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "due":
		return ModeDue, nil
	case "favs", "favorites", "fav":
		return ModeFavorites, nil
	case "all":
		return ModeAll, nil
	}
	return 0, fmt.Errorf("%w: %q (want due, favs or all)", ErrInvalidMode, s)
}

// QuizType selects the quiz presentation.
type QuizType int

const (
	MultipleChoice QuizType = iota
	Typed
)

// String returns the flag spelling of the quiz type.
func (q QuizType) String() string {
	if q == Typed {
		return "typed"
	}
	return "mc"
}

// ParseQuizType parses "mc" or "typed".
func ParseQuizType(s string) (QuizType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mc", "choice":
		return MultipleChoice, nil
	case "typed", "type", "text":
		return Typed, nil
	}
	return 0, fmt.Errorf("%w: %q (want mc or typed)", ErrInvalidQuizType, s)
}
