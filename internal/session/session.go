// Package session owns the in-memory study state for one process and keeps
// it in sync with the store.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/tuivocab/internal/corpus"
	"github.com/verte-zerg/tuivocab/internal/model"
	"github.com/verte-zerg/tuivocab/internal/quiz"
	"github.com/verte-zerg/tuivocab/internal/scheduler"
	"github.com/verte-zerg/tuivocab/internal/selector"
)

// Store is the persistence the session needs.
type Store interface {
	ListRecords(ctx context.Context) (model.Records, error)
	GetRecord(ctx context.Context, key model.CardKey) (model.Record, bool, error)
	PutRecord(ctx context.Context, key model.CardKey, rec model.Record) error
	ListFavorites(ctx context.Context) (model.Favorites, error)
	HasFavorite(ctx context.Context, key model.CardKey) (bool, error)
	AddFavorite(ctx context.Context, key model.CardKey) error
	RemoveFavorite(ctx context.Context, key model.CardKey) error
	GetDailyProgress(ctx context.Context) (model.DailyProgress, bool, error)
	SaveDailyProgress(ctx context.Context, p model.DailyProgress) error
	Reset(ctx context.Context) error
}

// Clock returns the current time.
type Clock func() time.Time

// Random supplies uniform random integers in [0, n).
type Random interface {
	Intn(n int) int
}

// Session holds the corpus and the loaded scheduling state. Every mutation
// is written through to the store before the in-memory copy changes.
type Session struct {
	store Store
	clock Clock
	rng   Random

	cards     []model.Card
	records   model.Records
	favorites model.Favorites
	today     model.DailyProgress
}

// Load reads records, favorites and daily progress from st.
func Load(ctx context.Context, st Store, cards []model.Card, clock Clock, rng Random) (*Session, error) {
	records, err := st.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	favorites, err := st.ListFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	progress, ok, err := st.GetDailyProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily progress: %w", err)
	}
	s := &Session{
		store:     st,
		clock:     clock,
		rng:       rng,
		cards:     cards,
		records:   records,
		favorites: favorites,
	}
	if s.records == nil {
		s.records = model.Records{}
	}
	if s.favorites == nil {
		s.favorites = model.Favorites{}
	}
	if !ok {
		progress = model.DailyProgress{Goal: model.DefaultDailyGoal}
	}
	s.today = s.rollover(progress)
	return s, nil
}

// rollover starts a fresh count when p belongs to another day.
func (s *Session) rollover(p model.DailyProgress) model.DailyProgress {
	today := model.StartOfDay(s.clock())
	if p.Goal <= 0 {
		p.Goal = model.DefaultDailyGoal
	}
	if p.Date.IsZero() || !sameDay(p.Date, today) {
		return model.DailyProgress{Date: today, Studied: 0, Goal: p.Goal}
	}
	p.Date = today
	return p
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Cards returns the corpus.
func (s *Session) Cards() []model.Card {
	return s.cards
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.clock()
}

// Records returns the loaded scheduling records. Callers must not mutate it.
func (s *Session) Records() model.Records {
	return s.records
}

// Favorites returns the loaded favorites. Callers must not mutate it.
func (s *Session) Favorites() model.Favorites {
	return s.favorites
}

// Record returns the scheduling record for card, or the default record.
func (s *Session) Record(card model.Card) model.Record {
	return s.records.Lookup(card.Key())
}

// Next picks the next card to study in mode.
func (s *Session) Next(mode model.Mode) (model.Card, bool) {
	return selector.PickNext(s.cards, s.records, s.favorites, mode, s.clock(), s.rng)
}

// NextQuestion picks a quiz card and builds a shuffled multiple-choice question.
func (s *Session) NextQuestion() (quiz.Question, bool) {
	card, ok := selector.PickQuizCard(s.cards, s.records, s.clock(), s.rng)
	if !ok {
		return quiz.Question{}, false
	}
	return quiz.NewQuestion(card, s.cards, s.rng), true
}

// List returns the cards in cfg.Filter matching cfg.Query, in corpus order
// and at most cfg.Limit of them. The due filter is not capped.
func (s *Session) List(cfg model.ListConfig) []model.Card {
	var pool []model.Card
	switch cfg.Filter {
	case model.ModeFavorites:
		pool = selector.FavoriteCards(s.cards, s.favorites)
	case model.ModeDue:
		pool = selector.DueCards(s.cards, s.records, s.clock())
	default:
		pool = s.cards
	}
	return corpus.Filter(pool, corpus.MatchQuery(cfg.Query), cfg.Limit)
}

// DueCount returns the number of corpus cards due now.
func (s *Session) DueCount() int {
	return len(selector.DueCards(s.cards, s.records, s.clock()))
}

// Rate grades card, persists the new record and counts it toward today's goal.
func (s *Session) Rate(ctx context.Context, card model.Card, g model.Grade) (model.Record, error) {
	key := card.Key()
	now := s.clock()
	rec, ok, err := s.store.GetRecord(ctx, key)
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to load record: %w", err)
	}
	if !ok {
		rec = model.DefaultRecord()
	}
	next, err := scheduler.Grade(rec, g, now)
	if err != nil {
		return model.Record{}, err
	}
	if err := s.store.PutRecord(ctx, key, next); err != nil {
		return model.Record{}, fmt.Errorf("failed to save record: %w", err)
	}
	s.records[key] = next

	today := s.rollover(s.today)
	today.Studied++
	if err := s.store.SaveDailyProgress(ctx, today); err != nil {
		return next, fmt.Errorf("failed to save daily progress: %w", err)
	}
	s.today = today
	return next, nil
}

// IsFavorite reports whether card is a favorite.
func (s *Session) IsFavorite(card model.Card) bool {
	return s.favorites.Contains(card.Key())
}

// SetFavorite adds or removes card from the favorites.
func (s *Session) SetFavorite(ctx context.Context, card model.Card, on bool) error {
	key := card.Key()
	if on {
		if err := s.store.AddFavorite(ctx, key); err != nil {
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		s.favorites[key] = struct{}{}
		return nil
	}
	if err := s.store.RemoveFavorite(ctx, key); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	delete(s.favorites, key)
	return nil
}

// ToggleFavorite flips the stored favorite state of card and returns the
// new state.
func (s *Session) ToggleFavorite(ctx context.Context, card model.Card) (bool, error) {
	was, err := s.store.HasFavorite(ctx, card.Key())
	if err != nil {
		return s.IsFavorite(card), fmt.Errorf("failed to load favorite: %w", err)
	}
	on := !was
	if err := s.SetFavorite(ctx, card, on); err != nil {
		return !on, err
	}
	return on, nil
}

// Today returns today's progress, rolled over if the day has changed.
func (s *Session) Today() model.DailyProgress {
	return s.rollover(s.today)
}

// SetGoal clamps and stores the daily goal.
func (s *Session) SetGoal(ctx context.Context, goal int) (int, error) {
	today := s.rollover(s.today)
	today.Goal = model.ClampGoal(goal)
	if err := s.store.SaveDailyProgress(ctx, today); err != nil {
		return 0, fmt.Errorf("failed to save daily goal: %w", err)
	}
	s.today = today
	return today.Goal, nil
}

// ResetToday clears today's studied count, keeping the goal.
func (s *Session) ResetToday(ctx context.Context) error {
	today := model.DailyProgress{Date: model.StartOfDay(s.clock()), Goal: s.today.Goal}
	if err := s.store.SaveDailyProgress(ctx, today); err != nil {
		return fmt.Errorf("failed to reset daily progress: %w", err)
	}
	s.today = today
	return nil
}

// ResetAll deletes every record and favorite and clears today's count.
func (s *Session) ResetAll(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	s.records = model.Records{}
	s.favorites = model.Favorites{}
	return s.ResetToday(ctx)
}
