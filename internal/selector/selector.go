// Package selector chooses the next card to study or quiz.
package selector

import (
	"sort"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// DueCap bounds the due-mode candidate pool after sorting by reps.
const DueCap = 60

// Source supplies uniform random integers in [0, n).
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// DueCards returns the corpus cards whose record is due at now, in corpus order.
func DueCards(corpus []model.Card, records model.Records, now time.Time) []model.Card {
	out := make([]model.Card, 0, len(corpus))
	for _, c := range corpus {
		if records.Lookup(c.Key()).IsDue(now) {
			out = append(out, c)
		}
	}
	return out
}

// FavoriteCards returns the corpus cards whose key is a favorite.
func FavoriteCards(corpus []model.Card, favorites model.Favorites) []model.Card {
	out := make([]model.Card, 0, len(favorites))
	for _, c := range corpus {
		if favorites.Contains(c.Key()) {
			out = append(out, c)
		}
	}
	return out
}

// Pool builds the candidate set for mode. In due mode the cards are ordered
// by ascending reps and truncated to DueCap. The result is a fresh slice.
func Pool(corpus []model.Card, records model.Records, favorites model.Favorites, mode model.Mode, now time.Time) []model.Card {
	switch mode {
	case model.ModeDue:
		pool := DueCards(corpus, records, now)
		sort.SliceStable(pool, func(i, j int) bool {
			return records.Lookup(pool[i].Key()).Reps < records.Lookup(pool[j].Key()).Reps
		})
		if len(pool) > DueCap {
			pool = pool[:DueCap]
		}
		return pool
	case model.ModeFavorites:
		return FavoriteCards(corpus, favorites)
	default:
		pool := make([]model.Card, len(corpus))
		copy(pool, corpus)
		return pool
	}
}

// PickNext returns a uniformly chosen card from the pool for mode.
// ok is false when the pool is empty.
func PickNext(corpus []model.Card, records model.Records, favorites model.Favorites, mode model.Mode, now time.Time, rng Source) (card model.Card, ok bool) {
	return pickFrom(Pool(corpus, records, favorites, mode, now), rng)
}

// PickQuizCard prefers a due card and falls back to the whole corpus
// when nothing is due.
func PickQuizCard(corpus []model.Card, records model.Records, now time.Time, rng Source) (model.Card, bool) {
	if due := DueCards(corpus, records, now); len(due) > 0 {
		return pickFrom(due, rng)
	}
	return pickFrom(corpus, rng)
}

func pickFrom(pool []model.Card, rng Source) (model.Card, bool) {
	if len(pool) == 0 {
		return model.Card{}, false
	}
	return pool[rng.Intn(len(pool))], true
}
