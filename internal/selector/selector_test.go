package selector

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

func makeCorpus(n int) []model.Card {
	cards := make([]model.Card, n)
	for i := range cards {
		cards[i] = model.Card{
			Word:         fmt.Sprintf("word%03d", i),
			Sense:        1,
			PartOfSpeech: "n",
			Definition:   fmt.Sprintf("definition %d", i),
		}
	}
	return cards
}

// fixedSource always returns the same index, clamped to n.
type fixedSource int

func (f fixedSource) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestPoolDueIncludesNeverStudied(t *testing.T) {
	corpus := makeCorpus(3)
	now := time.UnixMilli(10_000)
	records := model.Records{
		corpus[1].Key(): {Due: 20_000, Interval: 1, Ease: 2.4, Reps: 1},
		corpus[2].Key(): {Due: 10_000, Interval: 1, Ease: 2.4, Reps: 1},
	}
	pool := Pool(corpus, records, nil, model.ModeDue, now)
	if len(pool) != 2 {
		t.Fatalf("expected 2 due cards, got %d", len(pool))
	}
	if pool[0] != corpus[0] || pool[1] != corpus[2] {
		t.Fatalf("unexpected due pool: %+v", pool)
	}
}

func TestPoolDueCapAndOrder(t *testing.T) {
	corpus := makeCorpus(100)
	records := model.Records{}
	// reps descend with corpus index so sorting must reorder
	for i, c := range corpus {
		records[c.Key()] = model.Record{Due: 0, Ease: 2.4, Reps: (100 - i) % 7}
	}
	pool := Pool(corpus, records, nil, model.ModeDue, time.UnixMilli(1))
	if len(pool) != DueCap {
		t.Fatalf("expected %d cards, got %d", DueCap, len(pool))
	}
	for i := 1; i < len(pool); i++ {
		prev := records.Lookup(pool[i-1].Key()).Reps
		cur := records.Lookup(pool[i].Key()).Reps
		if cur < prev {
			t.Fatalf("pool not ordered by reps at %d: %d after %d", i, cur, prev)
		}
	}
	maxInPool := records.Lookup(pool[len(pool)-1].Key()).Reps
	for _, c := range corpus {
		if records.Lookup(c.Key()).Reps < maxInPool && !contains(pool, c) {
			t.Fatalf("card %s with fewer reps was dropped", c.Word)
		}
	}
}

func TestPoolDueStableTies(t *testing.T) {
	corpus := makeCorpus(5)
	pool := Pool(corpus, model.Records{}, nil, model.ModeDue, time.UnixMilli(0))
	for i := range corpus {
		if pool[i] != corpus[i] {
			t.Fatalf("expected corpus order for equal reps, got %+v", pool)
		}
	}
}

func TestPoolFavoritesAndAll(t *testing.T) {
	corpus := makeCorpus(4)
	favs := model.Favorites{corpus[3].Key(): {}, corpus[1].Key(): {}}
	pool := Pool(corpus, nil, favs, model.ModeFavorites, time.UnixMilli(0))
	if len(pool) != 2 || pool[0] != corpus[1] || pool[1] != corpus[3] {
		t.Fatalf("unexpected favorites pool: %+v", pool)
	}
	records := model.Records{corpus[0].Key(): {Due: 1 << 40, Reps: 9, Ease: 2.4}}
	all := Pool(corpus, records, nil, model.ModeAll, time.UnixMilli(0))
	if len(all) != len(corpus) {
		t.Fatalf("expected whole corpus, got %d", len(all))
	}
	all[0] = model.Card{}
	if corpus[0].Word == "" {
		t.Fatalf("pool must not alias the corpus")
	}
}

func TestPickNextEmptyPool(t *testing.T) {
	corpus := makeCorpus(3)
	if _, ok := PickNext(corpus, nil, model.Favorites{}, model.ModeFavorites, time.UnixMilli(0), fixedSource(0)); ok {
		t.Fatalf("expected no card without favorites")
	}
	if _, ok := PickNext(nil, nil, nil, model.ModeAll, time.UnixMilli(0), fixedSource(0)); ok {
		t.Fatalf("expected no card for empty corpus")
	}
	records := model.Records{}
	for _, c := range corpus {
		records[c.Key()] = model.Record{Due: 5000, Ease: 2.4, Reps: 1}
	}
	if _, ok := PickNext(corpus, records, nil, model.ModeDue, time.UnixMilli(4999), fixedSource(0)); ok {
		t.Fatalf("expected no due card")
	}
}

func TestPickNextReproducible(t *testing.T) {
	corpus := makeCorpus(80)
	now := time.UnixMilli(0)
	a, okA := PickNext(corpus, nil, nil, model.ModeDue, now, rand.New(rand.NewSource(11)))
	b, okB := PickNext(corpus, nil, nil, model.ModeDue, now, rand.New(rand.NewSource(11)))
	if !okA || !okB {
		t.Fatalf("expected a card")
	}
	if a != b {
		t.Fatalf("expected same card for same seed, got %s and %s", a.Word, b.Word)
	}
}

func TestPickNextUsesSource(t *testing.T) {
	corpus := makeCorpus(100)
	got, ok := PickNext(corpus, nil, nil, model.ModeDue, time.UnixMilli(0), fixedSource(99))
	if !ok {
		t.Fatalf("expected a card")
	}
	// index clamps to the last entry of the capped pool
	if got != corpus[DueCap-1] {
		t.Fatalf("expected %s, got %s", corpus[DueCap-1].Word, got.Word)
	}
}

func TestPickQuizCardFallsBackToCorpus(t *testing.T) {
	corpus := makeCorpus(3)
	records := model.Records{}
	for _, c := range corpus {
		records[c.Key()] = model.Record{Due: 1000, Ease: 2.4, Reps: 2}
	}
	got, ok := PickQuizCard(corpus, records, time.UnixMilli(0), fixedSource(2))
	if !ok || got != corpus[2] {
		t.Fatalf("expected fallback to corpus card, got %+v", got)
	}
	delete(records, corpus[1].Key())
	got, ok = PickQuizCard(corpus, records, time.UnixMilli(0), fixedSource(2))
	if !ok || got != corpus[1] {
		t.Fatalf("expected only due card, got %+v", got)
	}
	if _, ok := PickQuizCard(nil, nil, time.UnixMilli(0), fixedSource(0)); ok {
		t.Fatalf("expected no card for empty corpus")
	}
}

func contains(cards []model.Card, c model.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
