package quiz

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/verte-zerg/tuivocab/internal/model"
)

func cardsWithDefs(defs ...string) []model.Card {
	cards := make([]model.Card, len(defs))
	for i, d := range defs {
		cards[i] = model.Card{Word: string(rune('a' + i)), Sense: 1, PartOfSpeech: "n", Definition: d}
	}
	return cards
}

func TestBuildOptionsSmallCorpusTerminates(t *testing.T) {
	corpus := cardsWithDefs("a", "b", "")
	got := BuildOptions(corpus[0], corpus, rand.New(rand.NewSource(1)))
	sort.Strings(got)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestBuildOptionsFallbackAfterUnluckySampling(t *testing.T) {
	corpus := cardsWithDefs("a", "b", "c", "d")
	// a source that always returns 0 only ever samples the target
	got := BuildOptions(corpus[0], corpus, zeroSource{})
	if len(got) != OptionCount {
		t.Fatalf("expected %d options, got %v", OptionCount, got)
	}
	assertDistinct(t, got)
	if got[0] != "a" {
		t.Fatalf("expected correct definition first, got %v", got)
	}
}

func TestBuildOptionsLargeCorpus(t *testing.T) {
	corpus := cardsWithDefs("w", "x", "y", "z", "x", "", "v", "u")
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		got := BuildOptions(corpus[0], corpus, rng)
		if len(got) != OptionCount {
			t.Fatalf("expected %d options, got %v", OptionCount, got)
		}
		assertDistinct(t, got)
		for _, opt := range got {
			if opt == "" {
				t.Fatalf("empty definition offered: %v", got)
			}
		}
	}
}

func TestBuildOptionsEmptyTargetDefinition(t *testing.T) {
	corpus := cardsWithDefs("", "b")
	got := BuildOptions(corpus[0], corpus, rand.New(rand.NewSource(1)))
	if len(got) != 2 || got[0] != "" || got[1] != "b" {
		t.Fatalf("expected [\"\" b], got %q", got)
	}
}

func TestNewQuestionTracksAnswer(t *testing.T) {
	corpus := cardsWithDefs("alpha", "beta", "gamma", "delta", "epsilon")
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		target := corpus[i%len(corpus)]
		q := NewQuestion(target, corpus, rng)
		if q.Options[q.Answer] != target.Definition {
			t.Fatalf("answer index %d points at %q, want %q", q.Answer, q.Options[q.Answer], target.Definition)
		}
		if !q.Correct(q.Answer) {
			t.Fatalf("expected answer to be correct")
		}
	}
}

func TestShuffleFisherYates(t *testing.T) {
	// with a source that always picks the top index the permutation is identity
	items := []int{1, 2, 3, 4}
	Shuffle(items, topSource{})
	for i, v := range []int{1, 2, 3, 4} {
		if items[i] != v {
			t.Fatalf("expected identity, got %v", items)
		}
	}
	// always picking 0 rotates the slice left
	items = []int{1, 2, 3, 4}
	Shuffle(items, zeroSource{})
	for i, v := range []int{2, 3, 4, 1} {
		if items[i] != v {
			t.Fatalf("expected [2 3 4 1], got %v", items)
		}
	}
}

func TestShuffleUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	counts := map[[3]int]int{}
	const trials = 60000
	for i := 0; i < trials; i++ {
		items := []int{0, 1, 2}
		Shuffle(items, rng)
		counts[[3]int{items[0], items[1], items[2]}]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected 6 permutations, got %d", len(counts))
	}
	for perm, n := range counts {
		if n < trials/6-1000 || n > trials/6+1000 {
			t.Fatalf("permutation %v drawn %d times", perm, n)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		guess, truth string
		want         float64
	}{
		{"", "anything", 0},
		{"anything", "", 0},
		{"!!", "word", 0},
		{"very happy", "very happy", 1},
		{"happy very", "very, happy!", 1},
		{"a b", "b c", 1.0 / 3.0},
		{"to be brave", "brave", 1.0 / 3.0},
		{"Happy", "happy", 0},
	}
	for _, tt := range tests {
		got := Similarity(tt.guess, tt.truth)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("Similarity(%q, %q) = %v, want %v", tt.guess, tt.truth, got, tt.want)
		}
		if back := Similarity(tt.truth, tt.guess); back != got {
			t.Fatalf("expected symmetry for %q/%q: %v vs %v", tt.guess, tt.truth, got, back)
		}
	}
}

func assertDistinct(t *testing.T, opts []string) {
	t.Helper()
	seen := map[string]struct{}{}
	for _, o := range opts {
		if _, ok := seen[o]; ok {
			t.Fatalf("duplicate option %q in %v", o, opts)
		}
		seen[o] = struct{}{}
	}
}

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

type topSource struct{}

func (topSource) Intn(n int) int { return n - 1 }
