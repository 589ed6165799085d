// Package quiz builds quiz questions and scores typed answers.
package quiz

import "github.com/verte-zerg/tuivocab/internal/model"

// OptionCount is the number of choices a multiple-choice question aims for.
const OptionCount = 4

// attemptsPerOption bounds random sampling before falling back to the
// remaining distinct definitions.
const attemptsPerOption = 16

// Source supplies uniform random integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Question is a multiple-choice question for one card.
type Question struct {
	Card    model.Card
	Options []string
	Answer  int // index of the correct option
}

// Correct reports whether option i is the right definition.
func (q Question) Correct(i int) bool {
	return i == q.Answer
}

// BuildOptions returns the correct definition plus up to OptionCount-1
// distinct non-empty distractor definitions sampled from corpus. When the
// corpus has fewer distinct definitions the result is as large as the corpus
// allows. The result is not shuffled.
func BuildOptions(target model.Card, corpus []model.Card, rng Source) []string {
	options := []string{target.Definition}
	seen := map[string]struct{}{target.Definition: {}}

	available := distinctDefinitions(corpus, seen)
	want := OptionCount
	if limit := len(options) + len(available); limit < want {
		want = limit
	}

	attempts := attemptsPerOption * OptionCount
	for len(options) < want && attempts > 0 && len(corpus) > 0 {
		attempts--
		def := corpus[rng.Intn(len(corpus))].Definition
		if def == "" {
			continue
		}
		if _, ok := seen[def]; ok {
			continue
		}
		seen[def] = struct{}{}
		options = append(options, def)
	}
	if len(options) < want {
		// Sampling ran out of attempts; draw from what is left.
		rest := make([]string, 0, len(available))
		for _, def := range available {
			if _, ok := seen[def]; !ok {
				rest = append(rest, def)
			}
		}
		Shuffle(rest, rng)
		for _, def := range rest {
			if len(options) >= want {
				break
			}
			options = append(options, def)
		}
	}
	return options
}

// NewQuestion builds and shuffles a multiple-choice question for target.
func NewQuestion(target model.Card, corpus []model.Card, rng Source) Question {
	options := Shuffle(BuildOptions(target, corpus, rng), rng)
	answer := 0
	for i, opt := range options {
		if opt == target.Definition {
			answer = i
			break
		}
	}
	return Question{Card: target, Options: options, Answer: answer}
}

func distinctDefinitions(corpus []model.Card, exclude map[string]struct{}) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, c := range corpus {
		if c.Definition == "" {
			continue
		}
		if _, ok := exclude[c.Definition]; ok {
			continue
		}
		if _, ok := seen[c.Definition]; ok {
			continue
		}
		seen[c.Definition] = struct{}{}
		out = append(out, c.Definition)
	}
	return out
}
