package quiz

import "regexp"

var nonWord = regexp.MustCompile(`\W+`)

// Similarity returns the Jaccard similarity of the word-token sets of guess
// and truth, in [0, 1]. It is 0 when either side has no tokens. Tokens are
// compared as-is; callers normalize case.
func Similarity(guess, truth string) float64 {
	a := tokenSet(guess)
	b := tokenSet(truth)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range nonWord.Split(s, -1) {
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}
