// Package corpus loads the fixed vocabulary card set.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// ErrEmptyCorpus is returned when a card file holds no usable cards.
var ErrEmptyCorpus = errors.New("card list is empty")

type cardFile struct {
	Cards []model.Card `json:"cards"`
}

// Load reads cards from a JSON file of the form {"cards": [...]}.
func Load(path string) ([]model.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only card file.
			_ = cerr
		}
	}()
	return Decode(file)
}

// Decode parses a card file. Cards without a word are skipped and a
// missing sense defaults to 1. Order is preserved.
func Decode(r io.Reader) ([]model.Card, error) {
	var data cardFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	cards := make([]model.Card, 0, len(data.Cards))
	for _, c := range data.Cards {
		c.Word = strings.TrimSpace(c.Word)
		if c.Word == "" {
			continue
		}
		if c.Sense <= 0 {
			c.Sense = 1
		}
		cards = append(cards, c)
	}
	if len(cards) == 0 {
		return nil, ErrEmptyCorpus
	}
	return cards, nil
}
