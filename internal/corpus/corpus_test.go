package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeDefaults(t *testing.T) {
	input := `{"cards": [
		{"word": "abate", "sense": 2, "pos": "v", "definition": "to lessen", "example": "The storm abated."},
		{"word": "  ", "pos": "n", "definition": "ignored"},
		{"word": "zeal", "pos": "n", "definition": ""}
	]}`
	cards, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Sense != 2 || cards[0].PartOfSpeech != "v" || cards[0].Example != "The storm abated." {
		t.Fatalf("unexpected first card: %+v", cards[0])
	}
	if cards[1].Word != "zeal" || cards[1].Sense != 1 {
		t.Fatalf("expected default sense 1, got %+v", cards[1])
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"cards": []}`))
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if _, err := Decode(strings.NewReader(`not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte(`{"cards":[{"word":"abate","sense":1,"pos":"v","definition":"to lessen"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cards, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 1 || cards[0].Definition != "to lessen" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
