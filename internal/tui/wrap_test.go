package tui

import "testing"

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	got := wrapText("to make less intense or widespread", 12)
	want := "to make less\nintense or\nwidespread"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextLongWord(t *testing.T) {
	got := wrapText("a supercalifragilistic word", 8)
	want := "a\nsupercal\nifragili\nstic\nword"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	// each rune is two cells wide
	got := wrapText("日本語 テキスト", 6)
	want := "日本語\nテキス\nト"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	in := "unchanged text"
	if got := wrapText(in, 0); got != in {
		t.Fatalf("expected input unchanged, got %q", got)
	}
	if got := wrapText("", 10); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
