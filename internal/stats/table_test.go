package stats

import (
	"bytes"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	table := Table{
		Headers: []string{"Word", "Reps", "Due"},
		Rows: [][]string{
			{"laconic", "3", "2026-05-02"},
			{"zeal", "12", "now"},
		},
		RightAlign: map[int]bool{1: true, 2: true},
	}

	lines := table.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word    Reps        Due" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "laconic    3 2026-05-02" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "zeal      12        now" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableCountsWideRunes(t *testing.T) {
	table := Table{Headers: []string{"W", "N"}, Rows: [][]string{{"日本", "1"}, {"naïve", "2"}}}
	lines := table.Lines()
	if lines[1] != "日本  1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "naïve 2" {
		t.Fatalf("unexpected accented row: %q", lines[2])
	}
}

func TestTableTruncatesCappedColumn(t *testing.T) {
	table := Table{
		Headers:  []string{"Word", "Definition"},
		Rows:     [][]string{{"abate", "to lessen in intensity"}},
		MaxWidth: map[int]int{1: 10},
	}
	lines := table.Lines()
	if lines[1] != "abate to lessen…" {
		t.Fatalf("unexpected truncated row: %q", lines[1])
	}
}

func TestTableShortRowsAndEmpty(t *testing.T) {
	if lines := (Table{}).Lines(); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
	var out bytes.Buffer
	table := Table{Headers: []string{"A", "B"}, Rows: [][]string{{"x"}}}
	if err := table.Write(&out); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.String() != "A B\nx  \n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
