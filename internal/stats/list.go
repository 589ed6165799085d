package stats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

// ListHeaders names the columns produced by ListRow.
var ListHeaders = []string{"", "Word", "POS", "Reps", "Due", "Definition"}

// listDefinitionWidth caps the definition column of list tables.
const listDefinitionWidth = 72

// ListRow formats one card for list output.
func ListRow(c model.Card, rec model.Record, favorite bool, now time.Time) []string {
	fav := ""
	if favorite {
		fav = "★"
	}
	return []string{fav, CardLabel(c), c.PartOfSpeech, strconv.Itoa(rec.Reps), FormatDue(rec, now), DisplayDefinition(c.Definition)}
}

// ListRows formats cards for list output.
func ListRows(cards []model.Card, records model.Records, favorites model.Favorites, now time.Time) [][]string {
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, ListRow(c, records.Lookup(c.Key()), favorites.Contains(c.Key()), now))
	}
	return rows
}

// ListTable lays out cards as a list table.
func ListTable(cards []model.Card, records model.Records, favorites model.Favorites, now time.Time) Table {
	return Table{
		Headers:    ListHeaders,
		Rows:       ListRows(cards, records, favorites, now),
		RightAlign: map[int]bool{3: true},
		MaxWidth:   map[int]int{5: listDefinitionWidth},
	}
}

// CardLabel is the word, followed by the sense number for secondary senses.
func CardLabel(c model.Card) string {
	if c.Sense > 1 {
		return fmt.Sprintf("%s (%d)", c.Word, c.Sense)
	}
	return c.Word
}

// FormatDue renders "now" for due records, otherwise the local due time.
func FormatDue(rec model.Record, now time.Time) string {
	if rec.IsDue(now) {
		return "now"
	}
	return rec.DueTime().In(now.Location()).Format("2006-01-02 15:04")
}

// DisplayDefinition substitutes a dash for an empty definition.
func DisplayDefinition(def string) string {
	if def == "" {
		return "—"
	}
	return def
}
