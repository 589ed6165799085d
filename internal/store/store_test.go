package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "tuivocab.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestRecordReadYourWrite(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	key := model.CardKey{Word: "abate", Sense: 1, PartOfSpeech: "v", Definition: "to lessen"}

	if _, ok, err := st.GetRecord(ctx, key); err != nil || ok {
		t.Fatalf("expected no record, got ok=%v err=%v", ok, err)
	}
	rec := model.Record{Due: 86_401_000, Interval: 1, Ease: 2.48, Reps: 1}
	if err := st.PutRecord(ctx, key, rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := st.GetRecord(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != rec {
		t.Fatalf("expected %+v, got %+v", rec, got)
	}

	rec.Reps = 2
	rec.Interval = 3
	if err := st.PutRecord(ctx, key, rec); err != nil {
		t.Fatalf("put again: %v", err)
	}
	all, err := st.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[key] != rec {
		t.Fatalf("unexpected records: %+v", all)
	}
}

func TestRecordKeyDistinguishesFields(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	// fields that would collide under naive "::" concatenation
	a := model.CardKey{Word: "a::1", Sense: 1, PartOfSpeech: "n", Definition: "x"}
	b := model.CardKey{Word: "a", Sense: 1, PartOfSpeech: "1::n", Definition: "x"}
	if err := st.PutRecord(ctx, a, model.Record{Ease: 2.0, Reps: 5}); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if _, ok, err := st.GetRecord(ctx, b); err != nil || ok {
		t.Fatalf("expected b to be absent, ok=%v err=%v", ok, err)
	}
}

func TestFavorites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	key := model.CardKey{Word: "zeal", Sense: 1, PartOfSpeech: "n", Definition: "great energy"}

	if err := st.AddFavorite(ctx, key); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.AddFavorite(ctx, key); err != nil {
		t.Fatalf("add twice: %v", err)
	}
	ok, err := st.HasFavorite(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected favorite, ok=%v err=%v", ok, err)
	}
	favs, err := st.ListFavorites(ctx)
	if err != nil || len(favs) != 1 || !favs.Contains(key) {
		t.Fatalf("unexpected favorites %+v err=%v", favs, err)
	}
	if err := st.RemoveFavorite(ctx, key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, err := st.HasFavorite(ctx, key); err != nil || ok {
		t.Fatalf("expected favorite removed, ok=%v err=%v", ok, err)
	}
}

func TestDailyProgress(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, ok, err := st.GetDailyProgress(ctx); err != nil || ok {
		t.Fatalf("expected no progress, ok=%v err=%v", ok, err)
	}
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	p := model.DailyProgress{Date: day, Studied: 12, Goal: 40}
	if err := st.SaveDailyProgress(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := st.GetDailyProgress(ctx)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !got.Date.Equal(day) || got.Studied != 12 || got.Goal != 40 {
		t.Fatalf("unexpected progress: %+v", got)
	}
}

func TestReset(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	key := model.CardKey{Word: "abate", Sense: 1, PartOfSpeech: "v"}
	if err := st.PutRecord(ctx, key, model.DefaultRecord()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.AddFavorite(ctx, key); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	recs, err := st.ListRecords(ctx)
	if err != nil || len(recs) != 0 {
		t.Fatalf("expected no records, got %d err=%v", len(recs), err)
	}
	favs, err := st.ListFavorites(ctx)
	if err != nil || len(favs) != 0 {
		t.Fatalf("expected no favorites, got %d err=%v", len(favs), err)
	}
}
