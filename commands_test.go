package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"memory-match/config"
	"memory-match/session"
	"memory-match/storage"
)

func TestListThemes(t *testing.T) {
	var out strings.Builder
	if err := listThemes(config.Defaults(), &out); err != nil {
		t.Fatalf("listThemes: %v", err)
	}
	for _, want := range []string{"animals", "chemistry", "math", "easy", "6x6"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestScoreSinkSaves(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "scores.json"))
	scoreSink(store, nil)(session.Result{
		PlayerName: "Ada",
		UserID:     "u1",
		Score:      450,
		Moves:      9,
		Duration:   42 * time.Second,
		Theme:      "space",
		Difficulty: "medium",
	})

	top, err := store.TopScores(context.Background(), storage.ScoreFilter{})
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("expected 1 score, got %d", len(top))
	}
	if top[0].DurationMS != 42000 || top[0].UserID != "u1" || top[0].Theme != "space" {
		t.Errorf("unexpected record %+v", top[0])
	}
}
