package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReplay(seed int64, score int) Replay {
	return Replay{
		GameID:        "tetris",
		Seed:          seed,
		TickRate:      60,
		GravityBaseMS: 800,
		GravityStepMS: 50,
		GravityMinMS:  100,
		Preview:       3,
		Ghost:         true,
		Preset:        "normal",
		Ticks:         1234,
		Score:         score,
		Level:         2,
		Lines:         11,
		Events: []Event{
			{Tick: 0, Action: "left"},
			{Tick: 0, Action: "rotate"},
			{Tick: 40, Action: "hard_drop"},
		},
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "replays.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "replays.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveReplay(sampleReplay(1, 100))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.FindReplay(id); err != nil {
		t.Errorf("FindReplay() after reopen failed: %v", err)
	}
}

func TestSaveAndFindReplay(t *testing.T) {
	store := openTestStore(t)

	want := sampleReplay(42, 1200)
	id, err := store.SaveReplay(want)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("id = %q, expected a uuid", id)
	}

	got, err := store.FindReplay(id)
	if err != nil {
		t.Fatalf("FindReplay() failed: %v", err)
	}

	if got.ID != id || got.Seed != 42 || got.Score != 1200 || got.Lines != 11 || got.Ticks != 1234 {
		t.Errorf("FindReplay() = %+v", got)
	}
	if got.GravityBaseMS != 800 || got.GravityStepMS != 50 || got.GravityMinMS != 100 {
		t.Errorf("gravity = %d/%d/%d, expected 800/50/100", got.GravityBaseMS, got.GravityStepMS, got.GravityMinMS)
	}
	if !got.Ghost || got.Preset != "normal" || got.Preview != 3 {
		t.Errorf("display settings = ghost %v preset %q preview %d", got.Ghost, got.Preset, got.Preview)
	}
	if got.EventCount != 3 || len(got.Events) != 3 {
		t.Fatalf("events = %d/%d, expected 3", got.EventCount, len(got.Events))
	}
	for i, e := range want.Events {
		if got.Events[i] != e {
			t.Errorf("event %d = %+v, expected %+v", i, got.Events[i], e)
		}
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestFindReplayByPrefix(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(sampleReplay(7, 40))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.FindReplay(id[:8])
	if err != nil {
		t.Fatalf("FindReplay(prefix) failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("FindReplay(prefix) id = %s, expected %s", got.ID, id)
	}

	if _, err := store.FindReplay("zzzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindReplay(unknown) err = %v, expected ErrNotFound", err)
	}
	if _, err := store.FindReplay("  "); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindReplay(blank) err = %v, expected ErrNotFound", err)
	}
}

func TestFindReplayAmbiguous(t *testing.T) {
	store := openTestStore(t)

	// Sixteen random ids share at least one leading hex digit.
	seen := make(map[byte]bool)
	var prefix string
	for i := range 17 {
		id, err := store.SaveReplay(sampleReplay(int64(i), i))
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		if seen[id[0]] && prefix == "" {
			prefix = id[:1]
		}
		seen[id[0]] = true
	}

	if _, err := store.FindReplay(prefix); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("FindReplay(%q) err = %v, expected ErrAmbiguous", prefix, err)
	}
}

func TestRecentReplaysNewestFirst(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := range 5 {
		id, err := store.SaveReplay(sampleReplay(int64(i), i*100))
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	list, err := store.RecentReplays(3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("RecentReplays(3) returned %d rows", len(list))
	}
	for i, r := range list {
		if r.ID != ids[len(ids)-1-i] {
			t.Errorf("row %d id = %s, expected %s", i, r.ID, ids[len(ids)-1-i])
		}
		if r.Events != nil {
			t.Errorf("row %d carries events in a listing", i)
		}
		if r.EventCount != 3 {
			t.Errorf("row %d EventCount = %d, expected 3", i, r.EventCount)
		}
	}

	all, err := store.RecentReplays(0)
	if err != nil {
		t.Fatalf("RecentReplays(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("RecentReplays(0) returned %d rows, expected 5", len(all))
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(sampleReplay(9, 0))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.FindReplay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindReplay() after delete err = %v", err)
	}
	if err := store.DeleteReplay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteReplay() err = %v, expected ErrNotFound", err)
	}

	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_events").Scan(&n); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if n != 0 {
		t.Errorf("%d orphaned events left", n)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/.tetris/replays.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".tetris", "replays.db"); got != want {
		t.Errorf("ExpandPath() = %s, expected %s", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %s", got)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	if got := parseTime("2026-03-01 12:30:00"); !got.Equal(want) {
		t.Errorf("parseTime(string) = %v, expected %v", got, want)
	}
	if got := parseTime(want); !got.Equal(want) {
		t.Errorf("parseTime(time) = %v", got)
	}
	if got := parseTime(nil); !got.IsZero() {
		t.Errorf("parseTime(nil) = %v, expected zero", got)
	}
}
