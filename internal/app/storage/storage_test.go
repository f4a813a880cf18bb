package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/slatetrack/slatetrack/internal/app/storage"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSetGetRoundTrip(t *testing.T) {
	db := openTestDB(t)

	type rec struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	if err := db.Set("things", []rec{{ID: "a", Name: "Alpha"}}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got []rec
	if !db.Get("things", &got) {
		t.Fatal("expected Get to find the stored value")
	}
	if len(got) != 1 || got[0].ID != "a" || got[0].Name != "Alpha" {
		t.Errorf("unexpected round-trip value: %+v", got)
	}
}

func TestGetMissingKeyLeavesFallback(t *testing.T) {
	db := openTestDB(t)

	got := []string{"fallback"}
	if db.Get("absent", &got) {
		t.Error("expected Get to report false for a missing key")
	}
	if len(got) != 1 || got[0] != "fallback" {
		t.Errorf("expected out to be untouched, got %v", got)
	}
}

func TestGetMalformedValueTreatedAsAbsent(t *testing.T) {
	db := openTestDB(t)

	if err := db.SetRaw("broken", `{"not": "an array"`); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}

	var got []string
	if db.Get("broken", &got) {
		t.Error("expected malformed JSON to be treated as absent")
	}
}

func TestRemove(t *testing.T) {
	db := openTestDB(t)

	if err := db.Set("theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Remove("theme"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	var got string
	if db.Get("theme", &got) {
		t.Error("expected removed key to be absent")
	}

	// Removing a key that never existed is not an error.
	if err := db.Remove("never-there"); err != nil {
		t.Errorf("Remove of absent key failed: %v", err)
	}
}

func TestSetOverwrites(t *testing.T) {
	db := openTestDB(t)

	if err := db.Set("theme", "light"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Set("theme", "dark"); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	var got string
	if !db.Get("theme", &got) {
		t.Fatal("expected value after overwrite")
	}
	if got != "dark" {
		t.Errorf("expected %q, got %q", "dark", got)
	}
}
