package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "kv.db")
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := s.Set(ctx, "questionSets", doc{Name: "OS Final", Count: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got doc
	ok, err := GetJSON(ctx, s, "questionSets", &got)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if got.Name != "OS Final" || got.Count != 3 {
		t.Errorf("got %+v, want {OS Final 3}", got)
	}
}

func TestStore_MissingKey(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "kv.db")
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing key")
	}
}

func TestStore_Overwrite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "kv.db")
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Set(ctx, "currentSetId", "set-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "currentSetId", "set-2"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var id string
	if _, err := GetJSON(ctx, s, "currentSetId", &id); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if id != "set-2" {
		t.Errorf("id = %q, want set-2", id)
	}
}

func TestStore_DeleteMissingKeyIsNoError(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "kv.db")
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Delete(context.Background(), "legacy"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}
