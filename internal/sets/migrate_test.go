package sets

import (
	"context"
	"testing"

	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/store"
)

func TestMigrateLegacy_WrapsFlatList(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	legacy := []quiz.Question{q("q1", "one"), q("q2", "two")}
	if err := mem.Set(ctx, "questions", legacy); err != nil {
		t.Fatalf("seed legacy: %v", err)
	}

	s := NewStore(mem)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	all := s.Sets()
	if len(all) != 1 {
		t.Fatalf("set count = %d, want 1", len(all))
	}
	if all[0].Name != "Default Set" {
		t.Errorf("Name = %q, want Default Set", all[0].Name)
	}
	if len(all[0].Questions) != 2 {
		t.Errorf("question count = %d, want 2", len(all[0].Questions))
	}
	if s.ActiveID() != all[0].ID {
		t.Errorf("ActiveID = %q, want migrated set", s.ActiveID())
	}
	if mem.Has("questions") || mem.Has("manualQuestions") {
		t.Error("legacy keys should be deleted after migration")
	}
	if !mem.Has("questionSets") {
		t.Error("migrated collection should be persisted")
	}
}

func TestMigrateLegacy_ManualListWins(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	_ = mem.Set(ctx, "questions", []quiz.Question{q("old", "flat")})
	_ = mem.Set(ctx, "manualQuestions", []quiz.Question{q("m1", "manual one"), q("m2", "manual two")})

	s := NewStore(mem)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	set := s.Active()
	if set == nil {
		t.Fatal("expected migrated active set")
	}
	if len(set.Questions) != 2 || set.Questions[0].ID != "m1" {
		t.Errorf("migrated questions = %+v, want the manual list", set.Questions)
	}
}

func TestMigrateLegacy_RunsOnce(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	_ = mem.Set(ctx, "questions", []quiz.Question{q("q1", "one")})

	s := NewStore(mem)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}

	again := NewStore(mem)
	if err := again.Load(ctx); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(again.Sets()) != 1 {
		t.Errorf("set count after reload = %d, want 1 (no duplicate migration)", len(again.Sets()))
	}
}
