package sets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/store"
)

func newTestStore(t *testing.T) (*Store, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	s := NewStore(mem)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, mem
}

func q(id, text string) quiz.Question {
	return quiz.Question{ID: id, Text: text, Options: []string{"a", "b"}, Answer: quiz.SingleAnswer(0)}
}

func TestCreateSet_BecomesActive(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateSet(ctx, "  OS Final  ")
	if err != nil {
		t.Fatalf("CreateSet: %v", err)
	}
	if s.ActiveID() != id {
		t.Errorf("ActiveID = %q, want %q", s.ActiveID(), id)
	}
	set := s.Get(id)
	if set == nil || set.Name != "OS Final" {
		t.Fatalf("Get(%q) = %+v, want trimmed name", id, set)
	}
	if !mem.Has("questionSets") || !mem.Has("currentSetId") {
		t.Error("expected creation to persist sets and active id")
	}
}

func TestCreateSet_EmptyName(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.CreateSet(context.Background(), "   ")
	var verr *quiz.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateSet = %v, want *ValidationError", err)
	}
	if len(s.Sets()) != 0 {
		t.Error("failed creation must not add a set")
	}
}

func TestRenameSet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateSet(ctx, "Old")

	if err := s.RenameSet(ctx, id, "New"); err != nil {
		t.Fatalf("RenameSet: %v", err)
	}
	if got := s.Get(id).Name; got != "New" {
		t.Errorf("Name = %q, want New", got)
	}

	if err := s.RenameSet(ctx, id, " "); err == nil {
		t.Error("expected error for empty name")
	}
	if err := s.RenameSet(ctx, "missing", "X"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("RenameSet(missing) = %v, want ErrSetNotFound", err)
	}
}

func TestDeleteSet_LastIsRejected(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateSet(ctx, "Only")

	err := s.DeleteSet(ctx, id)
	var cerr *quiz.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("DeleteSet = %v, want *ConflictError", err)
	}
	if len(s.Sets()) != 1 {
		t.Errorf("set count = %d, want 1 (unchanged)", len(s.Sets()))
	}
}

func TestDeleteSet_PromotesFirstRemaining(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	first, _ := s.CreateSet(ctx, "First")
	second, _ := s.CreateSet(ctx, "Second")
	third, _ := s.CreateSet(ctx, "Third")

	if err := s.SelectSet(ctx, second); err != nil {
		t.Fatalf("SelectSet: %v", err)
	}
	if err := s.DeleteSet(ctx, second); err != nil {
		t.Fatalf("DeleteSet: %v", err)
	}
	if s.ActiveID() != first {
		t.Errorf("ActiveID = %q, want first remaining %q", s.ActiveID(), first)
	}
	if s.Get(third) == nil {
		t.Error("unrelated set should survive")
	}
}

func TestDeleteSet_InactiveKeepsActive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	first, _ := s.CreateSet(ctx, "First")
	second, _ := s.CreateSet(ctx, "Second")

	if err := s.SelectSet(ctx, first); err != nil {
		t.Fatalf("SelectSet: %v", err)
	}
	if err := s.DeleteSet(ctx, second); err != nil {
		t.Fatalf("DeleteSet: %v", err)
	}
	if s.ActiveID() != first {
		t.Errorf("ActiveID = %q, want %q", s.ActiveID(), first)
	}
}

func TestSelectSet_DoesNotFireChangeHook(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a, _ := s.CreateSet(ctx, "A")
	b, _ := s.CreateSet(ctx, "B")
	_ = s.ReplaceQuestions(ctx, a, []quiz.Question{q("q1", "one")})

	fired := 0
	s.OnQuestionsChanged(func(string) { fired++ })

	if err := s.SelectSet(ctx, a); err != nil {
		t.Fatalf("SelectSet: %v", err)
	}
	if err := s.SelectSet(ctx, b); err != nil {
		t.Fatalf("SelectSet: %v", err)
	}
	if fired != 0 {
		t.Errorf("change hook fired %d times on programmatic load, want 0", fired)
	}

	_ = s.ReplaceQuestions(ctx, b, []quiz.Question{q("q2", "two")})
	if fired != 1 {
		t.Errorf("change hook fired %d times after user edit, want 1", fired)
	}
}

func TestQuestionMutations(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateSet(ctx, "Set")

	_ = s.AppendQuestions(ctx, id, []quiz.Question{q("q1", "one"), q("q2", "two")})
	if got := len(s.Get(id).Questions); got != 2 {
		t.Fatalf("len(Questions) = %d, want 2", got)
	}

	updated, err := s.UpdateQuestion(ctx, id, "q1", func(qq *quiz.Question) {
		qq.TimesAnswered = 3
	})
	if err != nil || !updated {
		t.Fatalf("UpdateQuestion = %v, %v", updated, err)
	}
	if got := s.Get(id).Questions[0].TimesAnswered; got != 3 {
		t.Errorf("TimesAnswered = %d, want 3", got)
	}

	updated, err = s.UpdateQuestion(ctx, id, "ghost", func(*quiz.Question) {})
	if err != nil || updated {
		t.Errorf("UpdateQuestion(ghost) = %v, %v, want false, nil", updated, err)
	}

	if err := s.DeleteQuestion(ctx, id, "q1"); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if got := len(s.Get(id).Questions); got != 1 {
		t.Errorf("len(Questions) = %d, want 1", got)
	}

	if err := s.ClearQuestions(ctx, id); err != nil {
		t.Fatalf("ClearQuestions: %v", err)
	}
	if got := len(s.Get(id).Questions); got != 0 {
		t.Errorf("len(Questions) = %d, want 0", got)
	}
}

func TestResults_RoundTripAndClear(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateSet(ctx, "Set")

	if err := s.SaveResults(ctx, id, map[string]bool{"q1": true, "ai-2": false}); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}
	got, err := s.LoadResults(ctx, id)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if len(got) != 2 || !got["q1"] || got["ai-2"] {
		t.Errorf("LoadResults = %v", got)
	}

	if err := s.ClearResults(ctx, id); err != nil {
		t.Fatalf("ClearResults: %v", err)
	}
	if mem.Has("questionResults-" + id) {
		t.Error("results blob should be deleted")
	}
	got, err = s.LoadResults(ctx, id)
	if err != nil || len(got) != 0 {
		t.Errorf("LoadResults after clear = %v, %v, want empty", got, err)
	}
}

func TestPruneResults_DropsOrphanedEntries(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateSet(ctx, "Set")
	_ = s.AppendQuestions(ctx, id, []quiz.Question{q("q1", "one"), q("q2", "two")})

	if err := s.SaveResults(ctx, id, map[string]bool{"q1": true, "q2": false, "ghost": true}); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}

	if err := s.PruneResults(ctx, id); err != nil {
		t.Fatalf("PruneResults: %v", err)
	}
	got, err := s.LoadResults(ctx, id)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if len(got) != 2 || !got["q1"] || got["q2"] {
		t.Errorf("LoadResults = %v, want q1/q2 only", got)
	}

	// Removing a question orphans its entry too.
	if err := s.DeleteQuestion(ctx, id, "q2"); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if err := s.PruneResults(ctx, id); err != nil {
		t.Fatalf("PruneResults: %v", err)
	}
	got, _ = s.LoadResults(ctx, id)
	if len(got) != 1 || !got["q1"] {
		t.Errorf("LoadResults after delete = %v, want q1 only", got)
	}

	if err := s.PruneResults(ctx, "missing"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("PruneResults(missing) = %v, want ErrSetNotFound", err)
	}
}

func TestLoad_RestoresActiveSet(t *testing.T) {
	mem := store.NewMemory()
	s := NewStore(mem)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, _ := s.CreateSet(ctx, "A")
	_, _ = s.CreateSet(ctx, "B")
	if err := s.SelectSet(ctx, a); err != nil {
		t.Fatalf("SelectSet: %v", err)
	}

	reloaded := NewStore(mem)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ActiveID() != a {
		t.Errorf("ActiveID after reload = %q, want %q", reloaded.ActiveID(), a)
	}
	if len(reloaded.Sets()) != 2 {
		t.Errorf("set count after reload = %d, want 2", len(reloaded.Sets()))
	}
}
