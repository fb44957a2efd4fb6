package tracker

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/sets"
	"github.com/abhisek/quizdrill/internal/store"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestApply_Correct(t *testing.T) {
	var p quiz.Performance
	Apply(&p, true, now)

	if p.TimesAnswered != 1 || p.TimesCorrect != 1 || p.IncorrectCount != 0 {
		t.Errorf("counters = %+v", p)
	}
	if p.NeedsReview {
		t.Error("correct attempt should clear NeedsReview")
	}
	if p.LastAnswered != now.UnixMilli() {
		t.Errorf("LastAnswered = %d, want %d", p.LastAnswered, now.UnixMilli())
	}
	if want := now.Add(ReviewIntervalCorrect).UnixMilli(); p.NextReview != want {
		t.Errorf("NextReview = %d, want %d", p.NextReview, want)
	}
}

func TestApply_Incorrect(t *testing.T) {
	p := quiz.Performance{TimesAnswered: 3, TimesCorrect: 3}
	Apply(&p, false, now)

	if p.TimesAnswered != 4 || p.TimesCorrect != 3 || p.IncorrectCount != 1 {
		t.Errorf("counters = %+v", p)
	}
	if !p.NeedsReview {
		t.Error("incorrect attempt should set NeedsReview")
	}
	if want := now.Add(ReviewIntervalIncorrect).UnixMilli(); p.NextReview != want {
		t.Errorf("NextReview = %d, want %d", p.NextReview, want)
	}
}

func TestApply_CorrectAfterIncorrectClearsReview(t *testing.T) {
	var p quiz.Performance
	Apply(&p, false, now)
	Apply(&p, true, now.Add(time.Hour))

	if p.NeedsReview {
		t.Error("NeedsReview should reflect only the latest attempt")
	}
	if p.IncorrectCount != 1 {
		t.Errorf("IncorrectCount = %d, want 1", p.IncorrectCount)
	}
}

func newSeededStore(t *testing.T, questions ...quiz.Question) (*sets.Store, string) {
	t.Helper()
	ctx := context.Background()
	s := sets.NewStore(store.NewMemory())
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	id, err := s.CreateSet(ctx, "Tracked")
	if err != nil {
		t.Fatalf("CreateSet: %v", err)
	}
	if err := s.ReplaceQuestions(ctx, id, questions); err != nil {
		t.Fatalf("ReplaceQuestions: %v", err)
	}
	return s, id
}

func TestService_RecordAttempt(t *testing.T) {
	ctx := context.Background()
	s, id := newSeededStore(t, quiz.Question{ID: "q1", Text: "Q?", Options: []string{"a", "b"}, Answer: quiz.SingleAnswer(0)})

	svc := NewService(s)
	if err := svc.RecordAttempt(ctx, id, "q1", false, now); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}

	q := s.Get(id).Questions[0]
	if q.TimesAnswered != 1 || !q.NeedsReview {
		t.Errorf("history not applied: %+v", q.Performance)
	}
}

func TestService_UnknownQuestionWarnsAndContinues(t *testing.T) {
	ctx := context.Background()
	s, id := newSeededStore(t)

	var buf bytes.Buffer
	svc := NewService(s)
	svc.Warnings = &buf
	if err := svc.RecordAttempt(ctx, id, "missing", true, now); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	if !strings.Contains(buf.String(), "missing") {
		t.Errorf("warning = %q, want mention of the question id", buf.String())
	}
}

func TestIncorrectAndDue(t *testing.T) {
	set := &sets.Set{Questions: []quiz.Question{
		{ID: "a", Performance: quiz.Performance{NeedsReview: true, NextReview: now.Add(-time.Hour).UnixMilli()}},
		{ID: "b", Performance: quiz.Performance{NextReview: now.Add(time.Hour).UnixMilli()}},
		{ID: "c"},
	}}

	inc := Incorrect(set)
	if len(inc) != 1 || inc[0].ID != "a" {
		t.Errorf("Incorrect = %+v, want just a", inc)
	}

	due := Due(set, now)
	if len(due) != 1 || due[0].ID != "a" {
		t.Errorf("Due = %+v, want just a", due)
	}
}

func TestSummarize(t *testing.T) {
	set := &sets.Set{Questions: []quiz.Question{
		{ID: "a", Performance: quiz.Performance{TimesAnswered: 4, TimesCorrect: 3, NeedsReview: true}},
		{ID: "b", Performance: quiz.Performance{TimesAnswered: 1, TimesCorrect: 1}},
		{ID: "c"},
	}}

	st := Summarize(set)
	want := Stats{Questions: 3, Practiced: 2, Attempts: 5, Correct: 4, NeedsReview: 1}
	if st != want {
		t.Errorf("Summarize = %+v, want %+v", st, want)
	}
	if st.Accuracy() != 0.8 {
		t.Errorf("Accuracy = %v, want 0.8", st.Accuracy())
	}
	if (Stats{}).Accuracy() != 0 {
		t.Error("zero-attempt accuracy should be 0")
	}
}
