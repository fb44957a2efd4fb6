package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/abhisek/quizdrill/internal/llm"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/sets"
)

func testSet(ids ...string) *sets.Set {
	set := &sets.Set{ID: "set-1", Name: "Test"}
	for _, id := range ids {
		set.Questions = append(set.Questions, quiz.Question{
			ID:      id,
			Text:    "question " + id,
			Options: []string{"a", "b"},
			Answer:  quiz.SingleAnswer(0),
		})
	}
	return set
}

func questionIDs(qs []quiz.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestDefault_PreservesStoredOrder(t *testing.T) {
	set := testSet("q1", "q2", "q3")
	got := questionIDs(Default(set))
	if !slices.Equal(got, []string{"q1", "q2", "q3"}) {
		t.Errorf("Default = %v", got)
	}
}

func TestRequestPriorityOrder_WellFormedResponse(t *testing.T) {
	set := testSet("q1", "q2", "q3")
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"orderedIds":["q3","q1","q2"],"reasoning":"q3 is overdue"}`),
	})

	e := New(mock, DefaultConfig())
	got, err := e.RequestPriorityOrder(context.Background(), set)
	if err != nil {
		t.Fatalf("RequestPriorityOrder: %v", err)
	}
	if !slices.Equal(got, []string{"q3", "q1", "q2"}) {
		t.Errorf("order = %v", got)
	}
	if mock.Calls[0].Schema != OrderSchema {
		t.Error("request should carry the ordering schema")
	}
}

func TestRequestPriorityOrder_PartialResponseRepaired(t *testing.T) {
	set := testSet("q1", "q2", "q3", "q4", "q5")
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"orderedIds":["q4","q2"],"reasoning":"most missed"}`),
	})

	e := New(mock, DefaultConfig())
	got, err := e.RequestPriorityOrder(context.Background(), set)
	if err != nil {
		t.Fatalf("RequestPriorityOrder: %v", err)
	}
	// Returned ids first, missing ids appended in set order.
	if !slices.Equal(got, []string{"q4", "q2", "q1", "q3", "q5"}) {
		t.Errorf("order = %v", got)
	}
}

func TestRequestPriorityOrder_SalvagesTruncatedOutput(t *testing.T) {
	set := testSet("q1", "q2", "q3", "q4", "q5")
	truncated := "```json\n{\"orderedIds\": [\"q5\", \"q2\", \"q"
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrMaxTokensExceeded{Content: json.RawMessage(truncated)},
	})

	e := New(mock, DefaultConfig())
	got, err := e.RequestPriorityOrder(context.Background(), set)
	if err != nil {
		t.Fatalf("RequestPriorityOrder: %v", err)
	}
	if !slices.Equal(got, []string{"q5", "q2", "q1", "q3", "q4"}) {
		t.Errorf("order = %v", got)
	}
}

func TestRequestPriorityOrder_DuplicatesAndUnknownIDsDropped(t *testing.T) {
	set := testSet("q1", "q2", "q3")
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"orderedIds":["q2","q2","ghost","q1"],"reasoning":"x"}`),
	})

	e := New(mock, DefaultConfig())
	got, err := e.RequestPriorityOrder(context.Background(), set)
	if err != nil {
		t.Fatalf("RequestPriorityOrder: %v", err)
	}
	if !slices.Equal(got, []string{"q2", "q1", "q3"}) {
		t.Errorf("order = %v", got)
	}
}

func TestRequestPriorityOrder_UnusableFailureFallsBack(t *testing.T) {
	set := testSet("q1", "q2")
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})

	e := New(mock, DefaultConfig())
	got, err := e.RequestPriorityOrder(context.Background(), set)
	if err == nil {
		t.Fatal("expected the provider error to surface")
	}
	if !slices.Equal(got, []string{"q1", "q2"}) {
		t.Errorf("fallback order = %v, want stored order", got)
	}
}

func TestExtractOrderedIDs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"clean json",
			`{"orderedIds":["a","b"],"reasoning":"r"}`,
			[]string{"a", "b"},
		},
		{
			"fenced with prose",
			"Sure!\n```json\n{\"orderedIds\": [\"a\", \"b\"], \"reasoning\": \"because\"}\n```",
			[]string{"a", "b"},
		},
		{
			"truncated mid-array",
			`{"orderedIds": ["a", "b", "c`,
			[]string{"a", "b"},
		},
		{
			"reasoning strings excluded",
			`{"reasoning": "see \"notes\"", "orderedIds": ["a", "b"]}`,
			[]string{"a", "b"},
		},
		{
			"nothing usable",
			"I can't order these.",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractOrderedIDs(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("extractOrderedIDs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaterialize(t *testing.T) {
	set := testSet("q1", "q2", "q3", "q4")

	got := questionIDs(Materialize(set, []string{"q3", "q1"}))
	if !slices.Equal(got, []string{"q3", "q1", "q2", "q4"}) {
		t.Errorf("Materialize = %v", got)
	}
}

func TestMaterialize_StaleIDsIgnored(t *testing.T) {
	set := testSet("q1", "q2")

	got := questionIDs(Materialize(set, []string{"deleted", "q2", "q1"}))
	if !slices.Equal(got, []string{"q2", "q1"}) {
		t.Errorf("Materialize = %v", got)
	}
	if len(got) != len(set.Questions) {
		t.Errorf("length = %d, want %d", len(got), len(set.Questions))
	}
}

func TestMaterialize_EmptyOrderKeepsSetOrder(t *testing.T) {
	set := testSet("q1", "q2", "q3")

	got := questionIDs(Materialize(set, nil))
	if !slices.Equal(got, []string{"q1", "q2", "q3"}) {
		t.Errorf("Materialize = %v", got)
	}
}
