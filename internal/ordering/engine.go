// Package ordering decides the sequence questions are practiced in: the
// set's stored order, or a priority order suggested by an LLM and repaired
// into a total permutation.
package ordering

import (
	"context"
	"encoding/json"

	"github.com/abhisek/quizdrill/internal/llm"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/sets"
)

// Config bounds the ordering request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard ordering request limits.
func DefaultConfig() Config {
	return Config{MaxTokens: 2000}
}

// Engine asks an LLM to prioritize a set's questions by practice history.
// The prioritization itself lives in the model; the engine validates and
// repairs the response so the final order is always a permutation of the set.
type Engine struct {
	provider llm.Provider
	config   Config
}

// New creates an Engine with the given provider and config.
func New(provider llm.Provider, cfg Config) *Engine {
	return &Engine{provider: provider, config: cfg}
}

// Default returns the set's stored question order, unchanged.
func Default(set *sets.Set) []quiz.Question {
	return append([]quiz.Question(nil), set.Questions...)
}

// snapshot is the per-question performance view sent to the model.
type snapshot struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	TimesAnswered int    `json:"timesAnswered"`
	TimesCorrect  int    `json:"timesCorrect"`
	LastAnswered  int64  `json:"lastAnswered,omitempty"`
	NextReview    int64  `json:"nextReview,omitempty"`
}

// orderOutput is the expected structured response.
type orderOutput struct {
	OrderedIDs []string `json:"orderedIds"`
	Reasoning  string   `json:"reasoning"`
}

// RequestPriorityOrder asks the model for a practice order over the set's
// question ids. The returned list always contains every id in the set
// exactly once: a partial or garbled response is repaired by appending the
// missing ids in set order, and a fully unusable response falls back to the
// default order.
func (e *Engine) RequestPriorityOrder(ctx context.Context, set *sets.Set) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "ordering")

	snapshots := make([]snapshot, len(set.Questions))
	for i, q := range set.Questions {
		snapshots[i] = snapshot{
			ID:            q.ID,
			Question:      q.Text,
			TimesAnswered: q.TimesAnswered,
			TimesCorrect:  q.TimesCorrect,
			LastAnswered:  q.LastAnswered,
			NextReview:    q.NextReview,
		}
	}

	req := llm.Request{
		System: orderingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildOrderingMessage(snapshots)},
		},
		Schema:      OrderSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	allIDs := setIDs(set)

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		// Truncated or schema-invalid responses still carry content worth
		// salvaging. Anything else falls back to the stored order.
		if content, ok := salvageableContent(err); ok {
			if ids := extractOrderedIDs(string(content)); len(ids) > 0 {
				return repair(ids, allIDs), nil
			}
		}
		return allIDs, err
	}

	var out orderOutput
	if jsonErr := json.Unmarshal(resp.Content, &out); jsonErr != nil || len(out.OrderedIDs) == 0 {
		if ids := extractOrderedIDs(string(resp.Content)); len(ids) > 0 {
			return repair(ids, allIDs), nil
		}
		return allIDs, nil
	}

	return repair(out.OrderedIDs, allIDs), nil
}

// Materialize projects orderedIds onto the set's current questions. Every
// question appears exactly once: questions missing from orderedIds keep
// their relative order and sort last, stale ids are ignored.
func Materialize(set *sets.Set, orderedIDs []string) []quiz.Question {
	rank := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}

	ranked := make([]quiz.Question, 0, len(set.Questions))
	var unranked []quiz.Question
	for _, q := range set.Questions {
		if _, ok := rank[q.ID]; ok {
			ranked = append(ranked, q)
		} else {
			unranked = append(unranked, q)
		}
	}

	// Insertion sort by rank keeps this simple and stable.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && rank[ranked[j].ID] < rank[ranked[j-1].ID]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	return append(ranked, unranked...)
}

// repair makes returned ids total over allIDs: drops unknown ids and
// duplicates, then appends every missing id in set order.
func repair(returned, allIDs []string) []string {
	known := make(map[string]bool, len(allIDs))
	for _, id := range allIDs {
		known[id] = true
	}

	seen := make(map[string]bool, len(returned))
	out := make([]string, 0, len(allIDs))
	for _, id := range returned {
		if known[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	for _, id := range allIDs {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

func setIDs(set *sets.Set) []string {
	ids := make([]string, len(set.Questions))
	for i, q := range set.Questions {
		ids[i] = q.ID
	}
	return ids
}
