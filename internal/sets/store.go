package sets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/store"
)

// Persistence keys. The legacy keys held flat question lists before sets
// existed and are consumed once during migration.
const (
	keySets          = "questionSets"
	keyActive        = "currentSetId"
	keyResultsPrefix = "questionResults-"

	legacyKeyQuestions = "questions"
	legacyKeyManual    = "manualQuestions"
)

// ErrSetNotFound is returned when an operation names an unknown set id.
var ErrSetNotFound = errors.New("question set not found")

// Set is a named, ordered collection of questions.
type Set struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Questions []quiz.Question `json:"questions"`
	CreatedAt int64           `json:"createdAt"` // unix milliseconds, immutable
}

// Store owns all question sets and the active-set reference. Every mutation
// flushes the full collection to the key-value store. Sets are kept in
// insertion order, which makes promotion after a delete deterministic.
type Store struct {
	kv       store.KV
	sets     []*Set
	activeID string

	// loading guards against the feedback loop between the working
	// question list and the stored set: while the store itself loads or
	// switches sets, question-change notifications are suppressed so a
	// programmatic load is never mistaken for a user edit.
	loading bool

	onQuestionsChanged func(setID string)

	now      func() time.Time
	newSetID func() string
}

// NewStore creates a Store over the given key-value backend. Call Load
// before use.
func NewStore(kv store.KV) *Store {
	return &Store{
		kv:       kv,
		now:      time.Now,
		newSetID: func() string { return "set-" + uuid.NewString() },
	}
}

// OnQuestionsChanged registers a hook invoked after user-driven question
// mutations. Programmatic loads (Load, SelectSet, delete-promotion) do not
// fire it.
func (s *Store) OnQuestionsChanged(fn func(setID string)) {
	s.onQuestionsChanged = fn
}

func (s *Store) notify(setID string) {
	if s.loading || s.onQuestionsChanged == nil {
		return
	}
	s.onQuestionsChanged(setID)
}

// Load reads the persisted collection and active-set id, running the
// one-time legacy migration if flat question lists are found.
func (s *Store) Load(ctx context.Context) error {
	s.loading = true
	defer func() { s.loading = false }()

	if _, err := store.GetJSON(ctx, s.kv, keySets, &s.sets); err != nil {
		return fmt.Errorf("load question sets: %w", err)
	}

	migrated, err := s.migrateLegacy(ctx)
	if err != nil {
		return err
	}

	var savedID string
	if _, err := store.GetJSON(ctx, s.kv, keyActive, &savedID); err != nil {
		return fmt.Errorf("load active set id: %w", err)
	}
	switch {
	case migrated != "":
		s.activeID = migrated
	case savedID != "" && s.find(savedID) != nil:
		s.activeID = savedID
	case len(s.sets) > 0:
		s.activeID = s.sets[0].ID
	}

	if s.activeID != savedID && s.activeID != "" {
		if err := s.kv.Set(ctx, keyActive, s.activeID); err != nil {
			return err
		}
	}
	return nil
}

// Sets returns the sets in insertion order.
func (s *Store) Sets() []*Set {
	return append([]*Set(nil), s.sets...)
}

// Get returns the set with the given id, or nil.
func (s *Store) Get(setID string) *Set {
	return s.find(setID)
}

// ActiveID returns the active set id, or "" when no set exists.
func (s *Store) ActiveID() string {
	return s.activeID
}

// Active returns the active set, or nil when no set exists.
func (s *Store) Active() *Set {
	return s.find(s.activeID)
}

// CreateSet adds a new empty set and makes it active.
func (s *Store) CreateSet(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &quiz.ValidationError{Field: "name", Reason: "please enter a name for the question set"}
	}

	set := &Set{
		ID:        s.newSetID(),
		Name:      name,
		Questions: []quiz.Question{},
		CreatedAt: s.now().UnixMilli(),
	}
	s.sets = append(s.sets, set)
	s.activeID = set.ID

	if err := s.flush(ctx); err != nil {
		return "", err
	}
	return set.ID, nil
}

// RenameSet changes a set's display name.
func (s *Store) RenameSet(ctx context.Context, setID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &quiz.ValidationError{Field: "name", Reason: "please enter a name for the question set"}
	}
	set := s.find(setID)
	if set == nil {
		return ErrSetNotFound
	}
	set.Name = newName
	return s.flush(ctx)
}

// DeleteSet removes a set. Deleting the last remaining set is rejected.
// Deleting the active set promotes the first remaining set.
func (s *Store) DeleteSet(ctx context.Context, setID string) error {
	if s.find(setID) == nil {
		return ErrSetNotFound
	}
	if len(s.sets) == 1 {
		return &quiz.ConflictError{Reason: "cannot delete the last question set"}
	}

	kept := s.sets[:0]
	for _, set := range s.sets {
		if set.ID != setID {
			kept = append(kept, set)
		}
	}
	s.sets = kept

	if s.activeID == setID {
		// Promotion is a programmatic load, not a user edit.
		s.loading = true
		if len(s.sets) > 0 {
			s.activeID = s.sets[0].ID
		} else {
			s.activeID = ""
		}
		s.loading = false
	}

	if err := s.ClearResults(ctx, setID); err != nil {
		return err
	}
	return s.flush(ctx)
}

// SelectSet makes the given set active. The switch is a programmatic load:
// it must not be misread as a question edit that re-triggers a save-to-self.
func (s *Store) SelectSet(ctx context.Context, setID string) error {
	if s.find(setID) == nil {
		return ErrSetNotFound
	}
	s.loading = true
	s.activeID = setID
	s.loading = false
	return s.kv.Set(ctx, keyActive, setID)
}

// ReplaceQuestions overwrites a set's question list wholesale.
func (s *Store) ReplaceQuestions(ctx context.Context, setID string, questions []quiz.Question) error {
	set := s.find(setID)
	if set == nil {
		return ErrSetNotFound
	}
	set.Questions = questions
	if err := s.flush(ctx); err != nil {
		return err
	}
	s.notify(setID)
	return nil
}

// AppendQuestions adds questions to the end of a set.
func (s *Store) AppendQuestions(ctx context.Context, setID string, questions []quiz.Question) error {
	set := s.find(setID)
	if set == nil {
		return ErrSetNotFound
	}
	set.Questions = append(set.Questions, questions...)
	if err := s.flush(ctx); err != nil {
		return err
	}
	s.notify(setID)
	return nil
}

// AddQuestion appends a single authored question to a set.
func (s *Store) AddQuestion(ctx context.Context, setID string, q quiz.Question) error {
	return s.AppendQuestions(ctx, setID, []quiz.Question{q})
}

// DeleteQuestion removes a single question by id.
func (s *Store) DeleteQuestion(ctx context.Context, setID, questionID string) error {
	set := s.find(setID)
	if set == nil {
		return ErrSetNotFound
	}
	kept := set.Questions[:0]
	for _, q := range set.Questions {
		if q.ID != questionID {
			kept = append(kept, q)
		}
	}
	set.Questions = kept
	if err := s.flush(ctx); err != nil {
		return err
	}
	s.notify(setID)
	return nil
}

// ClearQuestions removes every question from a set.
func (s *Store) ClearQuestions(ctx context.Context, setID string) error {
	return s.ReplaceQuestions(ctx, setID, []quiz.Question{})
}

// UpdateQuestion applies fn to the question with the given id and flushes.
// Returns false when the question is not in the set.
func (s *Store) UpdateQuestion(ctx context.Context, setID, questionID string, fn func(*quiz.Question)) (bool, error) {
	set := s.find(setID)
	if set == nil {
		return false, ErrSetNotFound
	}
	for i := range set.Questions {
		if set.Questions[i].ID == questionID {
			fn(&set.Questions[i])
			if err := s.flush(ctx); err != nil {
				return false, err
			}
			s.notify(setID)
			return true, nil
		}
	}
	return false, nil
}

// SaveResults persists the per-set practice results blob, so progress
// indicators survive restarts.
func (s *Store) SaveResults(ctx context.Context, setID string, results map[string]bool) error {
	return s.kv.Set(ctx, keyResultsPrefix+setID, results)
}

// LoadResults returns the persisted practice results for a set. Missing
// blob yields an empty map.
func (s *Store) LoadResults(ctx context.Context, setID string) (map[string]bool, error) {
	results := make(map[string]bool)
	if _, err := store.GetJSON(ctx, s.kv, keyResultsPrefix+setID, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// PruneResults drops persisted result entries whose question id is no
// longer in the set, so the blob does not accumulate orphans as questions
// are removed or replaced.
func (s *Store) PruneResults(ctx context.Context, setID string) error {
	set := s.find(setID)
	if set == nil {
		return ErrSetNotFound
	}
	results, err := s.LoadResults(ctx, setID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	ids := make(map[string]bool, len(set.Questions))
	for _, q := range set.Questions {
		if q.ID != "" {
			ids[q.ID] = true
		}
	}

	pruned := false
	for key := range results {
		if !ids[key] {
			delete(results, key)
			pruned = true
		}
	}
	if !pruned {
		return nil
	}
	if len(results) == 0 {
		return s.ClearResults(ctx, setID)
	}
	return s.SaveResults(ctx, setID, results)
}

// ClearResults deletes the persisted practice results for a set.
func (s *Store) ClearResults(ctx context.Context, setID string) error {
	return s.kv.Delete(ctx, keyResultsPrefix+setID)
}

func (s *Store) find(setID string) *Set {
	if setID == "" {
		return nil
	}
	for _, set := range s.sets {
		if set.ID == setID {
			return set
		}
	}
	return nil
}

// flush persists the full collection and the active-set id.
func (s *Store) flush(ctx context.Context) error {
	if err := s.kv.Set(ctx, keySets, s.sets); err != nil {
		return fmt.Errorf("persist question sets: %w", err)
	}
	if s.activeID != "" {
		if err := s.kv.Set(ctx, keyActive, s.activeID); err != nil {
			return fmt.Errorf("persist active set id: %w", err)
		}
	}
	return nil
}
