package sets

import (
	"context"
	"fmt"

	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/store"
)

// migrateLegacy wraps pre-sets flat question lists into a generated
// "Default Set", persists the result, and deletes the legacy keys. Returns
// the new set's id, or "" when there was nothing to migrate. When both
// legacy lists exist the manually authored one wins.
func (s *Store) migrateLegacy(ctx context.Context) (string, error) {
	var flat, manual []quiz.Question
	hadFlat, err := store.GetJSON(ctx, s.kv, legacyKeyQuestions, &flat)
	if err != nil {
		return "", fmt.Errorf("load legacy questions: %w", err)
	}
	hadManual, err := store.GetJSON(ctx, s.kv, legacyKeyManual, &manual)
	if err != nil {
		return "", fmt.Errorf("load legacy manual questions: %w", err)
	}
	if !hadFlat && !hadManual {
		return "", nil
	}

	questions := flat
	if len(manual) > 0 {
		questions = manual
	}
	if questions == nil {
		questions = []quiz.Question{}
	}

	set := &Set{
		ID:        fmt.Sprintf("default-%d", s.now().UnixMilli()),
		Name:      "Default Set",
		Questions: questions,
		CreatedAt: s.now().UnixMilli(),
	}
	s.sets = append(s.sets, set)
	s.activeID = set.ID

	if err := s.flush(ctx); err != nil {
		return "", err
	}
	if err := s.kv.Delete(ctx, legacyKeyQuestions); err != nil {
		return "", err
	}
	if err := s.kv.Delete(ctx, legacyKeyManual); err != nil {
		return "", err
	}
	return set.ID, nil
}
