package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/app"
	"github.com/abhisek/quizdrill/internal/llm"
	"github.com/abhisek/quizdrill/internal/ordering"
	"github.com/abhisek/quizdrill/internal/quiz"
	"github.com/abhisek/quizdrill/internal/sets"
	"github.com/abhisek/quizdrill/internal/store"
	"github.com/abhisek/quizdrill/internal/tracker"
)

// env bundles the opened store and the loaded set collection for a command
// invocation.
type env struct {
	store *store.Store
	sets  *sets.Store
}

// openEnv opens the database and loads the set collection. The returned
// cleanup func closes the store.
func openEnv(cmd *cobra.Command) (*env, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	setStore := sets.NewStore(st)
	if err := setStore.Load(cmd.Context()); err != nil {
		st.Close()
		return nil, nil, err
	}

	// Question edits invalidate result entries for questions that no longer
	// exist. Programmatic loads do not fire this.
	setStore.OnQuestionsChanged(func(setID string) {
		if err := setStore.PruneResults(cmd.Context(), setID); err != nil {
			fmt.Fprintf(os.Stderr, "warning: prune results for %s: %v\n", setID, err)
		}
	})

	return &env{store: st, sets: setStore}, func() { _ = st.Close() }, nil
}

// resolveSet finds a set by id or (case-insensitive) name. An empty ref
// means the active set.
func resolveSet(s *sets.Store, ref string) (*sets.Set, error) {
	if ref == "" {
		set := s.Active()
		if set == nil {
			return nil, fmt.Errorf("no question sets yet; create one with 'quizdrill sets create <name>'")
		}
		return set, nil
	}
	if set := s.Get(ref); set != nil {
		return set, nil
	}
	for _, set := range s.Sets() {
		if strings.EqualFold(set.Name, ref) {
			return set, nil
		}
	}
	return nil, fmt.Errorf("no question set matching %q", ref)
}

// newProvider builds the LLM provider from the environment, or reports why
// AI features are unavailable.
func newProvider(ctx context.Context, st *store.Store) (llm.Provider, error) {
	return llm.NewProviderFromEnv(ctx, llm.NewKVRequestLog(st))
}

type practiceOptions struct {
	setRef     string
	ordered    bool
	reviewOnly bool
	fresh      bool
}

// runPractice wires up a practice session and launches the TUI.
func runPractice(cmd *cobra.Command, opts practiceOptions) error {
	ctx := cmd.Context()

	e, cleanup, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	set, err := resolveSet(e.sets, opts.setRef)
	if err != nil {
		return err
	}
	if set.ID != e.sets.ActiveID() {
		if err := e.sets.SelectSet(ctx, set.ID); err != nil {
			return err
		}
	}
	if len(set.Questions) == 0 {
		return fmt.Errorf("set %q has no questions; add some with 'quizdrill add', 'quizdrill import', or 'quizdrill generate'", set.Name)
	}

	recorder := tracker.NewService(e.sets)
	recorder.Warnings = os.Stderr

	cfg := app.Config{
		Set:      set,
		Recorder: recorder,
		Ctx:      ctx,
		SaveResults: func(ctx context.Context, results map[string]bool) error {
			return e.sets.SaveResults(ctx, set.ID, results)
		},
	}

	if opts.reviewOnly {
		questions := tracker.Incorrect(set)
		if len(questions) == 0 {
			fmt.Println("Nothing to review — no questions answered incorrectly.")
			return nil
		}
		cfg.Questions = questions
	} else if opts.ordered {
		provider, err := newProvider(ctx, e.store)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Practicing in stored order.")
		} else {
			cfg.Orderer = ordering.New(provider, ordering.DefaultConfig())
		}
	}

	if opts.fresh {
		if err := e.sets.ClearResults(ctx, set.ID); err != nil {
			return err
		}
	} else {
		// Seeded even in review mode: the session only runs the review
		// subset, but its saved results must keep the rest of the set's
		// recorded outcomes.
		results, err := e.sets.LoadResults(ctx, set.ID)
		if err != nil {
			return err
		}
		cfg.Results = results
	}

	return app.Run(cfg)
}

// questionCount returns "N questions" with singular handling.
func questionCount(questions []quiz.Question) string {
	if len(questions) == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", len(questions))
}
