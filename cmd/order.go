package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/ordering"
)

var orderCmd = &cobra.Command{
	Use:   "order [set]",
	Short: "Show the practice order the model recommends for a set",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		setRef := ""
		if len(args) > 0 {
			setRef = args[0]
		}
		set, err := resolveSet(e.sets, setRef)
		if err != nil {
			return err
		}
		if len(set.Questions) == 0 {
			return fmt.Errorf("set %q has no questions", set.Name)
		}

		provider, err := newProvider(ctx, e.store)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		engine := ordering.New(provider, ordering.DefaultConfig())
		ids, err := engine.RequestPriorityOrder(ctx, set)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ordering failed, showing stored order:", err)
		}

		for i, q := range ordering.Materialize(set, ids) {
			fmt.Printf("%2d. %s\n", i+1, q.Text)
		}
		return nil
	},
}
