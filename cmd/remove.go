package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <question-id>",
	Short: "Remove a question from a set by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setRef, _ := cmd.Flags().GetString("set")

		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		set, err := resolveSet(e.sets, setRef)
		if err != nil {
			return err
		}

		before := len(set.Questions)
		if err := e.sets.DeleteQuestion(cmd.Context(), set.ID, args[0]); err != nil {
			return err
		}
		if len(set.Questions) == before {
			return fmt.Errorf("no question with id %q in %q", args[0], set.Name)
		}
		fmt.Printf("Removed question from %q (%s left)\n", set.Name, questionCount(set.Questions))
		return nil
	},
}

func init() {
	removeCmd.Flags().String("set", "", "Target set (id or name, default: active set)")
}
