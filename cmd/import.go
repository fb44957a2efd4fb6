package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/impex"
	"github.com/abhisek/quizdrill/internal/quiz"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions from a JSON file into a set",
	Long: "Import questions from a JSON file. By default the import is merged:\n" +
		"questions matching by id or text are updated in place keeping their\n" +
		"practice history, and new questions are appended. Use --replace to\n" +
		"overwrite the set wholesale.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")
		setRef, _ := cmd.Flags().GetString("set")

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		imported, err := impex.ParsePayload(raw)
		if err != nil {
			return err
		}

		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		set, err := resolveSet(e.sets, setRef)
		if err != nil {
			return err
		}

		mode := impex.ModeMerge
		if replace {
			mode = impex.ModeReplace
		}

		merged, report, err := impex.Reconcile(set.Questions, imported, mode, time.Now())
		if err != nil {
			var noop *quiz.NoOpError
			if errors.As(err, &noop) {
				fmt.Printf("%q is already up to date, nothing imported.\n", set.Name)
				return nil
			}
			return err
		}

		if err := e.sets.ReplaceQuestions(cmd.Context(), set.ID, merged); err != nil {
			return err
		}

		if replace {
			fmt.Printf("Replaced %q with %s.\n", set.Name, questionCount(merged))
		} else {
			fmt.Printf("Imported into %q: %d updated, %d added (%s total).\n",
				set.Name, report.Updated, report.Added, questionCount(merged))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("replace", false, "Replace the set's questions instead of merging")
	importCmd.Flags().String("set", "", "Target set (id or name, default: active set)")
}
