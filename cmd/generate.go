package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/qgen"
	"github.com/abhisek/quizdrill/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate questions from study material with an LLM",
	Long: "Generate multiple-choice questions from study material and append\n" +
		"them to a set. The material is read from the given file, or from\n" +
		"stdin when no file is named.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		setRef, _ := cmd.Flags().GetString("set")

		var material []byte
		var err error
		if len(args) > 0 {
			material, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
		} else {
			material, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
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

		provider, err := newProvider(ctx, e.store)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		fmt.Println("Generating questions...")
		questions, err := qgen.New(provider, qgen.DefaultConfig()).Generate(ctx, string(material))
		if err != nil {
			var parseErr *quiz.ParseError
			if errors.As(err, &parseErr) && parseErr.Truncated {
				return fmt.Errorf("%w\nThe response was cut off; try shorter material", err)
			}
			return err
		}

		if err := e.sets.AppendQuestions(cmd.Context(), set.ID, questions); err != nil {
			return err
		}
		fmt.Printf("Added %s to %q (%s total)\n",
			questionCount(questions), set.Name, questionCount(set.Questions))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("set", "", "Target set (id or name, default: active set)")
}
