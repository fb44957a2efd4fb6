package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/quiz"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question to the active set",
	Example: `  quizdrill add -q "What does TCP stand for?" \
      -o "Transmission Control Protocol" -o "Transfer Control Protocol" \
      -o "Transport Connection Protocol" -a 0 \
      -e "TCP is the connection-oriented transport protocol of the Internet."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("question")
		options, _ := cmd.Flags().GetStringArray("option")
		answers, _ := cmd.Flags().GetIntSlice("answer")
		explanation, _ := cmd.Flags().GetString("explanation")
		setRef, _ := cmd.Flags().GetString("set")

		q := quiz.Question{
			Text:        text,
			Options:     options,
			Explanation: explanation,
		}
		switch len(answers) {
		case 0:
			// Leave empty; validation reports the missing answer.
		case 1:
			q.Answer = quiz.SingleAnswer(answers[0])
		default:
			q.Answer = quiz.MultiAnswer(answers...)
		}
		q.Normalize()

		if err := quiz.ValidateAuthored(&q); err != nil {
			return err
		}
		quiz.PrepareAuthored(&q)
		q.ID = quiz.NewID(time.Now(), 0)

		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		set, err := resolveSet(e.sets, setRef)
		if err != nil {
			return err
		}
		if err := e.sets.AddQuestion(cmd.Context(), set.ID, q); err != nil {
			return err
		}

		fmt.Printf("Added question to %q (%s now)\n", set.Name, questionCount(set.Questions))
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("question", "q", "", "Question text")
	addCmd.Flags().StringArrayP("option", "o", nil, "Answer option (repeat for each option)")
	addCmd.Flags().IntSliceP("answer", "a", nil, "Correct option index, 0-based (repeat for multi-answer)")
	addCmd.Flags().StringP("explanation", "e", "", "Explanation shown after answering")
	addCmd.Flags().String("set", "", "Target set (id or name, default: active set)")
}
