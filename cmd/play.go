package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [set]",
	Short: "Start a practice session",
	Long: "Start a practice session over a question set. With an LLM provider\n" +
		"configured, the questions are reordered to put the weakest ones first.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := practiceOptions{ordered: true}
		if len(args) > 0 {
			opts.setRef = args[0]
		}
		if noOrder, _ := cmd.Flags().GetBool("no-order"); noOrder {
			opts.ordered = false
		}
		opts.fresh, _ = cmd.Flags().GetBool("fresh")
		return runPractice(cmd, opts)
	},
}

func init() {
	playCmd.Flags().Bool("no-order", false, "Practice in stored order, skipping the AI ordering request")
	playCmd.Flags().Bool("fresh", false, "Discard saved progress and start from the first question")
}
