package cmd

import (
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review [set]",
	Short: "Practice only the questions you last answered incorrectly",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := practiceOptions{reviewOnly: true}
		if len(args) > 0 {
			opts.setRef = args[0]
		}
		return runPractice(cmd, opts)
	},
}
