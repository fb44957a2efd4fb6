package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/tracker"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics per question set",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		all := e.sets.Sets()
		if len(all) == 0 {
			fmt.Println("No question sets yet.")
			return nil
		}

		now := time.Now()
		active := e.sets.ActiveID()

		fmt.Printf("%-30s  %9s  %9s  %8s  %8s  %6s  %4s\n",
			"Set", "Questions", "Practiced", "Attempts", "Accuracy", "Review", "Due")
		fmt.Println(strings.Repeat("─", 88))

		for _, set := range all {
			stats := tracker.Summarize(set)
			name := set.Name
			if set.ID == active {
				name = "* " + name
			}
			if len(name) > 30 {
				name = name[:30]
			}

			accuracy := "—"
			if stats.Attempts > 0 {
				accuracy = fmt.Sprintf("%.0f%%", stats.Accuracy()*100)
			}

			fmt.Printf("%-30s  %9d  %9d  %8d  %8s  %6d  %4d\n",
				name, stats.Questions, stats.Practiced, stats.Attempts,
				accuracy, stats.NeedsReview, len(tracker.Due(set, now)))
		}
		return nil
	},
}
