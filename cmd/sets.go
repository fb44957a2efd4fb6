package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Manage question sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List question sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		all := e.sets.Sets()
		if len(all) == 0 {
			fmt.Println("No question sets yet. Create one with 'quizdrill sets create <name>'.")
			return nil
		}

		active := e.sets.ActiveID()
		for _, set := range all {
			marker := " "
			if set.ID == active {
				marker = "*"
			}
			created := time.UnixMilli(set.CreatedAt).Local().Format("2006-01-02")
			fmt.Printf("%s %-40s  %-14s  created %s\n    %s\n",
				marker, set.Name, questionCount(set.Questions), created, set.ID)
		}
		return nil
	},
}

var setsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new question set and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		id, err := e.sets.CreateSet(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created set %q (%s)\n", args[0], id)
		return nil
	},
}

var setsRenameCmd = &cobra.Command{
	Use:   "rename <set> <new-name>",
	Short: "Rename a question set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		set, err := resolveSet(e.sets, args[0])
		if err != nil {
			return err
		}
		if err := e.sets.RenameSet(cmd.Context(), set.ID, args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed to %q\n", args[1])
		return nil
	},
}

var setsDeleteCmd = &cobra.Command{
	Use:   "delete <set>",
	Short: "Delete a question set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		set, err := resolveSet(e.sets, args[0])
		if err != nil {
			return err
		}
		if err := e.sets.DeleteSet(cmd.Context(), set.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", set.Name)
		if active := e.sets.Active(); active != nil {
			fmt.Printf("Active set is now %q\n", active.Name)
		}
		return nil
	},
}

var setsSelectCmd = &cobra.Command{
	Use:   "select <set>",
	Short: "Make a question set the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		set, err := resolveSet(e.sets, args[0])
		if err != nil {
			return err
		}
		if err := e.sets.SelectSet(cmd.Context(), set.ID); err != nil {
			return err
		}
		fmt.Printf("Active set: %q\n", set.Name)
		return nil
	},
}

var setsClearCmd = &cobra.Command{
	Use:   "clear <set>",
	Short: "Remove every question from a set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		set, err := resolveSet(e.sets, args[0])
		if err != nil {
			return err
		}
		if err := e.sets.ClearQuestions(cmd.Context(), set.ID); err != nil {
			return err
		}
		if err := e.sets.ClearResults(cmd.Context(), set.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared all questions from %q\n", set.Name)
		return nil
	},
}

func init() {
	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsCreateCmd)
	setsCmd.AddCommand(setsRenameCmd)
	setsCmd.AddCommand(setsDeleteCmd)
	setsCmd.AddCommand(setsSelectCmd)
	setsCmd.AddCommand(setsClearCmd)
}
