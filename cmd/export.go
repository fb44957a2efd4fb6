package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/impex"
)

var exportCmd = &cobra.Command{
	Use:   "export [set]",
	Short: "Export a set's questions, with practice history, to JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

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

		now := time.Now()
		export := impex.BuildExport(set.Questions, now)
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if out == "" {
			out = impex.ExportFilename(set.Name, now)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Exported %s to %s\n", questionCount(set.Questions), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "O", "", "Output file (default: derived from set name, '-' for stdout)")
}
