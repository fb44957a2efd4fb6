package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := llm.NewKVRequestLog(e.store).Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("load request log: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No LLM requests logged.")
			return nil
		}

		fmt.Printf("%-20s  %-13s  %-28s  %-6s  %-6s  %-7s  %-8s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Println(strings.Repeat("─", 104))

		for _, rec := range records {
			if purpose != "" && rec.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !rec.Success {
				ok = "✗"
			}
			model := rec.Model
			if len(model) > 28 {
				model = model[:28]
			}
			cost := ""
			if rec.CostUSD > 0 {
				cost = fmt.Sprintf("$%.4f", rec.CostUSD)
			}
			fmt.Printf("%-20s  %-13s  %-28s  %-6d  %-6d  %-7d  %-8s  %s\n",
				rec.Timestamp, rec.Purpose, model,
				rec.InputTokens, rec.OutputTokens, rec.LatencyMs, cost, ok)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view [n]",
	Short: "View the full request/response of a recent LLM request (1 = latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		back := 1
		if len(args) > 0 {
			if _, err := fmt.Sscanf(args[0], "%d", &back); err != nil || back < 1 {
				return fmt.Errorf("invalid position %q", args[0])
			}
		}

		e, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := llm.NewKVRequestLog(e.store).Recent(cmd.Context(), 0)
		if err != nil {
			return fmt.Errorf("load request log: %w", err)
		}
		if back > len(records) {
			return fmt.Errorf("only %d requests logged", len(records))
		}
		rec := records[len(records)-back]

		sep := strings.Repeat("─", 60)
		fmt.Printf("Time:      %s\n", rec.Timestamp)
		fmt.Printf("Model:     %s\n", rec.Model)
		fmt.Printf("Purpose:   %s\n", rec.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", rec.InputTokens, rec.OutputTokens)
		fmt.Printf("Latency:   %dms\n", rec.LatencyMs)
		fmt.Printf("Success:   %v\n", rec.Success)
		if rec.CostUSD > 0 {
			fmt.Printf("Cost:      $%.4f\n", rec.CostUSD)
		}
		if rec.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", rec.ErrorMessage)
		}
		if rec.RequestBody != "" {
			fmt.Printf("\n%s\nRequest\n%s\n%s\n", sep, sep, rec.RequestBody)
		}
		if rec.ResponseBody != "" {
			fmt.Printf("\n%s\nResponse\n%s\n%s\n", sep, sep, rec.ResponseBody)
		}
		return nil
	},
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which LLM provider is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			if discovered, ok := llm.DiscoverConfig(); ok {
				cfg = discovered
			} else {
				fmt.Println("No LLM provider configured.")
				fmt.Println()
				fmt.Println("Set QUIZDRILL_LLM_PROVIDER and the matching QUIZDRILL_<PROVIDER>_API_KEY,")
				fmt.Println("or export a standard key (GEMINI_API_KEY, OPENAI_API_KEY,")
				fmt.Println("ANTHROPIC_API_KEY, OPENROUTER_API_KEY).")
				return nil
			}
		}

		model := ""
		switch cfg.Provider {
		case "anthropic":
			model = cfg.Anthropic.Model
		case "openai":
			model = cfg.OpenAI.Model
		case "gemini":
			model = cfg.Gemini.Model
		case "openrouter":
			model = cfg.OpenRouter.Model
		}

		fmt.Printf("Provider:  %s\n", cfg.Provider)
		fmt.Printf("Model:     %s\n", model)
		fmt.Printf("Timeout:   %s\n", cfg.Timeout)
		fmt.Printf("Retries:   %d attempts\n", cfg.Retry.MaxAttempts)
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (question-gen, ordering)")

	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}
