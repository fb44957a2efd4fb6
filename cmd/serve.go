package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdrill/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Anthropic API proxy for the browser frontend",
	Long: "Run a local proxy that forwards /api/anthropic/messages to the\n" +
		"Anthropic API, moving the caller's API key from the JSON body into\n" +
		"the request headers. Reads PORT from the environment or a .env file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		port, _ := cmd.Flags().GetString("port")
		if port == "" {
			port = os.Getenv("PORT")
		}
		if port == "" {
			port = "3001"
		}

		srv := server.New(server.Config{})
		fmt.Printf("Proxy server running on http://localhost:%s\n", port)
		return http.ListenAndServe(":"+port, srv.Handler())
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default: PORT env var, then 3001)")
}
