package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/vietddude/triage/internal/core/config"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all error counters",
	Run:   runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("http://localhost:%d/v1/errors/reset", cfg.Server.Port)
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		slog.Error("Failed to reach service", "url", url, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Reset failed", "status", resp.Status)
		os.Exit(1)
	}

	fmt.Println("counters reset")
}
