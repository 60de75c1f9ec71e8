package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vietddude/triage/internal/core/config"
	"github.com/vietddude/triage/internal/metrics"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current error counters",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("http://localhost:%d/v1/errors", cfg.Server.Port)
	resp, err := http.Get(url)
	if err != nil {
		slog.Error("Failed to reach service", "url", url, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var snap metrics.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		slog.Error("Failed to decode snapshot", "error", err)
		os.Exit(1)
	}

	keys := make([]string, 0, len(snap.Counts))
	for k := range snap.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "KEY\tCOUNT")
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", k, snap.Counts[k])
	}
	_ = w.Flush()

	fmt.Printf("last reset: %s\n", snap.LastReset.Format(time.RFC3339))
}
