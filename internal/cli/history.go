package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/writegate/writegate/internal/history"
)

var (
	historyDB      string
	historyLimit   int
	historyBlocked bool
	historyFormat  string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyDB, "db", "", "Path to history database (default: ~/.writegate/history.db)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of recent decisions to show")
	historyCmd.Flags().BoolVar(&historyBlocked, "blocked", false, "Show only blocked writes")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "Output format (text|json)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent gate decisions from the history database",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := historyDB
	if path == "" {
		path = history.DefaultPath()
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit, historyBlocked)
	if err != nil {
		return err
	}

	if historyFormat == "json" {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No decisions recorded.")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-5s  %s", e.Timestamp.Format(time.RFC3339), e.Decision, e.FilePath)
		if e.RuleID != "" {
			line += fmt.Sprintf("  [%s]", e.RuleID)
		}
		fmt.Println(line)
	}
	return nil
}
