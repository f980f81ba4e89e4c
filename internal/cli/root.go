package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "writegate",
	Short: "Write-policy gate for agentic coding assistants",
	Long:  "Blocks file writes that reference forbidden package-manager tooling in build\nand CI files. Runs as a PreToolUse hook: reads the pending write from stdin,\nexits 0 to allow or 2 to block with a diagnostic on stderr.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
