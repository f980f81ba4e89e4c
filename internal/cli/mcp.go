package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/writegate/writegate/internal/gate"
	wgmcp "github.com/writegate/writegate/internal/mcp"
)

var (
	mcpRules    string
	mcpAuditLog string
	mcpWatch    bool
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpRules, "rules", "", "Path to ruleset YAML (default: ~/.writegate/rules.yaml)")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to audit log JSONL file")
	mcpCmd.Flags().BoolVar(&mcpWatch, "watch", false, "Hot-reload the ruleset when the file changes")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs writegate as an MCP (Model Context Protocol) server over stdio.\nExposes tools: writegate_check (dry-run a write), writegate_rules (show ruleset).",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := wgmcp.New(wgmcp.Config{
		RulesPath:    mcpRules,
		AuditLogPath: mcpAuditLog,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	if mcpWatch {
		reloader, err := wgmcp.NewReloader(srv, watchPaths(mcpRules))
		if err != nil {
			return fmt.Errorf("failed to create reloader: %w", err)
		}
		go reloader.Run(ctx)
	}

	fmt.Fprintln(os.Stderr, "writegate MCP server running on stdio")
	return srv.Run(ctx)
}

// watchPaths resolves the ruleset paths the reloader watches. An empty
// --rules means the default ruleset location, not "watch nothing".
func watchPaths(rules string) []string {
	if rules == "" {
		rules = gate.DefaultPath()
	}
	return []string{rules}
}
