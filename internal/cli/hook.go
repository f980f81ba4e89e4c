package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/writegate/writegate/internal/audit"
	"github.com/writegate/writegate/internal/gate"
	"github.com/writegate/writegate/internal/history"
	"github.com/writegate/writegate/internal/hookio"
)

// exitBlock is the hook protocol's blocking exit code. The host feeds
// stderr back to the model and cancels the write.
const exitBlock = 2

var (
	hookRules     string
	hookAuditLog  string
	hookHistoryDB string
)

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.Flags().StringVar(&hookRules, "rules", "", "Path to ruleset YAML (default: ~/.writegate/rules.yaml)")
	hookCmd.Flags().StringVar(&hookAuditLog, "audit-log", "", "Path to audit log JSONL file")
	hookCmd.Flags().StringVar(&hookHistoryDB, "history-db", "", "Path to decision history SQLite database")
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Evaluate a pending write from a PreToolUse hook payload",
	Long: "Reads one JSON hook payload from stdin, extracts the target path and\n" +
		"content, and evaluates it against the ruleset.\n\n" +
		"Exit code 0 allows the write. Exit code 2 blocks it and prints a\n" +
		"two-line diagnostic to stderr for the model to act on. Malformed\n" +
		"payloads always allow: the gate must never break the host.",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(hook(os.Stdin, os.Stderr, hookOptions{
			rules:     hookRules,
			auditLog:  hookAuditLog,
			historyDB: hookHistoryDB,
		}))
	},
}

type hookOptions struct {
	rules     string
	auditLog  string
	historyDB string
}

// hook evaluates one payload from in and returns the process exit code:
// 0 to allow the write, exitBlock to block it with a diagnostic on errOut.
func hook(in io.Reader, errOut io.Writer, opts hookOptions) int {
	g, rulesHash, err := gate.LoadWithHash(opts.rules)
	if err != nil {
		// A broken ruleset must not break the host. Report and allow.
		fmt.Fprintf(errOut, "writegate: %v (allowing write)\n", err)
		return 0
	}

	p := hookio.Read(in)
	res := g.Evaluate(p.ToolInput.FilePath, p.Data())

	recordDecision(errOut, opts, p, res, rulesHash)

	if res.Decision == gate.Block {
		fmt.Fprintln(errOut, res.Diagnostic())
		return exitBlock
	}
	return 0
}

// recordDecision writes the decision to the configured sinks. Sink failures
// are reported on errOut but never change the decision or the exit code.
func recordDecision(errOut io.Writer, opts hookOptions, p *hookio.Payload, res gate.Result, rulesHash string) {
	now := time.Now().UTC()

	if opts.auditLog != "" {
		log, err := audit.Open(opts.auditLog)
		if err != nil {
			fmt.Fprintf(errOut, "writegate: audit log unavailable: %v\n", err)
		} else {
			defer log.Close()
			if err := log.Record(audit.Entry{
				Timestamp: now.Format(audit.TimestampFormat),
				SessionID: p.SessionID,
				Tool:      p.ToolName,
				FilePath:  p.ToolInput.FilePath,
				Decision:  string(res.Decision),
				Reason:    res.Reason,
				RuleID:    res.RuleID,
				RulesHash: rulesHash,
			}); err != nil {
				fmt.Fprintf(errOut, "writegate: audit record failed: %v\n", err)
			}
		}
	}

	if opts.historyDB != "" {
		store, err := history.Open(opts.historyDB)
		if err != nil {
			fmt.Fprintf(errOut, "writegate: history unavailable: %v\n", err)
		} else {
			defer store.Close()
			if err := store.Record(history.Entry{
				Timestamp: now,
				SessionID: p.SessionID,
				Tool:      p.ToolName,
				FilePath:  p.ToolInput.FilePath,
				Decision:  string(res.Decision),
				Reason:    res.Reason,
				RuleID:    res.RuleID,
			}); err != nil {
				fmt.Fprintf(errOut, "writegate: history record failed: %v\n", err)
			}
		}
	}
}
