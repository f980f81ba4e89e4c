// Package mcp runs writegate as an MCP (Model Context Protocol) server over
// stdio, so agents can dry-run the gate and inspect the active ruleset
// without going through the host hook.
package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/writegate/writegate/internal/audit"
	"github.com/writegate/writegate/internal/gate"
)

// Config holds MCP server configuration.
type Config struct {
	RulesPath    string
	AuditLogPath string
}

// Server wraps the MCP SDK server around the write-policy gate.
// The gate is swapped atomically on hot-reload.
type Server struct {
	mcpServer *mcpsdk.Server
	auditLog  *audit.Log
	cfg       Config

	mu        sync.RWMutex
	gate      *gate.Gate
	rulesCfg  *gate.Config
	rulesHash string
}

// New creates an MCP server with a loaded ruleset and registered tools.
func New(cfg Config) (*Server, error) {
	g, hash, err := gate.LoadWithHash(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ruleset: %w", err)
	}

	rulesCfg, err := gate.LoadConfig(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ruleset: %w", err)
	}

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	s := &Server{
		auditLog:  auditLog,
		cfg:       cfg,
		gate:      g,
		rulesCfg:  rulesCfg,
		rulesHash: hash,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "writegate",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// ReloadRules atomically swaps the compiled gate and ruleset.
// Called by the hot-reloader on file change.
func (s *Server) ReloadRules() error {
	g, hash, err := gate.LoadWithHash(s.cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to reload ruleset: %w", err)
	}
	rulesCfg, err := gate.LoadConfig(s.cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to reload ruleset: %w", err)
	}

	s.mu.Lock()
	s.gate = g
	s.rulesCfg = rulesCfg
	s.rulesHash = hash
	s.mu.Unlock()

	return nil
}

// current returns the active gate and ruleset hash.
func (s *Server) current() (*gate.Gate, *gate.Config, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gate, s.rulesCfg, s.rulesHash
}

func (s *Server) recordAudit(res gate.Result, rulesHash string) {
	if s.auditLog != nil {
		s.auditLog.Record(audit.Entry{
			Timestamp: time.Now().UTC().Format(audit.TimestampFormat),
			Tool:      "mcp",
			FilePath:  res.FilePath,
			Decision:  string(res.Decision),
			Reason:    res.Reason,
			RuleID:    res.RuleID,
			RulesHash: rulesHash,
		})
	}
}

// registerTools adds the writegate tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "writegate_check",
		Description: "Check whether a file write would be allowed by the write policy without performing it (dry-run). Blocked writes return the reason and the mandated alternative tool.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "writegate_rules",
		Description: "Show the active write-policy ruleset: forbidden tokens, watched path patterns, and the mandated tool.",
	}, s.handleRules)
}
