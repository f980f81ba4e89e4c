package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// --- Input/Output types ---

// CheckInput defines parameters for the writegate_check tool.
type CheckInput struct {
	FilePath string `json:"file_path" jsonschema:"destination path of the pending write"`
	Content  string `json:"content" jsonschema:"content being written or inserted"`
}

// CheckOutput contains the gate decision.
type CheckOutput struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
	RuleID   string `json:"rule_id,omitempty"`
	Mandated string `json:"mandated,omitempty"`
}

// RulesInput carries no parameters.
type RulesInput struct{}

// RuleInfo describes one path rule.
type RuleInfo struct {
	ID           string   `json:"id"`
	PathContains []string `json:"path_contains"`
	PathSuffix   string   `json:"path_suffix,omitempty"`
	Tokens       []string `json:"tokens,omitempty"`
	Mandated     string   `json:"mandated,omitempty"`
}

// RulesOutput describes the active ruleset.
type RulesOutput struct {
	Mandated  string     `json:"mandated"`
	Tokens    []string   `json:"tokens"`
	Rules     []RuleInfo `json:"rules"`
	RulesHash string     `json:"rules_hash"`
}

// --- Handlers ---

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	g, _, hash := s.current()

	res := g.Evaluate(input.FilePath, input.Content)
	s.recordAudit(res, hash)

	return nil, CheckOutput{
		Decision: string(res.Decision),
		Reason:   res.Reason,
		RuleID:   res.RuleID,
		Mandated: res.Mandated,
	}, nil
}

func (s *Server) handleRules(ctx context.Context, req *mcpsdk.CallToolRequest, input RulesInput) (*mcpsdk.CallToolResult, RulesOutput, error) {
	_, cfg, hash := s.current()

	rules := make([]RuleInfo, len(cfg.Rules))
	for i, r := range cfg.Rules {
		rules[i] = RuleInfo{
			ID:           r.ID,
			PathContains: r.PathContains,
			PathSuffix:   r.PathSuffix,
			Tokens:       r.Tokens,
			Mandated:     r.Mandated,
		}
	}

	return nil, RulesOutput{
		Mandated:  cfg.Mandated,
		Tokens:    cfg.Tokens,
		Rules:     rules,
		RulesHash: hash,
	}, nil
}
