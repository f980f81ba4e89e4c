// Package gate implements the write-policy gate: a pure decision function
// over a pending file write. The host proposes (path, content); the gate
// answers allow or block. No state survives a call.
package gate

import (
	"fmt"
	"regexp"
	"strings"
)

// Decision is the gate outcome for a pending write.
type Decision string

const (
	Allow Decision = "allow"
	Block Decision = "block"
)

// Result is the output of one evaluation.
type Result struct {
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason,omitempty"`
	RuleID   string   `json:"rule_id,omitempty"`
	Token    string   `json:"token,omitempty"`
	Mandated string   `json:"mandated,omitempty"`
	FilePath string   `json:"file_path,omitempty"`
}

// Diagnostic renders the two-line stderr message for a blocked write.
// Empty for allowed writes.
func (r Result) Diagnostic() string {
	if r.Decision != Block {
		return ""
	}
	return fmt.Sprintf("writegate: %s\nUse %s instead and rework the change to comply with the mandated toolchain.",
		r.Reason, r.Mandated)
}

// compiledRule is a Rule with its token regexp built.
type compiledRule struct {
	id       string
	contains []string
	suffix   string
	tokens   *regexp.Regexp
	mandated string
}

// Gate holds the compiled ruleset for fast matching.
type Gate struct {
	rules []compiledRule
	cfg   *Config
}

// New creates a Gate from a config, compiling token patterns.
func New(cfg *Config) (*Gate, error) {
	if len(cfg.Tokens) == 0 && !allRulesHaveTokens(cfg.Rules) {
		return nil, fmt.Errorf("ruleset has no tokens: set top-level tokens or per-rule tokens")
	}

	g := &Gate{cfg: cfg}
	for i, r := range cfg.Rules {
		tokens := r.Tokens
		if len(tokens) == 0 {
			tokens = cfg.Tokens
		}
		mandated := r.Mandated
		if mandated == "" {
			mandated = cfg.Mandated
		}

		re, err := compileTokens(tokens)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", ruleID(r, i), err)
		}

		g.rules = append(g.rules, compiledRule{
			id:       ruleID(r, i),
			contains: r.PathContains,
			suffix:   r.PathSuffix,
			tokens:   re,
			mandated: mandated,
		})
	}
	return g, nil
}

// NewDefault creates a Gate with the built-in default ruleset.
func NewDefault() *Gate {
	g, err := New(DefaultConfig())
	if err != nil {
		// The default config is static and must always compile.
		panic(fmt.Sprintf("default ruleset failed to compile: %v", err))
	}
	return g
}

// Evaluate decides whether a pending write to filePath with the given
// content may proceed. Paths matching no rule are allowed unconditionally;
// content is never inspected for them. Matching is case-sensitive, and
// tokens match as whole words only.
func (g *Gate) Evaluate(filePath, content string) Result {
	if filePath == "" {
		return Result{Decision: Allow}
	}

	for _, r := range g.rules {
		if !r.matchPath(filePath) {
			continue
		}
		if token := r.tokens.FindString(content); token != "" {
			return Result{
				Decision: Block,
				Reason: fmt.Sprintf("blocked write to %s: %s files must not reference %s, this project mandates %s",
					filePath, r.id, token, r.mandated),
				RuleID:   r.id,
				Token:    token,
				Mandated: r.mandated,
				FilePath: filePath,
			}
		}
	}

	return Result{Decision: Allow, FilePath: filePath}
}

// matchPath reports whether the rule's path patterns match.
// Substring containment is deliberately loose: a rule watching "Dockerfile"
// also catches Dockerfile.prod and build/Dockerfile.alpine.
func (r compiledRule) matchPath(path string) bool {
	matched := false
	for _, c := range r.contains {
		if strings.Contains(path, c) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	if r.suffix != "" && !strings.HasSuffix(path, r.suffix) {
		return false
	}
	return true
}

// compileTokens builds a single whole-word alternation over the tokens.
// Word boundaries use identifier-character semantics, so "pnpm" does not
// match inside ".pnpmrc".
func compileTokens(tokens []string) (*regexp.Regexp, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens to compile")
	}
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		if t == "" {
			return nil, fmt.Errorf("empty token at index %d", i)
		}
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ruleID returns the rule's id, deriving one from its first pattern if unset.
func ruleID(r Rule, index int) string {
	if r.ID != "" {
		return r.ID
	}
	if len(r.PathContains) > 0 {
		id := strings.ToLower(r.PathContains[0])
		id = strings.Trim(id, "./")
		id = strings.ReplaceAll(id, "/", "-")
		if id != "" {
			return id
		}
	}
	return fmt.Sprintf("rule-%d", index+1)
}

func allRulesHaveTokens(rules []Rule) bool {
	if len(rules) == 0 {
		return false
	}
	for _, r := range rules {
		if len(r.Tokens) == 0 {
			return false
		}
	}
	return true
}
