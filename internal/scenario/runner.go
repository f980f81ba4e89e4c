// Package scenario runs write-policy assertion files through the gate.
// Scenario YAML files pin expected decisions for concrete (path, content)
// pairs; teams run them in CI to gate ruleset changes.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/writegate/writegate/internal/gate"
)

// Run evaluates all cases in a scenario against the given gate.
// Each case is independent; the gate is stateless by construction.
func Run(s *Scenario, g *gate.Gate) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		res := g.Evaluate(c.FilePath, c.Content)
		actual := string(res.Decision)
		expected := strings.ToLower(c.Expect)

		cr := CaseResult{
			Index:    i + 1,
			FilePath: c.FilePath,
			Expected: expected,
			Actual:   actual,
			Reason:   res.Reason,
		}

		if actual == expected {
			cr.Passed = true
			result.Passed++
		} else {
			result.Failed++
		}

		result.Cases = append(result.Cases, cr)
	}

	return result
}

// LoadAndRun loads a scenario YAML file, loads the ruleset, and runs.
// A rules path inside the scenario file overrides the rulesPath argument.
func LoadAndRun(path, rulesPath string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if s.Rules != "" {
		rulesPath = s.Rules
	}

	g, err := gate.Load(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load ruleset: %w", err)
	}

	result := Run(&s, g)
	result.File = path

	return result, nil
}
