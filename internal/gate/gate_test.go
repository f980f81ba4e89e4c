package gate

import (
	"strings"
	"testing"
)

func TestUnmatchedPathAllowsAnyContent(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("app.js", "console.log('npm')")
	if res.Decision != Allow {
		t.Errorf("expected allow for non-build file, got %s (%s)", res.Decision, res.Reason)
	}
}

func TestDockerfileNpmBlocked(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("Dockerfile", "CMD npm start")
	if res.Decision != Block {
		t.Fatalf("expected block, got %s", res.Decision)
	}
	if !strings.Contains(res.Reason, "Dockerfile") {
		t.Errorf("reason should mention the path, got %q", res.Reason)
	}
	if res.Mandated != "bun" {
		t.Errorf("expected mandated tool bun, got %q", res.Mandated)
	}
	if res.Token != "npm" {
		t.Errorf("expected matched token npm, got %q", res.Token)
	}
}

func TestDockerfileBunAllowed(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("Dockerfile", "CMD bun start")
	if res.Decision != Allow {
		t.Errorf("expected allow for bun, got %s (%s)", res.Decision, res.Reason)
	}
}

func TestWorkflowNpxBlocked(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate(".github/workflows/ci.yml", "run: npx create-react-app my-app")
	if res.Decision != Block {
		t.Fatalf("expected block, got %s", res.Decision)
	}
	if res.RuleID != "ci-workflow" {
		t.Errorf("expected ci-workflow rule, got %q", res.RuleID)
	}
}

func TestComposeCleanContentAllowed(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("docker-compose.yml", "services:\n  db:\n    image: postgres:16\n")
	if res.Decision != Allow {
		t.Errorf("expected allow, got %s (%s)", res.Decision, res.Reason)
	}
}

func TestWholeWordDoesNotMatchInsideIdentifier(t *testing.T) {
	g := NewDefault()

	cases := []string{
		"COPY .pnpmrc /app/",
		"see https://npmjs.com for docs",
		"RUN my_npm_wrapper install",
		"ENV PATH=/opt/yarnpkg/bin:$PATH",
	}
	for _, content := range cases {
		if res := g.Evaluate("Dockerfile", content); res.Decision == Block {
			t.Errorf("content %q should not trigger a whole-word match, got block (%s)", content, res.Reason)
		}
	}
}

func TestWholeWordMatchesAtNonIdentifierBoundaries(t *testing.T) {
	g := NewDefault()

	cases := []string{
		"npm",
		"RUN npm ci",
		"npx&&true",
		"(pnpm)",
		"yarn\ninstall",
	}
	for _, content := range cases {
		if res := g.Evaluate("Dockerfile", content); res.Decision != Block {
			t.Errorf("content %q should trigger a match, got allow", content)
		}
	}
}

func TestPathMatchingIsCaseSensitive(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("dockerfile", "CMD npm start")
	if res.Decision != Allow {
		t.Errorf("lowercase dockerfile should not match the Dockerfile rule, got %s", res.Decision)
	}
}

func TestTokenMatchingIsCaseSensitive(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("Dockerfile", "CMD NPM start")
	if res.Decision != Allow {
		t.Errorf("uppercase NPM should not match, got %s (%s)", res.Decision, res.Reason)
	}
}

func TestLoosePathContainment(t *testing.T) {
	g := NewDefault()

	// Substring match anywhere in the path is intentional.
	for _, path := range []string{"Dockerfile.prod", "build/Dockerfile.alpine", "my-Dockerfile-notes.txt"} {
		if res := g.Evaluate(path, "npm install"); res.Decision != Block {
			t.Errorf("path %q should match the dockerfile rule", path)
		}
	}
}

func TestComposeSuffixRequired(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("docker-compose.yaml", "command: npm start")
	if res.Decision != Allow {
		t.Errorf("docker-compose.yaml does not end in .yml, expected allow, got %s", res.Decision)
	}
}

func TestEmptyInputsAllow(t *testing.T) {
	g := NewDefault()

	if res := g.Evaluate("", ""); res.Decision != Allow {
		t.Errorf("empty path should allow, got %s", res.Decision)
	}
	if res := g.Evaluate("Dockerfile", ""); res.Decision != Allow {
		t.Errorf("empty content should allow, got %s", res.Decision)
	}
	if res := g.Evaluate("", "npm install"); res.Decision != Allow {
		t.Errorf("empty path with npm content should allow, got %s", res.Decision)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	g := NewDefault()

	first := g.Evaluate("Dockerfile", "RUN npm ci")
	for i := 0; i < 10; i++ {
		if got := g.Evaluate("Dockerfile", "RUN npm ci"); got != first {
			t.Fatalf("evaluation %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestBlockDiagnosticHasTwoLines(t *testing.T) {
	g := NewDefault()

	res := g.Evaluate("Dockerfile", "CMD npm start")
	diag := res.Diagnostic()
	lines := strings.Split(diag, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 diagnostic lines, got %d: %q", len(lines), diag)
	}
	if !strings.Contains(lines[0], "Dockerfile") {
		t.Errorf("header should name the path: %q", lines[0])
	}
	if !strings.Contains(lines[1], "bun") {
		t.Errorf("second line should name the mandated tool: %q", lines[1])
	}
}

func TestAllowDiagnosticIsEmpty(t *testing.T) {
	g := NewDefault()

	if diag := g.Evaluate("app.js", "npm").Diagnostic(); diag != "" {
		t.Errorf("allow should produce no diagnostic, got %q", diag)
	}
}

func TestPerRuleOverrides(t *testing.T) {
	g, err := New(&Config{
		Mandated: "bun",
		Tokens:   []string{"npm"},
		Rules: []Rule{
			{ID: "makefile", PathContains: []string{"Makefile"}, Tokens: []string{"pip"}, Mandated: "uv"},
			{ID: "dockerfile", PathContains: []string{"Dockerfile"}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	res := g.Evaluate("Makefile", "\tpip install -r requirements.txt")
	if res.Decision != Block {
		t.Fatalf("expected block, got %s", res.Decision)
	}
	if res.Mandated != "uv" {
		t.Errorf("expected per-rule mandated uv, got %q", res.Mandated)
	}

	// The makefile rule's tokens do not leak into the dockerfile rule.
	if res := g.Evaluate("Dockerfile", "RUN pip install x"); res.Decision != Allow {
		t.Errorf("dockerfile rule should not inherit makefile tokens, got %s", res.Decision)
	}
}

func TestOverlappingRulesBlockOnAnyMatch(t *testing.T) {
	g := NewDefault()

	// Path matches both the dockerfile and ci-workflow patterns.
	res := g.Evaluate(".github/workflows/Dockerfile", "RUN npm ci")
	if res.Decision != Block {
		t.Errorf("expected block when any matching rule hits, got %s", res.Decision)
	}
}

func TestNewRejectsEmptyTokenSet(t *testing.T) {
	_, err := New(&Config{
		Rules: []Rule{{ID: "dockerfile", PathContains: []string{"Dockerfile"}}},
	})
	if err == nil {
		t.Fatal("expected error for ruleset without tokens")
	}
}

func TestRuleIDDerivedFromPattern(t *testing.T) {
	g, err := New(&Config{
		Tokens: []string{"npm"},
		Rules:  []Rule{{PathContains: []string{".github/workflows"}, PathSuffix: ".yml"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	res := g.Evaluate(".github/workflows/ci.yml", "npm ci")
	if res.RuleID == "" {
		t.Error("expected a derived rule id")
	}
}
