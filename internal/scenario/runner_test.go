package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/writegate/writegate/internal/gate"
)

const passingScenario = `
name: default-ruleset
cases:
  - file_path: Dockerfile
    content: "CMD npm start"
    expect: block
  - file_path: Dockerfile
    content: "CMD bun start"
    expect: allow
  - file_path: app.js
    content: "console.log('npm')"
    expect: allow
  - file_path: .github/workflows/ci.yml
    content: "run: npx create-react-app my-app"
    expect: block
  - file_path: docker-compose.yml
    content: "services: {}"
    expect: allow
`

const failingScenario = `
name: wrong-expectations
cases:
  - file_path: Dockerfile
    content: "CMD npm start"
    expect: allow
  - file_path: Dockerfile
    content: "CMD bun start"
    expect: allow
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAllCasesPass(t *testing.T) {
	path := writeScenario(t, passingScenario)

	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Failed != 0 {
		t.Fatalf("expected all cases to pass, got %d failures: %+v", r.Failed, r.Cases)
	}
	if r.Passed != 5 || r.Total != 5 {
		t.Fatalf("expected 5/5 passed, got %d/%d", r.Passed, r.Total)
	}
}

func TestRunReportsFailures(t *testing.T) {
	path := writeScenario(t, failingScenario)

	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Failed != 1 {
		t.Fatalf("expected 1 failure, got %d", r.Failed)
	}
	if r.Cases[0].Passed {
		t.Error("case 1 expects allow for a blocked write and must fail")
	}
	if r.Cases[0].Actual != "block" {
		t.Errorf("expected actual block, got %s", r.Cases[0].Actual)
	}
}

func TestRunWithCustomGate(t *testing.T) {
	g, err := gate.New(&gate.Config{
		Mandated: "uv",
		Tokens:   []string{"pip"},
		Rules:    []gate.Rule{{ID: "makefile", PathContains: []string{"Makefile"}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	s := &Scenario{
		Name: "custom",
		Cases: []Case{
			{FilePath: "Makefile", Content: "\tpip install x", Expect: "block"},
			{FilePath: "Dockerfile", Content: "RUN npm ci", Expect: "allow"},
		},
	}

	r := Run(s, g)
	if r.Failed != 0 {
		t.Fatalf("expected custom gate scenario to pass, failures: %+v", r.Cases)
	}
}

func TestLoadAndRunMissingFile(t *testing.T) {
	if _, err := LoadAndRun(filepath.Join(t.TempDir(), "nope.yaml"), ""); err == nil {
		t.Fatal("expected error for missing scenario file")
	}
}

func TestFormatTextShowsFailures(t *testing.T) {
	path := writeScenario(t, failingScenario)
	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatal(err)
	}

	out := FormatText([]*RunResult{r})
	if !strings.Contains(out, "FAIL") {
		t.Errorf("expected FAIL marker in output:\n%s", out)
	}
	if !strings.Contains(out, "expected allow, got block") {
		t.Errorf("expected failure detail in output:\n%s", out)
	}
}

func TestFormatTextAllPass(t *testing.T) {
	path := writeScenario(t, passingScenario)
	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatal(err)
	}

	out := FormatText([]*RunResult{r})
	if !strings.Contains(out, "PASS") {
		t.Errorf("expected PASS marker in output:\n%s", out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("unexpected FAIL marker in output:\n%s", out)
	}
}

func TestFormatJSONIsValid(t *testing.T) {
	path := writeScenario(t, passingScenario)
	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatal(err)
	}

	out, err := FormatJSON([]*RunResult{r})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"default-ruleset"`) {
		t.Errorf("expected scenario name in JSON:\n%s", out)
	}
}
