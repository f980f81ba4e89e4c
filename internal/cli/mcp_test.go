package cli

import (
	"testing"

	"github.com/writegate/writegate/internal/gate"
)

func TestWatchPathsDefaultsToRulesetLocation(t *testing.T) {
	paths := watchPaths("")
	if len(paths) != 1 {
		t.Fatalf("expected 1 watch path, got %d", len(paths))
	}
	if paths[0] != gate.DefaultPath() {
		t.Fatalf("expected default ruleset path %q, got %q", gate.DefaultPath(), paths[0])
	}
	if paths[0] == "" {
		t.Fatal("expected non-empty default watch path")
	}
}

func TestWatchPathsKeepsExplicitPath(t *testing.T) {
	paths := watchPaths("/etc/writegate/rules.yaml")
	if len(paths) != 1 || paths[0] != "/etc/writegate/rules.yaml" {
		t.Fatalf("unexpected watch paths: %v", paths)
	}
}
