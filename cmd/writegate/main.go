// Command writegate is a write-policy gate for agentic coding assistants.
// It runs as a PreToolUse hook and blocks file writes that reference
// forbidden package-manager tooling in build and CI files.
package main

import "github.com/writegate/writegate/internal/cli"

func main() {
	cli.Execute()
}
