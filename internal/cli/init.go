package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/writegate/writegate/internal/gate"
)

var (
	initOutput string
	initForce  bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Where to write the ruleset (default: ~/.writegate/rules.yaml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing ruleset file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default ruleset and print hook setup instructions",
	RunE:  runInit,
}

const hookSnippet = `{
  "hooks": {
    "PreToolUse": [
      {
        "matcher": "Write|Edit",
        "hooks": [
          {
            "type": "command",
            "command": "writegate hook"
          }
        ]
      }
    ]
  }
}`

func runInit(cmd *cobra.Command, args []string) error {
	path := initOutput
	if path == "" {
		path = gate.DefaultPath()
		if path == "" {
			return fmt.Errorf("cannot resolve home directory, use --output")
		}
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(gate.DefaultConfigYAML()), 0600); err != nil {
		return fmt.Errorf("write ruleset: %w", err)
	}

	fmt.Printf("Wrote default ruleset to %s\n\n", path)
	fmt.Println("Register the hook in your assistant's settings.json:")
	fmt.Println()
	fmt.Println(hookSnippet)
	return nil
}
