package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/writegate/writegate/internal/gate"
	"github.com/writegate/writegate/internal/scenario"
)

var (
	checkScenario    string
	checkRules       string
	checkFile        string
	checkContentFile string
	checkFormat      string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkScenario, "scenario", "", "Glob pattern for scenario YAML files")
	checkCmd.Flags().StringVar(&checkRules, "rules", "", "Path to ruleset YAML (default: ~/.writegate/rules.yaml)")
	checkCmd.Flags().StringVar(&checkFile, "file", "", "Destination path of the write to check")
	checkCmd.Flags().StringVar(&checkContentFile, "content-file", "", "File holding the content to check (default: stdin)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run the gate against a write or scenario files",
	Long: "Two modes.\n\n" +
		"Single write: --file <path> with content from --content-file or stdin.\n" +
		"Prints the decision; exit code 0 if allowed, 2 if blocked.\n\n" +
		"Scenario: --scenario <glob> loads scenario YAML files and asserts each\n" +
		"case's expected decision. Exit code 0 if all cases pass, 1 if any fail.\n" +
		"Use in CI to gate ruleset changes.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkScenario != "" {
		return runCheckScenarios()
	}
	if checkFile == "" {
		return fmt.Errorf("either --scenario or --file is required")
	}
	return runCheckSingle()
}

func runCheckSingle() error {
	g, err := gate.Load(checkRules)
	if err != nil {
		return fmt.Errorf("load ruleset: %w", err)
	}

	var content []byte
	if checkContentFile != "" {
		content, err = os.ReadFile(checkContentFile)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
	} else {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	res := g.Evaluate(checkFile, string(content))

	switch checkFormat {
	case "json":
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		if res.Decision == gate.Block {
			fmt.Println(res.Diagnostic())
		} else {
			fmt.Printf("allow: %s\n", checkFile)
		}
	}

	if res.Decision == gate.Block {
		os.Exit(exitBlock)
	}
	return nil
}

func runCheckScenarios() error {
	matches, err := filepath.Glob(checkScenario)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no scenario files match pattern: %s", checkScenario)
	}

	var results []*scenario.RunResult
	for _, path := range matches {
		r, err := scenario.LoadAndRun(path, checkRules)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, r)
	}

	switch checkFormat {
	case "json":
		out, err := scenario.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(scenario.FormatText(results))
	}

	// Exit 1 if any scenario has failures
	for _, r := range results {
		if r.Failed > 0 {
			os.Exit(1)
		}
	}

	return nil
}
