package scenario

// Case is one write-policy test case within a scenario.
type Case struct {
	FilePath string `yaml:"file_path"`
	Content  string `yaml:"content"`
	Expect   string `yaml:"expect"` // allow | block
}

// Scenario is a named collection of gate test cases.
type Scenario struct {
	Name  string `yaml:"name"`
	Rules string `yaml:"rules,omitempty"` // optional ruleset path override
	Cases []Case `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index    int    `json:"index"`
	Passed   bool   `json:"passed"`
	FilePath string `json:"file_path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason,omitempty"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
