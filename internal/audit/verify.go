package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// hashPattern is the wire format of every hash in the log: the chain links
// and the ruleset hash recorded with each decision.
var hashPattern = regexp.MustCompile(`^sha256:[0-9a-f]{64}$`)

// VerifyResult holds the outcome of a hash chain verification.
type VerifyResult struct {
	Valid     bool   `json:"valid"`
	Lines     int    `json:"lines"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// Verify reads a JSONL decision log and validates the hash chain. Each
// entry's prev_hash must be the SHA-256 of the previous line (genesis for
// the first), and a recorded rules_hash must be well-formed. Returns
// Valid=true if the chain is intact, or details about the first bad entry.
func Verify(path string) VerifyResult {
	f, err := os.Open(path)
	if err != nil {
		return VerifyResult{Error: fmt.Sprintf("open: %v", err)}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	var prevLineBytes []byte

	for scanner.Scan() {
		lineNum++
		raw := scanner.Bytes()

		// Make a copy since scanner reuses the buffer
		line := make([]byte, len(raw))
		copy(line, raw)

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return VerifyResult{
				Error:     fmt.Sprintf("parse error: %v", err),
				ErrorLine: lineNum,
			}
		}

		if entry.RulesHash != "" && !hashPattern.MatchString(entry.RulesHash) {
			return VerifyResult{
				Error:     fmt.Sprintf("malformed rules_hash %q", entry.RulesHash),
				ErrorLine: lineNum,
			}
		}

		expectedHash := GenesisHash
		if lineNum > 1 {
			expectedHash = HashLine(prevLineBytes)
		}
		if entry.PrevHash != expectedHash {
			return VerifyResult{
				Error:     fmt.Sprintf("hash mismatch: expected %s, got %s", expectedHash, entry.PrevHash),
				ErrorLine: lineNum,
			}
		}

		prevLineBytes = line
	}

	if err := scanner.Err(); err != nil {
		return VerifyResult{Error: fmt.Sprintf("scan: %v", err)}
	}

	return VerifyResult{Valid: true, Lines: lineNum}
}
