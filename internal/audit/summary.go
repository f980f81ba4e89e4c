package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Summary holds decision counts for a decision log, optionally filtered to
// one host session.
type Summary struct {
	SessionID      string `json:"session_id,omitempty"`
	Total          int    `json:"total"`
	AllowCount     int    `json:"allow_count"`
	BlockCount     int    `json:"block_count"`
	FirstTimestamp string `json:"first_timestamp,omitempty"`
	LastTimestamp  string `json:"last_timestamp,omitempty"`
}

// Summarize reads a JSONL decision log and tallies decisions.
// An empty sessionID matches all entries.
func Summarize(path, sessionID string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audit: open log: %w", err)
	}
	defer f.Close()

	s := &Summary{SessionID: sessionID}
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("audit: parse line %d: %w", lineNum, err)
		}
		if sessionID != "" && entry.SessionID != sessionID {
			continue
		}

		s.Total++
		switch entry.Decision {
		case "allow":
			s.AllowCount++
		case "block":
			s.BlockCount++
		}
		if s.FirstTimestamp == "" {
			s.FirstTimestamp = entry.Timestamp
		}
		s.LastTimestamp = entry.Timestamp
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: scan log: %w", err)
	}

	return s, nil
}
