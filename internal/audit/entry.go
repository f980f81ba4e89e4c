package audit

// Entry is one line in the hash-chained JSONL decision log.
// All fields are flat scalars to guarantee deterministic json.Marshal
// field order for reproducible hashing.
type Entry struct {
	Timestamp string `json:"ts"`
	SessionID string `json:"session_id,omitempty"`
	Tool      string `json:"tool,omitempty"`
	FilePath  string `json:"file_path"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason,omitempty"`
	RuleID    string `json:"rule_id,omitempty"`
	RulesHash string `json:"rules_hash,omitempty"`
	PrevHash  string `json:"prev_hash"`
}
