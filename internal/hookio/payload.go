// Package hookio decodes the host's PreToolUse hook payload. The host
// (an agentic coding assistant) pipes one JSON object to stdin per pending
// tool call; the gate only ever needs the target path and the data being
// written. Decoding is deliberately forgiving: a payload the gate cannot
// read must degrade to empty fields, never to a failure that blocks the
// host integration.
package hookio

import (
	"encoding/json"
	"io"
)

// maxPayloadBytes bounds the stdin read. Hook payloads carry at most one
// file's content; anything larger is truncated rather than buffered.
const maxPayloadBytes = 32 << 20

// ToolInput is the tool parameter object inside a hook payload.
// Write tools carry content; edit tools carry new_string.
type ToolInput struct {
	FilePath  string `json:"file_path"`
	Content   string `json:"content"`
	NewString string `json:"new_string"`
}

// Payload is one PreToolUse invocation from the host.
type Payload struct {
	SessionID     string    `json:"session_id"`
	HookEventName string    `json:"hook_event_name"`
	ToolName      string    `json:"tool_name"`
	ToolInput     ToolInput `json:"tool_input"`
}

// Read decodes a payload from r. Malformed JSON or missing fields yield an
// empty payload, not an error: the gate evaluates empty strings, which
// always allow.
func Read(r io.Reader) *Payload {
	var p Payload
	dec := json.NewDecoder(io.LimitReader(r, maxPayloadBytes))
	if err := dec.Decode(&p); err != nil {
		return &Payload{}
	}
	return &p
}

// Data returns the content being written: the full new content for writes,
// or the inserted substring for edits. Empty if the payload carried neither.
func (p *Payload) Data() string {
	if p.ToolInput.Content != "" {
		return p.ToolInput.Content
	}
	return p.ToolInput.NewString
}
