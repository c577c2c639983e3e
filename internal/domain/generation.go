// Package domain defines core business entities and value objects for Task-Automate.
//
// The domain layer is independent of infrastructure concerns and represents pure
// business logic and data structures.
package domain

import "time"

// Mode selects which pipeline a request runs through.
type Mode string

const (
	// ModeAutomation generates a Python script, installs its dependencies and runs it.
	ModeAutomation Mode = "automation"
	// ModeQA answers a question in plain text; no extraction or execution.
	ModeQA Mode = "qa"
	// ModeWebDev generates a web page and saves it to the script store.
	ModeWebDev Mode = "webdev"
)

// GenerationRequest captures a single user instruction. Immutable once submitted.
type GenerationRequest struct {
	Instruction    string
	Attachment     []byte
	AttachmentMIME string
	Mode           Mode
}

// HasAttachment reports whether a binary payload should be forwarded to the model.
func (r GenerationRequest) HasAttachment() bool {
	return len(r.Attachment) > 0
}

// StreamChunk is one increment of a streaming generation. A chunk with a
// non-nil Err is terminal; any text accumulated before it must be discarded.
type StreamChunk struct {
	Text string
	Err  error
}

// GenerationResult is assembled once per request after the stream completes.
type GenerationResult struct {
	RawText       string
	ExtractedCode string
	Elapsed       time.Duration
}
