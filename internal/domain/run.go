package domain

import "time"

// RunReport is the canonical result of one pipeline invocation.
type RunReport struct {
	ID           string
	Mode         Mode
	Instruction  string
	Generation   GenerationResult
	Dependencies []string
	Installs     InstallOutcome
	Execution    *ExecutionReport
	SavedAs      string
	StartedAt    time.Time
}

// EventKind distinguishes pipeline events emitted during an async invocation.
type EventKind string

const (
	EventStatus EventKind = "status"
	EventChunk  EventKind = "chunk"
	EventDone   EventKind = "done"
	EventError  EventKind = "error"
)

// PipelineEvent is emitted by the pipeline worker into the caller's channel.
// The caller's goroutine owns all presentation of these events.
type PipelineEvent struct {
	Kind     EventKind
	Status   string
	Progress int
	Chunk    string
	Report   *RunReport
	Err      error
}

// RunRecord is the persisted form of a pipeline invocation.
type RunRecord struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Mode          Mode      `json:"mode"`
	Instruction   string    `json:"instruction"`
	Code          string    `json:"code"`
	Dependencies  string    `json:"dependencies"`
	InstallFailed bool      `json:"install_failed"`
	Executed      bool      `json:"executed"`
	Succeeded     bool      `json:"succeeded"`
	Fault         string    `json:"fault"`
	GenerationMS  int64     `json:"generation_ms"`
	ExecutionMS   int64     `json:"execution_ms"`
}
