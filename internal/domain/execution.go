package domain

import "time"

// ExecutionReport captures the outcome of running a generated script.
// Duration is populated even when the script faults.
type ExecutionReport struct {
	Succeeded bool
	Fault     string
	Stdout    string
	Stderr    string
	Duration  time.Duration
}
