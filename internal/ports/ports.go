// Package ports defines the interfaces between the application core and its
// adapters. The pipeline services depend only on these abstractions; concrete
// implementations live in the infrastructure layer and are injected fully
// formed at construction time.
package ports

import (
	"context"

	"github.com/DingxDon/Task-Automate/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.taskauto/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
	Save(context.Context, domain.Config) error
}

// Generator wraps a single streaming call to the remote generation service.
// The returned channel delivers text chunks in order and is closed when the
// service signals completion; a chunk carrying a non-nil Err is terminal and
// invalidates everything received before it. Implementations record exactly
// one admission with the rate limiter per call, at submission time.
type Generator interface {
	Stream(ctx context.Context, req domain.GenerationRequest) (<-chan domain.StreamChunk, error)
}

// RateLimiter tracks request admissions over a trailing window. It is
// advisory: Admit never blocks or refuses, callers read CurrentLoad and
// decide for themselves. All methods are safe for concurrent use.
type RateLimiter interface {
	Admit()
	CurrentLoad() int
	TotalCount() uint64
	Limit() int
}

// PackageInstaller makes external modules available to the host runtime.
// EnsureAll returns a complete outcome map covering every requested module.
type PackageInstaller interface {
	Ensure(ctx context.Context, module string) domain.InstallResult
	EnsureAll(ctx context.Context, modules []string) domain.InstallOutcome
}

// ScriptRunner executes a script body, converting any runtime fault into the
// report instead of propagating it. Isolated behind an interface so the
// in-host runner can later be swapped for a sandboxed one.
type ScriptRunner interface {
	Run(ctx context.Context, code string) domain.ExecutionReport
}

// ScriptStore persists named scripts to a directory, one file per script.
type ScriptStore interface {
	Save(name, body string) error
	List() ([]string, error)
	Load(name string) (string, error)
	Delete(name string) error
}

// HistoryStore records completed pipeline invocations.
type HistoryStore interface {
	Save(record domain.RunRecord) error
	Records(limit int, search string) ([]domain.RunRecord, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
