// Package runner executes generated scripts on the host interpreter.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// PythonRunner writes the script to a temp file and runs it with the host
// interpreter, full privileges, no timeout and no resource limits. Any fault
// raised by the script is captured into the report rather than propagated;
// the pipeline must survive a failing program and still report its duration.
type PythonRunner struct {
	interpreter string
	logger      ports.Logger
}

// NewPythonRunner builds a runner for the given interpreter (python3 default).
func NewPythonRunner(interpreter string, logger ports.Logger) *PythonRunner {
	if interpreter == "" {
		interpreter = "python3"
	}
	return &PythonRunner{interpreter: interpreter, logger: logger}
}

// Run implements ports.ScriptRunner.
func (r *PythonRunner) Run(ctx context.Context, code string) domain.ExecutionReport {
	start := time.Now()

	path, cleanup, err := writeTemp(code)
	if err != nil {
		return domain.ExecutionReport{
			Fault:    fmt.Sprintf("stage script: %v", err),
			Duration: time.Since(start),
		}
	}
	defer cleanup()

	cmd := exec.CommandContext(ctx, r.interpreter, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	report := domain.ExecutionReport{
		Succeeded: runErr == nil,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Duration:  time.Since(start),
	}
	if runErr != nil {
		report.Fault = faultSummary(stderr.String(), runErr)
		r.logger.Warn("script execution faulted", map[string]interface{}{
			"fault":    report.Fault,
			"duration": report.Duration.String(),
		})
	}
	return report
}

func writeTemp(code string) (string, func(), error) {
	file, err := os.CreateTemp("", "taskauto-*.py")
	if err != nil {
		return "", nil, err
	}
	if _, err := file.WriteString(code); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", nil, err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", nil, err
	}
	name := file.Name()
	return name, func() { os.Remove(filepath.Clean(name)) }, nil
}

// faultSummary prefers the interpreter's final traceback line over the bare
// exit status.
func faultSummary(stderr string, err error) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		if line := strings.TrimSpace(lines[idx]); line != "" {
			return line
		}
	}
	return err.Error()
}

var _ ports.ScriptRunner = (*PythonRunner)(nil)
