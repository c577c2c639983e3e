// Package pip ensures Python modules are importable on the host, installing
// missing ones through the host package manager.
package pip

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// commandRunner abstracts subprocess invocation so tests can fake pip.
type commandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

// Installer checks module availability against the host interpreter and
// installs missing modules with pip. No version pinning, no retry: each
// module is independent and the latest available package is taken.
type Installer struct {
	interpreter string
	run         commandRunner
	logger      ports.Logger
}

// NewInstaller builds an Installer for the given Python interpreter.
func NewInstaller(interpreter string, logger ports.Logger) *Installer {
	if interpreter == "" {
		interpreter = "python3"
	}
	return &Installer{
		interpreter: interpreter,
		run:         runCommand,
		logger:      logger,
	}
}

// Ensure checks whether the module is already resolvable and installs a
// same-named pip package when it is not.
func (i *Installer) Ensure(ctx context.Context, module string) domain.InstallResult {
	if i.resolvable(ctx, module) {
		return domain.InstallResult{Module: module, Status: domain.StatusAlreadyPresent}
	}

	i.logger.Info("installing module", map[string]interface{}{"module": module})
	_, stderr, err := i.run(ctx, i.interpreter, "-m", "pip", "install", module)
	if err != nil {
		return domain.InstallResult{
			Module: module,
			Status: domain.StatusFailed,
			Reason: installFailureReason(stderr, err),
		}
	}
	return domain.InstallResult{Module: module, Status: domain.StatusInstalled}
}

// EnsureAll applies Ensure to every module. The returned outcome always
// covers the full input set so callers can enforce the fail-fast policy.
func (i *Installer) EnsureAll(ctx context.Context, modules []string) domain.InstallOutcome {
	outcome := make(domain.InstallOutcome, len(modules))
	for _, module := range modules {
		outcome[module] = i.Ensure(ctx, module)
	}
	return outcome
}

// resolvable asks the interpreter whether the module can be imported,
// mirroring importlib.util.find_spec without importing the module.
func (i *Installer) resolvable(ctx context.Context, module string) bool {
	probe := fmt.Sprintf(
		"import importlib.util, sys; sys.exit(0 if importlib.util.find_spec(%q) else 1)",
		module,
	)
	_, _, err := i.run(ctx, i.interpreter, "-c", probe)
	return err == nil
}

func installFailureReason(stderr string, err error) string {
	if summary := lastNonEmptyLine(stderr); summary != "" {
		return summary
	}
	return err.Error()
}

// lastNonEmptyLine condenses pip's stderr to its final message, which carries
// the actionable error.
func lastNonEmptyLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		if line := strings.TrimSpace(lines[idx]); line != "" {
			return line
		}
	}
	return ""
}

func runCommand(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

var _ ports.PackageInstaller = (*Installer)(nil)
