package domain

import (
	"fmt"
	"sort"
	"strings"
)

// InstallStatus classifies the outcome of ensuring one module.
type InstallStatus string

const (
	StatusInstalled      InstallStatus = "installed"
	StatusAlreadyPresent InstallStatus = "already_present"
	StatusFailed         InstallStatus = "failed"
)

// InstallResult records what happened for a single module.
type InstallResult struct {
	Module string
	Status InstallStatus
	Reason string
}

// Failed reports whether the module could not be made available.
func (r InstallResult) Failed() bool {
	return r.Status == StatusFailed
}

// InstallOutcome maps every scanned module name to its result. The pipeline
// guarantees the map covers the full dependency set before execution is
// considered.
type InstallOutcome map[string]InstallResult

// AnyFailed reports whether at least one module failed to install.
func (o InstallOutcome) AnyFailed() bool {
	for _, r := range o {
		if r.Failed() {
			return true
		}
	}
	return false
}

// FailedModules lists the modules that could not be installed, sorted for
// stable messages.
func (o InstallOutcome) FailedModules() []string {
	var names []string
	for name, r := range o {
		if r.Failed() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// InstallError aborts the pipeline before execution under the fail-fast
// install policy. Outcome still covers the complete dependency set.
type InstallError struct {
	Outcome InstallOutcome
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install: %s; skipping script execution",
		strings.Join(e.Outcome.FailedModules(), ", "))
}
