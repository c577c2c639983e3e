package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// DoctorService runs environment diagnostics: everything a pipeline
// invocation is about to depend on.
type DoctorService struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryStore
}

// Run executes checks and returns a report.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format %s", cfg.ConfigFormatVersion)))

	checks = append(checks, interpreterCheck(ctx, cfg.Interpreter()))
	checks = append(checks, pipCheck(ctx, cfg.Interpreter()))
	checks = append(checks, apiKeyCheck(cfg))
	checks = append(checks, scriptDirCheck(cfg.Scripts.Dir))

	if s.History != nil {
		if _, err := s.History.Records(1, ""); err != nil {
			checks = append(checks, warn("Run history", err.Error()))
		} else {
			checks = append(checks, ok("Run history", "database reachable"))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func interpreterCheck(ctx context.Context, interpreter string) domain.HealthCheck {
	path, err := exec.LookPath(interpreter)
	if err != nil {
		return fail("Python interpreter", fmt.Sprintf("%s not found in PATH", interpreter))
	}
	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return warn("Python interpreter", fmt.Sprintf("%s --version failed: %v", interpreter, err))
	}
	return ok("Python interpreter", string(out))
}

func pipCheck(ctx context.Context, interpreter string) domain.HealthCheck {
	if err := exec.CommandContext(ctx, interpreter, "-m", "pip", "--version").Run(); err != nil {
		return fail("pip", "pip module not available; installs will fail")
	}
	return ok("pip", "module available")
}

func apiKeyCheck(cfg domain.Config) domain.HealthCheck {
	if cfg.ResolveAPIKey() == "" {
		return fail("API key", fmt.Sprintf("%s is not set", cfg.APIKeyEnvVar()))
	}
	return ok("API key", fmt.Sprintf("%s set", cfg.APIKeyEnvVar()))
}

func scriptDirCheck(dir string) domain.HealthCheck {
	if dir == "" {
		return warn("Script directory", "not configured")
	}
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Script directory", err.Error())
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), domain.SecureFilePermissions); err != nil {
		return fail("Script directory", fmt.Sprintf("not writable: %v", err))
	}
	os.Remove(probe)
	return ok("Script directory", dir)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
