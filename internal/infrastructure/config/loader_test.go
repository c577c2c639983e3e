package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DingxDon/Task-Automate/internal/domain"
)

func TestLoadSeedsDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if cfg.ModelID() != domain.DefaultModelID {
		t.Fatalf("ModelID() = %q, want %q", cfg.ModelID(), domain.DefaultModelID)
	}
	if cfg.RequestBudget() <= 0 {
		t.Fatalf("RequestBudget() = %d, want positive", cfg.RequestBudget())
	}
	if cfg.Scripts.Dir == "" {
		t.Fatal("Scripts.Dir not hydrated")
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`config_format_version: "1"
generation:
  model_id: gemini-2.0-flash
  requests_per_minute: 5
scripts:
  dir: /tmp/scripts
shortcuts:
  run: F5
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ModelID() != "gemini-2.0-flash" {
		t.Errorf("ModelID() = %q", cfg.ModelID())
	}
	if cfg.RequestBudget() != 5 {
		t.Errorf("RequestBudget() = %d, want 5", cfg.RequestBudget())
	}
	if cfg.Scripts.Dir != "/tmp/scripts" {
		t.Errorf("Scripts.Dir = %q", cfg.Scripts.Dir)
	}
	if cfg.Shortcut("run") != "F5" {
		t.Errorf("Shortcut(run) = %q, want F5", cfg.Shortcut("run"))
	}
	// Unset fields hydrate, they do not clobber what the user wrote.
	if cfg.APIKeyEnvVar() != domain.DefaultAPIKeyEnvVar {
		t.Errorf("APIKeyEnvVar() = %q", cfg.APIKeyEnvVar())
	}
}

func TestSaveRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	ctx := context.Background()

	cfg, err := loader.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	cfg.SetShortcut("save", "Ctrl+Shift+S")
	if err := loader.Save(ctx, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := loader.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Shortcut("save") != "Ctrl+Shift+S" {
		t.Fatalf("Shortcut(save) after reload = %q", reloaded.Shortcut("save"))
	}
}
