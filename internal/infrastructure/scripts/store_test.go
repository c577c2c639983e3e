package scripts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DingxDon/Task-Automate/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "library"), "")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("greet", "print('hi')"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	body, err := store.Load("greet")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if body != "print('hi')" {
		t.Fatalf("Load() = %q, want %q", body, "print('hi')")
	}
}

func TestSaveOverwritesOnNameCollision(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("job", "one"); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("job", "two"); err != nil {
		t.Fatal(err)
	}
	body, err := store.Load("job")
	if err != nil {
		t.Fatal(err)
	}
	if body != "two" {
		t.Fatalf("Load() after overwrite = %q, want %q", body, "two")
	}
}

func TestSaveValidationHasNoSideEffect(t *testing.T) {
	store := newTestStore(t)

	var ve *domain.ValidationError
	if err := store.Save("", "code"); !errors.As(err, &ve) {
		t.Fatalf("Save(empty name) error = %v, want ValidationError", err)
	}
	if err := store.Save("name", "   \n"); !errors.As(err, &ve) {
		t.Fatalf("Save(blank body) error = %v, want ValidationError", err)
	}
	if err := store.Save("../escape", "code"); !errors.As(err, &ve) {
		t.Fatalf("Save(traversal name) error = %v, want ValidationError", err)
	}

	if _, err := os.Stat(store.Root()); !os.IsNotExist(err) {
		t.Fatal("store root was created by rejected saves")
	}
}

func TestListReturnsStoredNames(t *testing.T) {
	store := newTestStore(t)

	if names, err := store.List(); err != nil || names != nil {
		t.Fatalf("List() on missing root = %v, %v; want nil, nil", names, err)
	}

	for _, name := range []string{"alpha", "beta"} {
		if err := store.Save(name, "pass"); err != nil {
			t.Fatal(err)
		}
	}
	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("List() = %v, want two names", names)
	}
}

func TestDeleteMissingReportsNotFound(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("keep", "pass"); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete("nonexistent"); !errors.Is(err, domain.ErrScriptNotFound) {
		t.Fatalf("Delete(missing) error = %v, want ErrScriptNotFound", err)
	}

	// The miss left the rest of the store untouched.
	if _, err := store.Load("keep"); err != nil {
		t.Fatalf("Load(keep) after failed delete = %v", err)
	}

	if err := store.Delete("keep"); err != nil {
		t.Fatalf("Delete(keep) error = %v", err)
	}
	if _, err := store.Load("keep"); !errors.Is(err, domain.ErrScriptNotFound) {
		t.Fatalf("Load(deleted) error = %v, want ErrScriptNotFound", err)
	}
}

func TestLoadMissingReportsNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Load("ghost"); !errors.Is(err, domain.ErrScriptNotFound) {
		t.Fatalf("Load(missing) error = %v, want ErrScriptNotFound", err)
	}
}
