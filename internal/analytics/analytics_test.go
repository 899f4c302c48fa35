package analytics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/google/uuid"
)

func TestLoad_Missing(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Error("expected nil consent for missing file")
	}
}

func TestSaveEnabled(t *testing.T) {
	dir := t.TempDir()

	c, err := Save(dir, true)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := uuid.Parse(c.Salt); err != nil {
		t.Errorf("salt %q is not a UUID: %v", c.Salt, err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Enabled || loaded.Salt != c.Salt {
		t.Errorf("loaded = %+v, want %+v", loaded, c)
	}

	// Saving again keeps the salt.
	again, err := Save(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if again.Salt != c.Salt {
		t.Errorf("salt changed from %q to %q", c.Salt, again.Salt)
	}
}

func TestSaveDisabled(t *testing.T) {
	dir := t.TempDir()
	if _, err := Save(dir, true); err != nil {
		t.Fatal(err)
	}
	if _, err := Save(dir, false); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "{\n  \"enabled\": false\n}" {
		t.Errorf("file = %q", data)
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{enabled"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !errs.IsKind(err, errs.KindParse) {
		t.Errorf("Load() error = %v, want parse error", err)
	}
	// Save recovers by writing a fresh file.
	if _, err := Save(dir, true); err != nil {
		t.Errorf("Save() over malformed file: %v", err)
	}
}
