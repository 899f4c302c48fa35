package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/spf13/viper"
)

func setupHome(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv("CFKIT_HOME", dir)
	return dir
}

func TestDefaults(t *testing.T) {
	setupHome(t)
	Load()

	if got := Get(KeyLogLevel); got != "info" {
		t.Errorf("log_level = %q, want %q", got, "info")
	}
	if got := Get(KeyVersionLookup); got != LookupNpm {
		t.Errorf("version_lookup = %q, want %q", got, LookupNpm)
	}
	if got := Get(KeyNpmRegistry); !strings.HasPrefix(got, "https://") {
		t.Errorf("npm_registry = %q, want https URL", got)
	}
}

func TestSetWritesFile(t *testing.T) {
	dir := setupHome(t)
	Load()

	if err := Set(KeyTemplateHost, "https://mirror.example.com"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "mirror.example.com") {
		t.Errorf("config file does not contain value:\n%s", data)
	}
	if got := Get(KeyTemplateHost); got != "https://mirror.example.com" {
		t.Errorf("Get() = %q after Set", got)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	setupHome(t)
	Load()
	if err := Set("colour", "blue"); !errs.IsKind(err, errs.KindUsage) {
		t.Fatalf("Set() error = %v, want usage error for unknown key", err)
	}
}

func TestSetRejectsBadLookup(t *testing.T) {
	setupHome(t)
	Load()
	if err := Set(KeyVersionLookup, "yarn"); !errs.IsKind(err, errs.KindUsage) {
		t.Fatalf("Set() error = %v, want usage error for invalid version_lookup", err)
	}
}

func TestEnvOverride(t *testing.T) {
	setupHome(t)
	t.Setenv("CFKIT_LOG_LEVEL", "debug")
	Load()
	if got := Get(KeyLogLevel); got != "debug" {
		t.Errorf("log_level = %q, want env override %q", got, "debug")
	}
}
