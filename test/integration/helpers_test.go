//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // CFKIT_HOME
	BinDir     string // fake npm and npx, first on PATH
	ProjectDir string // A mock project directory
}

const fakeNpx = `#!/bin/sh
# npx @nestjs/cli new <name> --skip-install ...
cat > package.json <<JSON
{
  "name": "$3",
  "version": "0.0.1",
  "scripts": {
    "build": "nest build",
    "start:prod": "node dist/main"
  },
  "dependencies": {
    "@nestjs/core": "^10.0.0"
  }
}
JSON
printf 'node_modules\n' > .gitignore
mkdir -p dist src
echo "console.log('main')" > dist/main.js
echo "// source" > src/main.ts
`

const fakeNpm = `#!/bin/sh
case "$1" in
  view) echo "1.0.0" ;;
  install) mkdir -p node_modules && echo "$*" > node_modules/.installed ;;
  *) echo "unexpected npm $*" >&2; exit 1 ;;
esac
`

// setupTestEnv creates isolated temp directories and puts fake npm and npx
// executables first on PATH, so the real exec runner can be used.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		BinDir:     t.TempDir(),
		ProjectDir: filepath.Join(t.TempDir(), "demo"),
	}

	t.Setenv("CFKIT_HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	for name, script := range map[string]string{"npx": fakeNpx, "npm": fakeNpm} {
		if err := os.WriteFile(filepath.Join(env.BinDir, name), []byte(script), 0755); err != nil {
			t.Fatalf("writing fake %s: %v", name, err)
		}
	}

	return env
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
