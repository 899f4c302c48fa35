package deploy

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/toolchain"
	"github.com/cfkit-labs/cfkit/internal/warnings"
)

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"package.json":              `{"name":"demo"}`,
		"package-lock.json":         `{}`,
		"index.js":                  "module.exports = {}",
		"dist/main.js":              "console.log(1)",
		"dist/main.js.map":          "{}",
		"dist/sub/util.js":          "exports.x = 1",
		"src/main.ts":               "export {}",
		"node_modules/dep/index.js": "ignored",
		"dist/node_modules/x/y.js":  "ignored",
		"deployment/stale-file.txt": "stale",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPackageDefaults(t *testing.T) {
	dir := setupProject(t)
	runner := &toolchain.FakeRunner{}
	w := warnings.New()

	res, err := Package(context.Background(), Options{ProjectDir: dir}, runner, w, nil)
	if err != nil {
		t.Fatalf("Package() error: %v", err)
	}

	files := append([]string(nil), res.Files...)
	sort.Strings(files)
	want := "dist/main.js,dist/main.js.map,dist/sub/util.js,index.js,package-lock.json,package.json"
	if got := strings.Join(files, ","); got != want {
		t.Errorf("files = %s, want %s", got, want)
	}

	if _, err := os.Stat(filepath.Join(dir, "deployment", "stale-file.txt")); !os.IsNotExist(err) {
		t.Error("output directory was not recreated")
	}

	calls := runner.Calls()
	if len(calls) != 1 || calls[0].String() != "npm install --production" {
		t.Fatalf("calls = %v, want npm install --production", calls)
	}
	if calls[0].Dir != filepath.Join(dir, "deployment") {
		t.Errorf("install dir = %s", calls[0].Dir)
	}
	if w.Len() != 0 {
		t.Errorf("unexpected warnings: %v", w.List())
	}
}

func TestPackageExcludeAndZip(t *testing.T) {
	dir := setupProject(t)
	runner := &toolchain.FakeRunner{}

	res, err := Package(context.Background(), Options{
		ProjectDir:  dir,
		OutputDir:   "out",
		Exclude:     []string{"**/*.map"},
		SkipInstall: true,
		Zip:         true,
	}, runner, warnings.New(), nil)
	if err != nil {
		t.Fatalf("Package() error: %v", err)
	}

	for _, f := range res.Files {
		if strings.HasSuffix(f, ".map") {
			t.Errorf("excluded file copied: %s", f)
		}
	}
	if len(runner.Calls()) != 0 {
		t.Error("npm install ran despite SkipInstall")
	}

	if res.Archive != filepath.Join(dir, "out.zip") {
		t.Fatalf("Archive = %q", res.Archive)
	}
	zr, err := zip.OpenReader(res.Archive)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	if got := strings.Join(names, ","); got != "dist/main.js,dist/sub/util.js,index.js,package-lock.json,package.json" {
		t.Errorf("archive entries = %s", got)
	}
}

func TestPackageRepeatSkipsOwnOutput(t *testing.T) {
	dir := setupProject(t)
	opts := Options{ProjectDir: dir, Include: []string{"**/*"}, SkipInstall: true, Zip: true}

	for i := 0; i < 2; i++ {
		res, err := Package(context.Background(), opts, nil, warnings.New(), nil)
		if err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
		for _, f := range res.Files {
			if strings.HasPrefix(f, "deployment") || strings.Contains(f, "node_modules") {
				t.Errorf("run %d copied %s", i+1, f)
			}
		}
	}
}

func TestPackageRejectsBadOptions(t *testing.T) {
	dir := setupProject(t)
	tests := []struct {
		name string
		opts Options
	}{
		{"output is project", Options{ProjectDir: dir, OutputDir: "."}},
		{"output outside project", Options{ProjectDir: dir, OutputDir: "../elsewhere"}},
		{"bad glob", Options{ProjectDir: dir, Include: []string{"dist/[x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Package(context.Background(), tt.opts, nil, warnings.New(), nil)
			if !errs.IsKind(err, errs.KindUsage) {
				t.Errorf("Package() error = %v, want usage error", err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "main.ts")); err != nil {
		t.Error("rejected run touched the project")
	}
}

func TestPackageNoMatchesWarns(t *testing.T) {
	dir := setupProject(t)
	w := warnings.New()
	_, err := Package(context.Background(), Options{ProjectDir: dir, Include: []string{"*.nothing"}}, &toolchain.FakeRunner{}, w, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w.Len() != 2 {
		t.Errorf("warnings = %v, want empty-output and skipped-install warnings", w.List())
	}
}
