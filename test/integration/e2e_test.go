//go:build integration

package integration_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cfkit-labs/cfkit/internal/deploy"
	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/manifest"
	"github.com/cfkit-labs/cfkit/internal/packagejson"
	"github.com/cfkit-labs/cfkit/internal/project"
	"github.com/cfkit-labs/cfkit/internal/prompt"
	"github.com/cfkit-labs/cfkit/internal/scaffold"
	"github.com/cfkit-labs/cfkit/internal/toolchain"
	"github.com/cfkit-labs/cfkit/internal/warnings"
)

func newDeps() project.Deps {
	runner := &toolchain.ExecRunner{}
	return project.Deps{
		Runner:   runner,
		Lookup:   &packagejson.NpmLookup{Runner: runner},
		Prompter: prompt.NonInteractive{},
		Warnings: warnings.New(),
	}
}

// TestFullFlowInitAddPackage tests the complete flow:
// scaffold + init -> add-approuter -> add-cds -> package -> re-run init.
func TestFullFlowInitAddPackage(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	dir := env.ProjectDir

	// Step 1: Generate and initialize a project.
	d := newDeps()
	no := false
	res, err := project.Init(ctx, d, project.InitOptions{ProjectDir: dir, ProjectName: "demo", Analytics: &no})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !res.Scaffolded || !res.Installed {
		t.Errorf("Init result = %+v", res)
	}
	name, err := manifest.AppName(filepath.Join(dir, "manifest.yml"))
	if err != nil || name != "demo" {
		t.Errorf("manifest app name = %q, %v", name, err)
	}
	assertFileContains(t, filepath.Join(dir, "package.json"), `"ci-build": "npm run build"`)
	assertFileContains(t, filepath.Join(dir, "package.json"), `"@sap-cloud-sdk/core": "^1.0.0"`)
	assertFileContains(t, filepath.Join(dir, ".gitignore"), "credentials.json")
	assertFileContains(t, filepath.Join(dir, "node_modules", ".installed"), "install")
	if d.Warnings.Len() != 0 {
		t.Errorf("unexpected warnings: %v", d.Warnings.List())
	}

	// Step 2: Add an approuter, named after the manifest.
	if _, err := project.AddApprouter(ctx, newDeps(), project.ApprouterOptions{ProjectDir: dir}); err != nil {
		t.Fatalf("AddApprouter: %v", err)
	}
	assertFileContains(t, filepath.Join(dir, "approuter", "xs-security.json"), `"xsappname": "demo"`)

	// Step 3: Add CDS without installing.
	if _, err := project.AddCds(ctx, newDeps(), project.CdsOptions{ProjectDir: dir, SkipInstall: true}); err != nil {
		t.Fatalf("AddCds: %v", err)
	}
	assertFileContains(t, filepath.Join(dir, "package.json"), `"cds-build"`)
	assertFileContains(t, filepath.Join(dir, ".gitignore"), "gen/")

	// Step 4: Package the deployment and zip it.
	pkg, err := deploy.Package(ctx, deploy.Options{ProjectDir: dir, Zip: true}, &toolchain.ExecRunner{}, warnings.New(), nil)
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	out := filepath.Join(dir, deploy.DefaultOutputDir)
	assertFileExists(t, filepath.Join(out, "package.json"))
	assertFileExists(t, filepath.Join(out, "dist", "main.js"))
	assertFileNotExists(t, filepath.Join(out, "src", "main.ts"))
	assertFileContains(t, filepath.Join(out, "node_modules", ".installed"), "--production")
	assertFileExists(t, pkg.Archive)

	// Step 5: Re-running init reports conflicts and leaves files alone.
	before := readFile(t, filepath.Join(dir, "package.json"))
	_, err = project.Init(ctx, newDeps(), project.InitOptions{ProjectDir: dir, SkipInstall: true, Analytics: &no})
	if !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("second Init error = %v, want conflict", err)
	}
	if readFile(t, filepath.Join(dir, "package.json")) != before {
		t.Error("package.json changed by a failed init")
	}

	// Step 6: With force, init is idempotent.
	if _, err := project.Init(ctx, newDeps(), project.InitOptions{ProjectDir: dir, SkipInstall: true, Force: true, Analytics: &no}); err != nil {
		t.Fatalf("forced Init: %v", err)
	}
	gitignore := readFile(t, filepath.Join(dir, ".gitignore"))
	if strings.Count(gitignore, "credentials.json") != 1 {
		t.Errorf(".gitignore has duplicated patterns:\n%s", gitignore)
	}
}

func TestAddCxServerFromTemplateHost(t *testing.T) {
	env := setupTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# " + strings.TrimPrefix(r.URL.Path, "/") + "\n"))
	}))
	defer server.Close()

	d := newDeps()
	d.Copier = scaffold.NewCopier(scaffold.WithHTTPClient(server.Client()))
	d.TemplateHost = server.URL

	res, err := project.AddCxServer(context.Background(), d, project.CxServerOptions{ProjectDir: env.ProjectDir, Windows: true})
	if err != nil {
		t.Fatalf("AddCxServer: %v", err)
	}
	if len(res.Files) != 3 {
		t.Errorf("Files = %v", res.Files)
	}
	assertFileContains(t, filepath.Join(env.ProjectDir, "cx-server", "cx-server.bat"), "# cx-server.bat")
}
