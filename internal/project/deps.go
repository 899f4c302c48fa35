package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/manifest"
	"github.com/cfkit-labs/cfkit/internal/packagejson"
	"github.com/cfkit-labs/cfkit/internal/prompt"
	"github.com/cfkit-labs/cfkit/internal/scaffold"
	"github.com/cfkit-labs/cfkit/internal/toolchain"
	"github.com/cfkit-labs/cfkit/internal/warnings"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by every workflow. Zero fields get
// working defaults.
type Deps struct {
	Templates    fs.FS
	Copier       *scaffold.Copier
	Runner       toolchain.Runner
	Lookup       packagejson.VersionLookup
	Prompter     prompt.Prompter
	Logger       *zap.Logger
	Warnings     *warnings.Collector
	TemplateHost string
}

func (d *Deps) fill() {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Warnings == nil {
		d.Warnings = warnings.New()
	}
	if d.Templates == nil {
		d.Templates = scaffold.TemplateFS("")
	}
	if d.Copier == nil {
		d.Copier = scaffold.NewCopier(scaffold.WithLogger(d.Logger))
	}
	if d.Runner == nil {
		d.Runner = &toolchain.ExecRunner{}
	}
	if d.Lookup == nil {
		d.Lookup = &packagejson.NpmLookup{Runner: d.Runner}
	}
	if d.Prompter == nil {
		d.Prompter = prompt.NonInteractive{}
	}
}

// Result summarizes what a workflow wrote.
type Result struct {
	ProjectDir     string
	Files          []string // template files, relative to ProjectDir
	PackageJSON    bool     // package.json was updated
	Installed      bool     // npm install ran
	ProjectName    string
	Scaffolded     bool
	AnalyticsSaved *bool
}

// absDir resolves dir and makes sure it exists.
func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.Wrap(err, errs.KindFilesystem, "project.dir")
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", errs.Wrap(fmt.Errorf("creating project directory: %w", err), errs.KindFilesystem, "project.dir")
	}
	return abs, nil
}

// applyChangeSet resolves versions, merges cs into doc and writes the file.
func (d *Deps) applyChangeSet(ctx context.Context, dir string, doc *packagejson.Object, cs packagejson.ChangeSet, force bool) error {
	path := packagejson.Path(dir)

	d.Logger.Debug("resolving dependency versions", zap.Strings("packages", cs.Names()))
	versions := packagejson.ResolveVersions(ctx, cs, d.Lookup, d.Warnings)

	merged, err := packagejson.Merge(doc, cs, versions, force)
	if err != nil {
		return err
	}

	before, _ := os.ReadFile(path)
	after, err := merged.Indented()
	if err != nil {
		return fmt.Errorf("encoding package.json: %w", err)
	}
	if diff := packagejson.Diff(before, after); diff != "" {
		d.Logger.Sugar().Debugf("package.json changes:\n%s", diff)
	}

	return packagejson.Write(path, merged)
}

// checkScripts fails early when cs would overwrite existing scripts.
func checkScripts(doc *packagejson.Object, cs packagejson.ChangeSet, force bool) error {
	if force {
		return nil
	}
	// Merge reports conflicts with the full message; nothing is written here.
	_, err := packagejson.Merge(doc, packagejson.ChangeSet{Scripts: cs.Scripts}, nil, false)
	return err
}

// validateManifest turns schema issues in a rendered manifest into warnings.
func (d *Deps) validateManifest(path, label string) {
	res, err := manifest.ValidateFile(path)
	if err != nil {
		d.Warnings.Addf("Could not validate %s: %v", label, err)
		return
	}
	for _, issue := range res.Issues {
		d.Warnings.Addf("%s: %s", label, issue)
	}
}

// installDeps runs npm install in dir.
func (d *Deps) installDeps(ctx context.Context, dir string) error {
	d.Logger.Info("installing dependencies", zap.String("dir", dir))
	if err := toolchain.NpmInstall(ctx, d.Runner, dir, false); err != nil {
		if e := errs.As(err); e != nil && e.Advice == "" {
			e.Advice = "Fix the problem and run npm install yourself, or rerun with --skip-install."
		}
		return err
	}
	return nil
}

// askText prompts for a value. A disabled prompter yields def and no error.
func (d *Deps) askText(message, def string, validate func(string) error) (string, error) {
	v, err := d.Prompter.Input(message, def, validate)
	if errors.Is(err, prompt.ErrNoPrompt) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}
