package project

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/cfkit-labs/cfkit/internal/analytics"
	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/gitignore"
	"github.com/cfkit-labs/cfkit/internal/manifest"
	"github.com/cfkit-labs/cfkit/internal/packagejson"
	"github.com/cfkit-labs/cfkit/internal/prompt"
	"github.com/cfkit-labs/cfkit/internal/scaffold"
	"github.com/cfkit-labs/cfkit/internal/toolchain"
	"go.uber.org/zap"
)

// InitOptions configures Init.
type InitOptions struct {
	ProjectDir      string
	ProjectName     string
	StartCommand    string
	Force           bool
	SkipInstall     bool
	NoScaffold      bool
	FrontendScripts bool
	AddCds          bool
	Analytics       *bool // nil asks the user
}

// Init prepares a project for Cloud Foundry. An empty directory is first
// populated by the Nest CLI.
func Init(ctx context.Context, d Deps, opts InitOptions) (*Result, error) {
	d.fill()
	log := d.Logger

	dir, err := absDir(opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	res := &Result{ProjectDir: dir}

	var doc *packagejson.Object
	isScaffold := !packagejson.Exists(dir)
	if isScaffold {
		if opts.NoScaffold {
			e := errs.New(errs.KindUsage, "project.init", "no package.json found in %s", dir)
			return nil, e.WithAdvice("Run init in an existing Node.js project or drop --no-scaffold to generate one.")
		}
	} else {
		doc, err = packagejson.Read(packagejson.Path(dir))
		if err != nil {
			return nil, err
		}
	}

	name, err := d.resolveProjectName(opts.ProjectName, doc, dir)
	if err != nil {
		return nil, err
	}
	startCmd, err := d.resolveStartCommand(opts.StartCommand, isScaffold, doc)
	if err != nil {
		return nil, err
	}
	res.ProjectName = name
	log.Debug("resolved project", zap.String("name", name), zap.String("start", startCmd), zap.Bool("scaffold", isScaffold))

	cs, err := packagejson.ComputeChangeSet(isScaffold, opts.FrontendScripts, opts.AddCds)
	if err != nil {
		return nil, err
	}

	bundles := []string{scaffold.BundleInit}
	if opts.AddCds {
		bundles = append(bundles, scaffold.BundleAddCds)
	}
	descriptors, err := scaffold.Resolve(d.Templates, bundles, dir, nil)
	if err != nil {
		return nil, err
	}

	// Everything that can fail without side effects runs first.
	if doc != nil {
		if err := checkScripts(doc, cs, opts.Force); err != nil {
			return nil, err
		}
	}
	if err := scaffold.CheckConflicts(descriptors, opts.Force); err != nil {
		return nil, err
	}

	if isScaffold {
		log.Info("generating project with the Nest CLI", zap.String("name", name))
		if err := toolchain.ScaffoldNest(ctx, d.Runner, dir, name); err != nil {
			return nil, err
		}
		res.Scaffolded = true
		doc, err = packagejson.Read(packagejson.Path(dir))
		if err != nil {
			return nil, errs.Wrap(err, errs.KindTool, "project.scaffold")
		}
	}

	log.Debug("copying templates", zap.Strings("bundles", bundles))
	if err := d.Copier.Materialize(ctx, descriptors, scaffold.Options{
		"projectName":  appName(name),
		"startCommand": startCmd,
	}); err != nil {
		return nil, err
	}
	res.Files = scaffold.RelPaths(dir, descriptors)

	d.validateManifest(filepath.Join(dir, manifest.FileName), manifest.FileName)

	if err := d.applyChangeSet(ctx, dir, doc, cs, opts.Force); err != nil {
		return nil, err
	}
	res.PackageJSON = true

	gitignore.Modify(dir, opts.AddCds, d.Warnings)

	if !opts.SkipInstall {
		if err := d.installDeps(ctx, dir); err != nil {
			return nil, err
		}
		res.Installed = true
	}

	enabled, err := d.analyticsConsent(opts.Analytics)
	if err != nil {
		return nil, err
	}
	if _, err := analytics.Save(dir, enabled); err != nil {
		return nil, err
	}
	res.AnalyticsSaved = &enabled

	return res, nil
}

func (d *Deps) analyticsConsent(flag *bool) (bool, error) {
	if flag != nil {
		return *flag, nil
	}
	ok, err := d.Prompter.Confirm("Do you want to provide anonymous usage analytics to help us improve the CLI?", false)
	if errors.Is(err, prompt.ErrNoPrompt) {
		return false, nil
	}
	return ok, err
}
