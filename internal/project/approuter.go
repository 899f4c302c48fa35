package project

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/manifest"
	"github.com/cfkit-labs/cfkit/internal/prompt"
	"github.com/cfkit-labs/cfkit/internal/scaffold"
	"go.uber.org/zap"
)

// ApprouterDir is where add-approuter writes its files.
const ApprouterDir = "approuter"

// ApprouterOptions configures AddApprouter.
type ApprouterOptions struct {
	ProjectDir  string
	ProjectName string
	Force       bool
}

// AddApprouter writes an approuter setup for the project's application into
// the approuter directory.
func AddApprouter(ctx context.Context, d Deps, opts ApprouterOptions) (*Result, error) {
	d.fill()

	dir, err := absDir(opts.ProjectDir)
	if err != nil {
		return nil, err
	}

	name := opts.ProjectName
	if name == "" {
		name, err = d.appNameFromManifest(dir)
		if err != nil {
			return nil, err
		}
	}

	target := filepath.Join(dir, ApprouterDir)
	descriptors, err := scaffold.Resolve(d.Templates, []string{scaffold.BundleAddApprouter}, target, nil)
	if err != nil {
		return nil, err
	}

	copied, err := d.Copier.Copy(ctx, target, descriptors, scaffold.Options{"projectName": appName(name)}, opts.Force)
	if err != nil {
		return nil, err
	}

	d.validateManifest(filepath.Join(target, manifest.FileName), ApprouterDir+"/"+manifest.FileName)

	res := &Result{ProjectDir: dir, ProjectName: name}
	for _, f := range copied.Files {
		res.Files = append(res.Files, ApprouterDir+"/"+f)
	}
	return res, nil
}

// appNameFromManifest reads the application name from manifest.yml. When
// the manifest is missing or unreadable the failure is logged and the user
// is asked instead; without a prompter the failure is returned.
func (d *Deps) appNameFromManifest(dir string) (string, error) {
	path := filepath.Join(dir, manifest.FileName)
	name, err := manifest.AppName(path)
	if err == nil {
		return name, nil
	}
	d.Logger.Warn("could not read the application name from manifest.yml", zap.Error(err))

	v, perr := d.Prompter.Input("Enter project name as maintained in Cloud Foundry", "", ValidatePackageName)
	if errors.Is(perr, prompt.ErrNoPrompt) {
		if e := errs.As(err); e != nil {
			return "", e.WithAdvice("Fix manifest.yml or pass the name with --project-name.")
		}
		return "", err
	}
	if perr != nil {
		return "", perr
	}
	d.storeAppName(path, v)
	return v, nil
}

// storeAppName writes a prompted name into a manifest that parses but lists
// its first application without one, so the next run finds it there.
// Missing or malformed manifests are left alone.
func (d *Deps) storeAppName(path, name string) {
	m, err := manifest.Read(path)
	if err != nil || len(m.Applications) == 0 {
		return
	}
	if err := manifest.SetAppName(path, name); err != nil {
		d.Warnings.Addf("Could not write the application name to %s: %v", manifest.FileName, err)
		return
	}
	d.Logger.Info("stored application name in manifest.yml", zap.String("name", name))
}
