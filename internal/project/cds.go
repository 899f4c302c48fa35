package project

import (
	"context"

	"github.com/cfkit-labs/cfkit/internal/gitignore"
	"github.com/cfkit-labs/cfkit/internal/packagejson"
	"github.com/cfkit-labs/cfkit/internal/scaffold"
)

// CdsOptions configures AddCds.
type CdsOptions struct {
	ProjectDir  string
	Force       bool
	SkipInstall bool
}

// AddCds adds a minimal CDS data model and service to an existing project
// along with the cds scripts and dependencies.
func AddCds(ctx context.Context, d Deps, opts CdsOptions) (*Result, error) {
	d.fill()

	dir, err := absDir(opts.ProjectDir)
	if err != nil {
		return nil, err
	}

	doc, err := packagejson.Read(packagejson.Path(dir))
	if err != nil {
		return nil, err
	}
	cs, err := packagejson.Combine(packagejson.CdsPreset)
	if err != nil {
		return nil, err
	}
	if err := checkScripts(doc, cs, opts.Force); err != nil {
		return nil, err
	}

	descriptors, err := scaffold.Resolve(d.Templates, []string{scaffold.BundleAddCds}, dir, nil)
	if err != nil {
		return nil, err
	}
	copied, err := d.Copier.Copy(ctx, dir, descriptors, nil, opts.Force)
	if err != nil {
		return nil, err
	}
	res := &Result{ProjectDir: dir, Files: copied.Files}

	if err := d.applyChangeSet(ctx, dir, doc, cs, opts.Force); err != nil {
		return nil, err
	}
	res.PackageJSON = true

	gitignore.Modify(dir, true, d.Warnings)

	if !opts.SkipInstall {
		if err := d.installDeps(ctx, dir); err != nil {
			return nil, err
		}
		res.Installed = true
	}
	return res, nil
}
