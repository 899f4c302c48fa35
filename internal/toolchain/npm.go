package toolchain

import (
	"context"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
)

// NpmInstall runs npm install in dir, limited to production dependencies
// when production is set.
func NpmInstall(ctx context.Context, r Runner, dir string, production bool) error {
	args := []string{"install"}
	if production {
		args = append(args, "--production")
	}
	_, err := r.Run(ctx, dir, "npm", args...)
	return err
}

// NpmView returns the latest published version of an npm package.
func NpmView(ctx context.Context, r Runner, dir, name string) (string, error) {
	out, err := r.Run(ctx, dir, "npm", "view", name, "version")
	if err != nil {
		return "", errs.Wrap(err, errs.KindVersionLookup, "npm.view")
	}
	v := strings.TrimSpace(out.Stdout)
	if v == "" {
		return "", errs.New(errs.KindVersionLookup, "npm.view", "npm view %s printed no version", name)
	}
	return v, nil
}

// ScaffoldNest generates a Nest project named projectName into dir. No
// dependencies are installed.
func ScaffoldNest(ctx context.Context, r Runner, dir, projectName string) error {
	_, err := r.Run(ctx, dir, "npx", "@nestjs/cli", "new", projectName,
		"--skip-install", "--package-manager", "npm", "--directory", ".")
	return err
}
