package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/deploy"
	"github.com/spf13/cobra"
)

var packageFlags struct {
	ProjectDir  string `flag:"project-dir" validate:"required"`
	OutputDir   string `flag:"output-dir" validate:"required"`
	Include     string `flag:"include" validate:"required"`
	Exclude     string `flag:"exclude"`
	SkipInstall bool
	Zip         bool
}

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Assemble the project files for deployment",
	Long: heredoc.Doc(`
		Copy the files matched by --include (and not by --exclude) into the
		output directory, replacing its previous content, and install the
		production dependencies there.

		Patterns are comma-separated and relative to the project directory.
		"*" and "?" match within a path segment, "**" matches any number of
		segments. node_modules and .git are never copied.
	`),
	Example: heredoc.Doc(`
		$ cfkit package
		$ cfkit package --include "package.json,dist/**/*" --exclude "dist/**/*.map" --zip
	`),
	Args: usageArgs(cobra.NoArgs),
	RunE: runPackage,
}

func init() {
	f := packageCmd.Flags()
	f.StringVar(&packageFlags.ProjectDir, "project-dir", ".", "Path to the project directory")
	f.StringVarP(&packageFlags.OutputDir, "output-dir", "o", deploy.DefaultOutputDir, "Output directory, relative to the project directory")
	f.StringVarP(&packageFlags.Include, "include", "i", deploy.DefaultInclude, "Comma-separated globs of files to copy")
	f.StringVarP(&packageFlags.Exclude, "exclude", "e", "", "Comma-separated globs of files to leave out")
	f.BoolVar(&packageFlags.SkipInstall, "skip-install", false, "Do not run npm install --production")
	f.BoolVar(&packageFlags.Zip, "zip", false, "Also write <output-dir>.zip")
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	if err := validateFlags("package", &packageFlags); err != nil {
		return err
	}

	d := newDeps(cmd)
	res, err := deploy.Package(cmd.Context(), deploy.Options{
		ProjectDir:  packageFlags.ProjectDir,
		OutputDir:   packageFlags.OutputDir,
		Include:     deploy.SplitGlobs(packageFlags.Include),
		Exclude:     deploy.SplitGlobs(packageFlags.Exclude),
		SkipInstall: packageFlags.SkipInstall,
		Zip:         packageFlags.Zip,
	}, d.Runner, d.Warnings, d.Logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Copied %d files to %s", len(res.Files), res.OutputDir)
	if res.Archive != "" {
		printSuccess(out, "Wrote %s", res.Archive)
	}
	finish(cmd, d)
	return nil
}
