package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/project"
	"github.com/spf13/cobra"
)

var initFlags struct {
	ProjectDir      string `flag:"project-dir" validate:"required"`
	ProjectName     string `flag:"project-name" validate:"omitempty,pkgname"`
	StartCommand    string `flag:"start-command"`
	Force           bool
	SkipInstall     bool
	NoScaffold      bool
	FrontendScripts bool
	AddCds          bool
	Analytics       bool
	NoAnalytics     bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Prepare a Node.js project for Cloud Foundry",
	Long: heredoc.Doc(`
		Add the manifest, CI pipeline files and package.json scripts a project
		needs to be deployed to Cloud Foundry.

		If the project directory has no package.json, a new project is generated
		with the Nest CLI first. Existing files are never overwritten unless
		--force is given; all conflicts are reported before anything is written.
	`),
	Example: heredoc.Doc(`
		$ cfkit init --project-name my-app
		$ cfkit init --project-dir ./service --no-scaffold --add-cds
	`),
	Args: usageArgs(cobra.NoArgs),
	RunE: runInit,
}

func init() {
	f := initCmd.Flags()
	f.StringVar(&initFlags.ProjectDir, "project-dir", ".", "Path to the project directory")
	f.StringVar(&initFlags.ProjectName, "project-name", "", "Application name used in manifest.yml")
	f.StringVar(&initFlags.StartCommand, "start-command", "", "Command that starts the application on Cloud Foundry")
	f.BoolVar(&initFlags.Force, "force", false, "Overwrite existing files and scripts")
	f.BoolVar(&initFlags.SkipInstall, "skip-install", false, "Do not run npm install")
	f.BoolVar(&initFlags.NoScaffold, "no-scaffold", false, "Fail instead of generating a project when package.json is missing")
	f.BoolVar(&initFlags.FrontendScripts, "frontend-scripts", false, "Add placeholder scripts for frontend test stages")
	f.BoolVar(&initFlags.AddCds, "add-cds", false, "Also add a CDS data model and service")
	f.BoolVar(&initFlags.Analytics, "analytics", false, "Enable anonymous usage analytics without asking")
	f.BoolVar(&initFlags.NoAnalytics, "no-analytics", false, "Disable anonymous usage analytics without asking")
	initCmd.MarkFlagsMutuallyExclusive("analytics", "no-analytics")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := validateFlags("init", &initFlags); err != nil {
		return err
	}

	opts := project.InitOptions{
		ProjectDir:      initFlags.ProjectDir,
		ProjectName:     initFlags.ProjectName,
		StartCommand:    initFlags.StartCommand,
		Force:           initFlags.Force,
		SkipInstall:     initFlags.SkipInstall,
		NoScaffold:      initFlags.NoScaffold,
		FrontendScripts: initFlags.FrontendScripts,
		AddCds:          initFlags.AddCds,
	}
	switch {
	case initFlags.Analytics:
		opts.Analytics = boolPtr(true)
	case initFlags.NoAnalytics:
		opts.Analytics = boolPtr(false)
	}

	d := newDeps(cmd)
	res, err := project.Init(cmd.Context(), d, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Scaffolded {
		printSuccess(out, "Generated a new project %s", res.ProjectName)
	}
	printSuccess(out, "Added Cloud Foundry files for %s", res.ProjectName)
	printFiles(out, res.Files)
	if res.PackageJSON {
		printSuccess(out, "Updated package.json")
	}
	if res.Installed {
		printSuccess(out, "Installed dependencies")
	}
	finish(cmd, d)
	return nil
}

func boolPtr(b bool) *bool { return &b }
