package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/project"
	"github.com/spf13/cobra"
)

var cdsFlags struct {
	ProjectDir  string `flag:"project-dir" validate:"required"`
	Force       bool
	SkipInstall bool
}

var addCdsCmd = &cobra.Command{
	Use:   "add-cds",
	Short: "Add a CDS data model and service to the project",
	Long: heredoc.Doc(`
		Add a minimal CDS data model and service, the cds-build and cds-deploy
		scripts and the @sap/cds dependencies to an existing project.
	`),
	Args: usageArgs(cobra.NoArgs),
	RunE: runAddCds,
}

func init() {
	f := addCdsCmd.Flags()
	f.StringVar(&cdsFlags.ProjectDir, "project-dir", ".", "Path to the project directory")
	f.BoolVar(&cdsFlags.Force, "force", false, "Overwrite existing files and scripts")
	f.BoolVar(&cdsFlags.SkipInstall, "skip-install", false, "Do not run npm install")
	rootCmd.AddCommand(addCdsCmd)
}

func runAddCds(cmd *cobra.Command, args []string) error {
	if err := validateFlags("add-cds", &cdsFlags); err != nil {
		return err
	}

	d := newDeps(cmd)
	res, err := project.AddCds(cmd.Context(), d, project.CdsOptions{
		ProjectDir:  cdsFlags.ProjectDir,
		Force:       cdsFlags.Force,
		SkipInstall: cdsFlags.SkipInstall,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Added CDS files")
	printFiles(out, res.Files)
	printSuccess(out, "Updated package.json")
	if res.Installed {
		printSuccess(out, "Installed dependencies")
	}
	finish(cmd, d)
	return nil
}
