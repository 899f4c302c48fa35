package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/project"
	"github.com/spf13/cobra"
)

var approuterFlags struct {
	ProjectDir  string `flag:"project-dir" validate:"required"`
	ProjectName string `flag:"project-name" validate:"omitempty,pkgname"`
	Force       bool
}

var addApprouterCmd = &cobra.Command{
	Use:   "add-approuter",
	Short: "Add an approuter setup to the project",
	Long: heredoc.Doc(`
		Write an approuter with its manifest, xs-app.json and xs-security.json
		into the approuter directory of the project.

		The application name is read from manifest.yml unless --project-name
		is given.
	`),
	Args: usageArgs(cobra.NoArgs),
	RunE: runAddApprouter,
}

func init() {
	f := addApprouterCmd.Flags()
	f.StringVar(&approuterFlags.ProjectDir, "project-dir", ".", "Path to the project directory")
	f.StringVar(&approuterFlags.ProjectName, "project-name", "", "Application name the approuter routes to")
	f.BoolVar(&approuterFlags.Force, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(addApprouterCmd)
}

func runAddApprouter(cmd *cobra.Command, args []string) error {
	if err := validateFlags("add-approuter", &approuterFlags); err != nil {
		return err
	}

	d := newDeps(cmd)
	res, err := project.AddApprouter(cmd.Context(), d, project.ApprouterOptions{
		ProjectDir:  approuterFlags.ProjectDir,
		ProjectName: approuterFlags.ProjectName,
		Force:       approuterFlags.Force,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Added an approuter for %s", res.ProjectName)
	printFiles(out, res.Files)
	finish(cmd, d)
	return nil
}
