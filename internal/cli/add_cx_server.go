package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/platform"
	"github.com/cfkit-labs/cfkit/internal/project"
	"github.com/spf13/cobra"
)

var cxServerFlags struct {
	ProjectDir string `flag:"project-dir" validate:"required"`
	Force      bool
	Windows    bool
}

var addCxServerCmd = &cobra.Command{
	Use:   "add-cx-server",
	Short: "Download the cx-server life-cycle scripts",
	Long: heredoc.Doc(`
		Download the scripts that start and stop a Jenkins build server for the
		CI pipeline into the cx-server directory of the project.

		The scripts are fetched from the template_host configuration value.
	`),
	Args: usageArgs(cobra.NoArgs),
	RunE: runAddCxServer,
}

func init() {
	f := addCxServerCmd.Flags()
	f.StringVar(&cxServerFlags.ProjectDir, "project-dir", ".", "Path to the project directory")
	f.BoolVar(&cxServerFlags.Force, "force", false, "Overwrite existing files")
	f.BoolVar(&cxServerFlags.Windows, "windows", platform.IsWindows(), "Also download the Windows batch wrapper")
	rootCmd.AddCommand(addCxServerCmd)
}

func runAddCxServer(cmd *cobra.Command, args []string) error {
	if err := validateFlags("add-cx-server", &cxServerFlags); err != nil {
		return err
	}

	d := newDeps(cmd)
	res, err := project.AddCxServer(cmd.Context(), d, project.CxServerOptions{
		ProjectDir: cxServerFlags.ProjectDir,
		Force:      cxServerFlags.Force,
		Windows:    cxServerFlags.Windows,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Downloaded cx-server scripts")
	printFiles(out, res.Files)
	finish(cmd, d)
	return nil
}
