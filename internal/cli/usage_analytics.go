package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/analytics"
	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/prompt"
	"github.com/spf13/cobra"
)

var analyticsFlags struct {
	ProjectDir string `flag:"project-dir" validate:"required"`
	Choice     string `flag:"choice" validate:"omitempty,oneof=enable disable"`
}

var usageAnalyticsCmd = &cobra.Command{
	Use:   "usage-analytics [enable|disable]",
	Short: "Turn anonymous usage analytics on or off for a project",
	Long: heredoc.Docf(`
		Record whether anonymous usage analytics may be collected for the
		project. The decision is stored in %s in the project directory.

		Without an argument the current setting is shown and you are asked
		for a new one.
	`, analytics.FileName),
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runUsageAnalytics,
}

func init() {
	usageAnalyticsCmd.Flags().StringVar(&analyticsFlags.ProjectDir, "project-dir", ".", "Path to the project directory")
	rootCmd.AddCommand(usageAnalyticsCmd)
}

func runUsageAnalytics(cmd *cobra.Command, args []string) error {
	const op = "usage-analytics"
	analyticsFlags.Choice = ""
	if len(args) == 1 {
		analyticsFlags.Choice = args[0]
	}
	if err := validateFlags(op, &analyticsFlags); err != nil {
		return err
	}

	dir, err := filepath.Abs(analyticsFlags.ProjectDir)
	if err != nil {
		return errs.Wrap(err, errs.KindFilesystem, op)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return errs.New(errs.KindFilesystem, op, "project directory %s does not exist", dir)
	}

	current, err := analytics.Load(dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var enabled bool
	switch analyticsFlags.Choice {
	case "enable":
		enabled = true
	case "disable":
		enabled = false
	default:
		if current != nil {
			fmt.Fprintf(out, "Usage analytics are currently %s.\n", stateName(current.Enabled))
		}
		def := current != nil && current.Enabled
		enabled, err = prompt.New(flagNoPrompt).Confirm("Do you want to provide anonymous usage analytics to help us improve the CLI?", def)
		if errors.Is(err, prompt.ErrNoPrompt) {
			return errs.New(errs.KindUsage, op, "no choice given").
				WithAdvice("Run with enable or disable as argument when prompts are unavailable.")
		}
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
	}

	if _, err := analytics.Save(dir, enabled); err != nil {
		return err
	}
	printSuccess(out, "Usage analytics %s", stateName(enabled))
	return nil
}

func stateName(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
