package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/branding"
	"github.com/cfkit-labs/cfkit/internal/config"
	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose  bool
	flagNoPrompt bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: heredoc.Docf(`
		%s prepares Node.js projects for deployment to Cloud Foundry.

		It generates the manifest and CI pipeline files, adds approuter and CDS
		setups, patches package.json and .gitignore, and assembles a deployment
		directory from a project.
	`, branding.DisplayName()),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug logs, including the package.json diff")
	rootCmd.PersistentFlags().BoolVar(&flagNoPrompt, "no-prompt", false, "Never ask questions; use flags and defaults only")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errs.Wrap(err, errs.KindUsage, cmd.Name())
	})
}

// Execute runs the root command with build info injected via ldflags. A
// failure is printed to stderr before it is returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && errs.As(err) == nil && strings.HasPrefix(err.Error(), "unknown command") {
		err = errs.Wrap(err, errs.KindUsage, branding.CLIName())
	}
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return errs.Wrap(fn(cmd, args), errs.KindUsage, cmd.Name())
	}
}
