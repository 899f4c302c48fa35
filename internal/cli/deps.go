package cli

import (
	"io"

	"github.com/cfkit-labs/cfkit/internal/config"
	"github.com/cfkit-labs/cfkit/internal/logger"
	"github.com/cfkit-labs/cfkit/internal/packagejson"
	"github.com/cfkit-labs/cfkit/internal/project"
	"github.com/cfkit-labs/cfkit/internal/prompt"
	"github.com/cfkit-labs/cfkit/internal/scaffold"
	"github.com/cfkit-labs/cfkit/internal/toolchain"
	"github.com/cfkit-labs/cfkit/internal/warnings"
	"github.com/spf13/cobra"
)

// newDeps builds the collaborators for one command invocation from config
// and the persistent flags.
func newDeps(cmd *cobra.Command) project.Deps {
	log := logger.New(logger.Config{
		Level:   config.Get(config.KeyLogLevel),
		Verbose: flagVerbose,
		Output:  cmd.ErrOrStderr(),
	})

	// Tool output is only shown in verbose mode; failures carry its tail.
	var toolOut io.Writer
	if flagVerbose {
		toolOut = cmd.ErrOrStderr()
	}
	runner := &toolchain.ExecRunner{Stdout: toolOut, Stderr: toolOut}

	return project.Deps{
		Templates:    scaffold.TemplateFS(config.Get(config.KeyTemplatesDir)),
		Copier:       scaffold.NewCopier(scaffold.WithLogger(log)),
		Runner:       runner,
		Lookup:       newLookup(runner),
		Prompter:     prompt.New(flagNoPrompt),
		Logger:       log,
		Warnings:     warnings.New(),
		TemplateHost: config.Get(config.KeyTemplateHost),
	}
}

// newLookup picks the version source from config. Results are cached in
// the config directory.
func newLookup(r toolchain.Runner) packagejson.VersionLookup {
	var base packagejson.VersionLookup = &packagejson.NpmLookup{Runner: r}
	if config.Get(config.KeyVersionLookup) == config.LookupRegistry {
		base = &packagejson.RegistryLookup{BaseURL: config.Get(config.KeyNpmRegistry)}
	}
	return &packagejson.CachedLookup{Lookup: base, Dir: config.Dir()}
}

// finish prints the warnings summary and syncs the logger.
func finish(cmd *cobra.Command, d project.Deps) {
	printWarnings(cmd.OutOrStdout(), d.Warnings.List())
	_ = d.Logger.Sync()
}
