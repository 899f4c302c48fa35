// Package cli defines the Cobra command tree for the cfkit CLI. Each file
// in this package registers one top-level command (init, add-cds, package,
// etc.) with the root command. Commands parse and validate flags, build the
// shared collaborators and delegate to internal/project or internal/deploy.
package cli
