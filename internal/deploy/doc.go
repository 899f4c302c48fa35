// Package deploy assembles the directory cf push uploads. It copies the
// files selected by include and exclude globs from a project into an output
// directory, installs production dependencies there and can compress the
// result into a zip archive.
package deploy
