// Package scaffold is the template copy engine behind every cfkit command
// that writes boilerplate into a project.
//
// A run has three phases. Resolve walks one or more template bundles and
// produces CopyDescriptors, each pairing a Source with an absolute
// destination. CheckConflicts refuses to continue when a destination exists,
// unless force is set, in which case the existing files are removed first.
// Copier.Materialize then writes every descriptor concurrently: .tmpl files
// are rendered with text/template, other local files are copied verbatim and
// remote sources are fetched over HTTP.
//
// Bundles ship embedded in the binary under templates/. A user can point the
// templates_dir config key at a directory with the same layout to override
// them.
package scaffold
