package scaffold

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:templates
var embedded embed.FS

// Bundle names shipped with cfkit.
const (
	BundleInit         = "init"
	BundleAddCds       = "add-cds"
	BundleAddApprouter = "add-approuter"
)

// TemplateFS returns the filesystem bundles are resolved against. An empty
// dir selects the embedded templates.
func TemplateFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "templates" is valid.
		panic(err)
	}
	return sub
}
