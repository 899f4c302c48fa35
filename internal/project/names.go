package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/packagejson"
)

// ScaffoldStartCommand starts a project generated by the Nest CLI.
const ScaffoldStartCommand = "npm run start:prod"

// DefaultStartCommand is used when nothing better is known.
const DefaultStartCommand = "npm start"

var packageNamePattern = regexp.MustCompile(`^(?:@[a-z0-9-*~][a-z0-9-*._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// ValidatePackageName checks name against npm's package naming rules.
func ValidatePackageName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name must not be empty")
	case len(name) > 214:
		return fmt.Errorf("name must be at most 214 characters")
	case strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"):
		return fmt.Errorf("name must not start with %q", name[:1])
	case !packageNamePattern.MatchString(name):
		return fmt.Errorf("%q is not a valid npm package name (lowercase letters, digits, -, . and _ only)", name)
	}
	return nil
}

// appName turns a package name into a Cloud Foundry application name by
// dropping the npm scope.
func appName(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		if i := strings.Index(pkg, "/"); i >= 0 {
			return pkg[i+1:]
		}
	}
	return pkg
}

// sanitizeName derives a package name from a directory name.
func sanitizeName(dir string) string {
	name := strings.ToLower(filepath.Base(dir))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.', r == '_', r == '~':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.TrimLeft(b.String(), "._")
	if out == "" {
		return "app"
	}
	return out
}

// resolveProjectName picks the name from the flag, package.json, a prompt
// or the directory name, in that order.
func (d *Deps) resolveProjectName(flag string, doc *packagejson.Object, dir string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if doc != nil {
		if name, ok := doc.String("name"); ok && name != "" {
			return name, nil
		}
	}
	return d.askText("Enter project name (for use in manifest.yml)", sanitizeName(dir), ValidatePackageName)
}

// resolveStartCommand picks the command from the flag, the project kind,
// the start script or a prompt, in that order.
func (d *Deps) resolveStartCommand(flag string, isScaffold bool, doc *packagejson.Object) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if isScaffold {
		return ScaffoldStartCommand, nil
	}
	if doc != nil {
		if scripts, err := doc.Object("scripts"); err == nil && scripts.Has("start") {
			return DefaultStartCommand, nil
		}
	}
	return d.askText("Enter the command to start your application", DefaultStartCommand, nil)
}
