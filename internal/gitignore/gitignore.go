// Package gitignore appends the paths a Cloud Foundry project must keep out
// of version control to an existing .gitignore.
package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/warnings"
)

// FileName is the ignore file patched in the project root.
const FileName = ".gitignore"

// BasePatterns are added to every project.
var BasePatterns = []string{
	"credentials.json",
	"/s4hana_pipeline",
	"/deployment",
}

// CdsPatterns are added when the project uses CDS.
var CdsPatterns = []string{
	"_out",
	"*.db",
	"connection.properties",
	"default-*.json",
	"gen/",
	"target/",
}

// Patterns returns the full pattern list for a project.
func Patterns(addCds bool) []string {
	out := append([]string(nil), BasePatterns...)
	if addCds {
		out = append(out, CdsPatterns...)
	}
	return out
}

// Modify appends every pattern not yet present in projectDir/.gitignore. A
// missing or unwritable file is never fatal: a warning tells the user which
// paths to ignore by hand.
func Modify(projectDir string, addCds bool, w *warnings.Collector) {
	patterns := Patterns(addCds)
	path := filepath.Join(projectDir, FileName)

	content, err := os.ReadFile(path)
	if err != nil {
		w.Add(manualWarning(patterns, "No .gitignore file found!"))
		return
	}

	if err := appendMissing(path, string(content), patterns); err != nil {
		w.Add(manualWarning(patterns, fmt.Sprintf("Could not update .gitignore: %v", err)))
	}
}

func appendMissing(path, content string, patterns []string) error {
	var missing []string
	for _, p := range patterns {
		if !strings.Contains(content, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	// Ensure there's a newline before our addition.
	block := strings.Join(missing, "\n") + "\n"
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		block = "\n" + block
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("opening .gitignore for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("writing to .gitignore: %w", err)
	}
	return nil
}

func manualWarning(patterns []string, reason string) string {
	return reason + " If you are using git, make sure to ignore the following paths:\n  " +
		strings.Join(patterns, "\n  ")
}
