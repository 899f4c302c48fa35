package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
)

// CheckConflicts fails when two descriptors share a destination or when a
// destination already exists. With force, existing destinations are removed
// instead. Nothing is deleted unless every check passes.
func CheckConflicts(descriptors []CopyDescriptor, force bool) error {
	seen := make(map[string]bool, len(descriptors))
	var dupes []string
	for _, d := range descriptors {
		key := filepath.Clean(d.FileName)
		if seen[key] {
			dupes = append(dupes, d.FileName)
			continue
		}
		seen[key] = true
	}
	if len(dupes) > 0 {
		return errs.New(errs.KindConflict, "scaffold.conflicts",
			"more than one template writes to %s", strings.Join(dupes, ", "))
	}

	var existing []string
	for _, d := range descriptors {
		if _, err := os.Lstat(d.FileName); err == nil {
			existing = append(existing, d.FileName)
		} else if !os.IsNotExist(err) {
			return errs.Wrap(fmt.Errorf("checking %s: %w", d.FileName, err), errs.KindFilesystem, "scaffold.conflicts")
		}
	}

	if len(existing) == 0 {
		return nil
	}

	if !force {
		return conflictError(existing)
	}

	for _, f := range existing {
		if err := os.Remove(f); err != nil {
			return errs.Wrap(fmt.Errorf("removing %s: %w", f, err), errs.KindFilesystem, "scaffold.conflicts")
		}
	}
	return nil
}

func conflictError(paths []string) error {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = fmt.Sprintf("%q", filepath.Base(p))
	}

	if len(names) == 1 {
		return errs.New(errs.KindConflict, "scaffold.conflicts",
			"A file with the name %s already exists.", names[0]).
			WithAdvice("Use --force to overwrite it.")
	}
	return errs.New(errs.KindConflict, "scaffold.conflicts",
		"Files with the names %s already exist.", strings.Join(names, ", ")).
		WithAdvice("Use --force to overwrite them.")
}
