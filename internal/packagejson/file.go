package packagejson

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/cfkit-labs/cfkit/internal/errs"
)

// FileName is the manifest npm reads.
const FileName = "package.json"

// Path returns the package.json path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether dir contains a package.json.
func Exists(dir string) bool {
	_, err := os.Stat(Path(dir))
	return err == nil
}

// Read parses the package.json at path. Malformed JSON is a parse error.
func Read(path string) (*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e := &errs.Error{Kind: errs.KindFilesystem, Op: "packagejson.read", Err: fmt.Errorf("no package.json found at %s: %w", path, err)}
			return nil, e.WithAdvice("Run this command inside a Node.js project.")
		}
		return nil, errs.Wrap(fmt.Errorf("reading %s: %w", path, err), errs.KindFilesystem, "packagejson.read")
	}
	doc, err := ParseObject(data)
	if err != nil {
		return nil, errs.Wrap(fmt.Errorf("parsing %s: %w", path, err), errs.KindParse, "packagejson.read")
	}
	return doc, nil
}

// Write encodes doc to path with two-space indentation.
func Write(path string, doc *Object) error {
	data, err := doc.Indented()
	if err != nil {
		return fmt.Errorf("encoding package.json: %w", err)
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return errs.Wrap(fmt.Errorf("writing %s: %w", path, err), errs.KindFilesystem, "packagejson.write")
	}
	return nil
}

// Diff returns a unified diff between two encodings of package.json, or ""
// when they are equal.
func Diff(before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	return udiff.Unified("a/"+FileName, "b/"+FileName, string(before), string(after))
}
