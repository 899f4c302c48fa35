package scaffold

import (
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
)

// DefaultExclude lists names skipped while walking a bundle.
var DefaultExclude = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// CopyDescriptor pairs a source with its absolute destination path.
type CopyDescriptor struct {
	Source   Source
	FileName string
}

// Resolve walks each bundle in fsys and returns one descriptor per file,
// mirroring the bundle layout under targetDir. A nil exclude uses
// DefaultExclude.
func Resolve(fsys fs.FS, bundles []string, targetDir string, exclude map[string]bool) ([]CopyDescriptor, error) {
	if exclude == nil {
		exclude = DefaultExclude
	}

	var descriptors []CopyDescriptor
	for _, bundle := range bundles {
		info, err := fs.Stat(fsys, bundle)
		if err != nil {
			return nil, errs.Wrap(fmt.Errorf("template bundle %q: %w", bundle, err), errs.KindFilesystem, "scaffold.resolve")
		}
		if !info.IsDir() {
			return nil, errs.New(errs.KindFilesystem, "scaffold.resolve", "template bundle %q is not a directory", bundle)
		}

		err = fs.WalkDir(fsys, bundle, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p == bundle {
				return nil
			}
			if exclude[d.Name()] {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			rel := strings.TrimPrefix(p, bundle+"/")
			var src Source = Literal{FS: fsys, Path: p}
			if isTemplate(rel) {
				rel = strings.TrimSuffix(rel, TemplateSuffix)
				src = Renderable{FS: fsys, Path: p}
			}

			descriptors = append(descriptors, CopyDescriptor{
				Source:   src,
				FileName: filepath.Join(targetDir, filepath.FromSlash(rel)),
			})
			return nil
		})
		if err != nil {
			return nil, errs.Wrap(fmt.Errorf("walking bundle %q: %w", bundle, err), errs.KindFilesystem, "scaffold.resolve")
		}
	}

	return descriptors, nil
}

// ResolveRemote returns one descriptor per URL, named after the last path
// segment of the URL and placed in targetDir.
func ResolveRemote(urls []string, targetDir string) ([]CopyDescriptor, error) {
	descriptors := make([]CopyDescriptor, 0, len(urls))
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, errs.Wrap(fmt.Errorf("invalid template URL %q: %w", raw, err), errs.KindUsage, "scaffold.resolve")
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, errs.New(errs.KindUsage, "scaffold.resolve", "template URL %q must be absolute http(s)", raw)
		}
		name := path.Base(u.Path)
		if name == "/" || name == "." {
			return nil, errs.New(errs.KindUsage, "scaffold.resolve", "template URL %q has no file name", raw)
		}

		descriptors = append(descriptors, CopyDescriptor{
			Source:   Remote{URL: raw},
			FileName: filepath.Join(targetDir, name),
		})
	}
	return descriptors, nil
}

// RelPaths returns the destinations relative to targetDir, slash-separated
// and in descriptor order.
func RelPaths(targetDir string, descriptors []CopyDescriptor) []string {
	out := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		rel, err := filepath.Rel(targetDir, d.FileName)
		if err != nil {
			rel = d.FileName
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}
