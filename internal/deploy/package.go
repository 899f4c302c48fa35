package deploy

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/toolchain"
	"github.com/cfkit-labs/cfkit/internal/warnings"
	"go.uber.org/zap"
)

// Defaults for the package command.
const (
	DefaultOutputDir = "deployment"
	DefaultInclude   = "package.json,package-lock.json,index.js,dist/**/*"
)

// excludedNames are never copied, whatever the globs say.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// Options configures Package.
type Options struct {
	ProjectDir  string
	OutputDir   string // relative to ProjectDir unless absolute
	Include     []string
	Exclude     []string
	SkipInstall bool
	Zip         bool
}

// Result describes the assembled deployment.
type Result struct {
	OutputDir string
	Files     []string // slash-separated, relative to OutputDir
	Archive   string   // set when Zip was requested
}

// SplitGlobs turns a comma-separated flag value into patterns.
func SplitGlobs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package copies the selected project files into the output directory,
// replacing whatever was there, then installs production dependencies and
// optionally zips the result.
func Package(ctx context.Context, opts Options, r toolchain.Runner, w *warnings.Collector, log *zap.Logger) (*Result, error) {
	const op = "deploy.package"
	if log == nil {
		log = zap.NewNop()
	}

	project, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, errs.Wrap(err, errs.KindFilesystem, op)
	}
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(project, outDir)
	}
	outDir = filepath.Clean(outDir)
	if rel, err := filepath.Rel(project, outDir); err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errs.New(errs.KindUsage, op, "output directory %s must be inside the project directory", outDir)
	}

	include := opts.Include
	if len(include) == 0 {
		include = SplitGlobs(DefaultInclude)
	}
	for _, p := range append(append([]string(nil), include...), opts.Exclude...) {
		if !validGlob(p) {
			return nil, errs.New(errs.KindUsage, op, "invalid glob pattern %q", p)
		}
	}

	if err := os.RemoveAll(outDir); err != nil {
		return nil, errs.Wrap(fmt.Errorf("removing %s: %w", outDir, err), errs.KindFilesystem, op)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errs.Wrap(fmt.Errorf("creating %s: %w", outDir, err), errs.KindFilesystem, op)
	}

	archive := outDir + ".zip"
	result := &Result{OutputDir: outDir}

	err = filepath.WalkDir(project, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == project {
			return nil
		}
		if d.IsDir() && (excludedNames[d.Name()] || p == outDir) {
			return filepath.SkipDir
		}
		if d.IsDir() || !d.Type().IsRegular() || excludedNames[d.Name()] || p == archive {
			return nil
		}

		rel, err := filepath.Rel(project, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchAny(include, rel) || matchAny(opts.Exclude, rel) {
			return nil
		}

		if err := copyFile(p, filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("copying %s: %w", rel, err)
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.KindFilesystem, op)
	}
	log.Debug("copied deployment files", zap.String("output", outDir), zap.Int("files", len(result.Files)))

	if len(result.Files) == 0 {
		w.Addf("No files matched %s; the deployment directory is empty.", strings.Join(include, ","))
	}

	if !opts.SkipInstall {
		if _, err := os.Stat(filepath.Join(outDir, "package.json")); err == nil {
			log.Debug("installing production dependencies", zap.String("dir", outDir))
			if err := toolchain.NpmInstall(ctx, r, outDir, true); err != nil {
				return nil, err
			}
		} else {
			w.Add("No package.json in the deployment directory, skipping npm install.")
		}
	}

	if opts.Zip {
		if err := zipDir(outDir, archive); err != nil {
			return nil, errs.Wrap(fmt.Errorf("creating %s: %w", archive, err), errs.KindFilesystem, op)
		}
		result.Archive = archive
	}

	return result, nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, info.Mode().Perm())
}

// zipDir writes every regular file under dir into a new archive at dst.
func zipDir(dir, dst string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if walkErr != nil {
		zw.Close()
		return walkErr
	}
	return zw.Close()
}
