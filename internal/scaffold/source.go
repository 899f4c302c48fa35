package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"go.yaml.in/yaml/v3"
)

// TemplateSuffix marks a local file as a template to render.
const TemplateSuffix = ".tmpl"

// Options is the render context handed to templates, e.g. projectName.
type Options map[string]string

// Env carries what a Source needs to write itself.
type Env struct {
	Client  *http.Client
	Options Options
}

// Source is where a descriptor's content comes from.
type Source interface {
	// Materialize writes the content to dst, creating parent directories.
	Materialize(ctx context.Context, env Env, dst string) error
	String() string
}

// Renderable is a local text/template file.
type Renderable struct {
	FS   fs.FS
	Path string
}

func (s Renderable) String() string { return s.Path }

func (s Renderable) Materialize(ctx context.Context, env Env, dst string) error {
	raw, err := fs.ReadFile(s.FS, s.Path)
	if err != nil {
		return errs.Wrap(fmt.Errorf("reading template %s: %w", s.Path, err), errs.KindFilesystem, "scaffold.render")
	}

	tmpl, err := template.New(filepath.Base(s.Path)).
		Option("missingkey=zero").
		Funcs(templateFuncs).
		Parse(string(raw))
	if err != nil {
		return errs.Wrap(fmt.Errorf("parsing template %s: %w", s.Path, err), errs.KindParse, "scaffold.render")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, env.Options); err != nil {
		return errs.Wrap(fmt.Errorf("executing template %s: %w", s.Path, err), errs.KindParse, "scaffold.render")
	}

	return writeFile(dst, buf.Bytes(), 0644)
}

var templateFuncs = template.FuncMap{
	"yaml": yamlScalar,
}

// yamlScalar renders s as a single-line YAML string, quoting it when a
// plain scalar would change its meaning.
func yamlScalar(s string) (string, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.ContainsAny(s, "\r\n") {
		n.Style = yaml.DoubleQuotedStyle
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// Literal is a local file copied byte for byte.
type Literal struct {
	FS   fs.FS
	Path string
}

func (s Literal) String() string { return s.Path }

func (s Literal) Materialize(ctx context.Context, env Env, dst string) error {
	data, err := fs.ReadFile(s.FS, s.Path)
	if err != nil {
		return errs.Wrap(fmt.Errorf("reading %s: %w", s.Path, err), errs.KindFilesystem, "scaffold.copy")
	}

	// Only the execute bits carry over; embedded files report 0444.
	mode := os.FileMode(0644)
	if info, err := fs.Stat(s.FS, s.Path); err == nil {
		mode |= info.Mode().Perm() & 0111
	}

	return writeFile(dst, data, mode)
}

// Remote is a file fetched with an HTTP GET.
type Remote struct {
	URL string
}

func (s Remote) String() string { return s.URL }

func (s Remote) Materialize(ctx context.Context, env Env, dst string) error {
	client := env.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return errs.Wrap(fmt.Errorf("creating request for %s: %w", s.URL, err), errs.KindFetch, "scaffold.fetch")
	}

	resp, err := client.Do(req)
	if err != nil {
		return errs.Wrap(fmt.Errorf("downloading %s: %w", s.URL, err), errs.KindFetch, "scaffold.fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.Fetch("scaffold.fetch", resp.StatusCode, s.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Wrap(fmt.Errorf("reading %s: %w", s.URL, err), errs.KindFetch, "scaffold.fetch")
	}

	return writeFile(dst, body, 0644)
}

func writeFile(dst string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errs.Wrap(fmt.Errorf("creating directory for %s: %w", dst, err), errs.KindFilesystem, "scaffold.write")
	}
	if err := os.WriteFile(dst, data, mode); err != nil {
		return errs.Wrap(fmt.Errorf("writing %s: %w", dst, err), errs.KindFilesystem, "scaffold.write")
	}
	return nil
}

// isTemplate reports whether name carries the template suffix.
func isTemplate(name string) bool {
	return strings.HasSuffix(name, TemplateSuffix)
}
