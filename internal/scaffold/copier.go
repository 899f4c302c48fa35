package scaffold

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of a copy.
type Result struct {
	TargetDir string
	Files     []string // slash-separated, relative to TargetDir, sorted
}

// Copier materializes descriptors.
type Copier struct {
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Copier.
type Option func(*Copier)

// WithHTTPClient sets the client used for remote sources (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cp *Copier) {
		cp.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(cp *Copier) {
		cp.log = l
	}
}

// NewCopier creates a Copier with the given options.
func NewCopier(opts ...Option) *Copier {
	c := &Copier{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Materialize writes every descriptor concurrently and waits for all of
// them. The first failure cancels the rest and is returned; files already
// written stay on disk.
func (c *Copier) Materialize(ctx context.Context, descriptors []CopyDescriptor, opts Options) error {
	g, ctx := errgroup.WithContext(ctx)
	env := Env{Client: c.httpClient, Options: opts}

	for _, d := range descriptors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.log.Debug("materializing", zap.Stringer("source", d.Source), zap.String("dest", d.FileName))
			return d.Source.Materialize(ctx, env, d.FileName)
		})
	}

	return g.Wait()
}

// Copy runs the conflict check and then materializes the batch.
func (c *Copier) Copy(ctx context.Context, targetDir string, descriptors []CopyDescriptor, opts Options, force bool) (*Result, error) {
	if err := CheckConflicts(descriptors, force); err != nil {
		return nil, err
	}
	if err := c.Materialize(ctx, descriptors, opts); err != nil {
		return nil, err
	}

	files := RelPaths(targetDir, descriptors)
	sort.Strings(files)
	c.log.Debug("copied templates", zap.String("target", targetDir), zap.Int("files", len(files)))

	return &Result{TargetDir: targetDir, Files: files}, nil
}
