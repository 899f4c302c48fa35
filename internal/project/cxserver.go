package project

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/platform"
	"github.com/cfkit-labs/cfkit/internal/scaffold"
	"go.uber.org/zap"
)

// CxServerDir is where add-cx-server writes its files.
const CxServerDir = "cx-server"

// CxServerOptions configures AddCxServer.
type CxServerOptions struct {
	ProjectDir string
	Force      bool
	Windows    bool // also fetch the batch wrapper
}

// cxServerFiles lists the remote life-cycle scripts.
func cxServerFiles(windows bool) []string {
	files := []string{"cx-server", "server.cfg"}
	if windows {
		files = append(files, "cx-server.bat")
	}
	return files
}

// AddCxServer downloads the cx-server life-cycle scripts from the template
// host into the cx-server directory.
func AddCxServer(ctx context.Context, d Deps, opts CxServerOptions) (*Result, error) {
	d.fill()

	if d.TemplateHost == "" {
		return nil, errs.New(errs.KindUsage, "project.cx-server", "no template host configured").
			WithAdvice("Set one with: cfkit config set template_host <url>")
	}

	dir, err := absDir(opts.ProjectDir)
	if err != nil {
		return nil, err
	}
	target := filepath.Join(dir, CxServerDir)

	host := strings.TrimRight(d.TemplateHost, "/")
	var urls []string
	for _, f := range cxServerFiles(opts.Windows) {
		urls = append(urls, host+"/"+f)
	}
	descriptors, err := scaffold.ResolveRemote(urls, target)
	if err != nil {
		return nil, err
	}

	d.Logger.Debug("fetching cx-server scripts", zap.String("host", host))
	copied, err := d.Copier.Copy(ctx, target, descriptors, nil, opts.Force)
	if err != nil {
		return nil, err
	}

	if err := platform.MakeExecutable(filepath.Join(target, "cx-server")); err != nil {
		return nil, errs.Wrap(err, errs.KindFilesystem, "project.cx-server")
	}

	res := &Result{ProjectDir: dir}
	for _, f := range copied.Files {
		res.Files = append(res.Files, CxServerDir+"/"+f)
	}
	return res, nil
}
