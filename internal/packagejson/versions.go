package packagejson

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/toolchain"
	"github.com/cfkit-labs/cfkit/internal/warnings"
	"golang.org/x/sync/errgroup"
)

// FallbackVersion is written when a version lookup fails.
const FallbackVersion = "latest"

// maxLookups bounds concurrent version lookups.
const maxLookups = 8

// VersionLookup returns the latest published version of an npm package.
type VersionLookup interface {
	Latest(ctx context.Context, name string) (string, error)
}

// Versions maps dependency names to the version range to write.
type Versions map[string]string

// ResolveVersions looks up every dependency of cs concurrently. Each
// version is stored as a caret range; a failed lookup falls back to
// "latest" and adds a warning.
func ResolveVersions(ctx context.Context, cs ChangeSet, lookup VersionLookup, w *warnings.Collector) Versions {
	names := cs.Names()
	versions := make(Versions, len(names))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLookups)
	for _, name := range names {
		g.Go(func() error {
			v, err := lookup.Latest(ctx, name)
			if err != nil || v == "" {
				w.Addf("Could not determine the latest version of %s, using %q instead.", name, FallbackVersion)
				v = FallbackVersion
			} else {
				v = "^" + strings.TrimPrefix(v, "v")
			}
			mu.Lock()
			versions[name] = v
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return versions
}

// NpmLookup asks the npm CLI.
type NpmLookup struct {
	Runner toolchain.Runner
	Dir    string
}

func (l *NpmLookup) Latest(ctx context.Context, name string) (string, error) {
	return toolchain.NpmView(ctx, l.Runner, l.Dir, name)
}

// RegistryLookup queries an npm registry over HTTP. It reports the
// "latest" dist-tag and falls back to the greatest stable version listed
// when the tag is absent.
type RegistryLookup struct {
	BaseURL string
	Client  *http.Client
}

type packument struct {
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]json.RawMessage `json:"versions"`
}

func (l *RegistryLookup) Latest(ctx context.Context, name string) (string, error) {
	const op = "packagejson.registry"

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	u := strings.TrimRight(l.BaseURL, "/") + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errs.Wrap(fmt.Errorf("creating request: %w", err), errs.KindVersionLookup, op)
	}
	// Abbreviated metadata is enough and much smaller.
	req.Header.Set("Accept", "application/vnd.npm.install-v1+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", errs.Wrap(fmt.Errorf("querying registry for %s: %w", name, err), errs.KindVersionLookup, op)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.New(errs.KindVersionLookup, op, "registry returned status %d for %s", resp.StatusCode, name)
	}

	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", errs.Wrap(fmt.Errorf("decoding registry response for %s: %w", name, err), errs.KindVersionLookup, op)
	}

	// Same answer as `npm view <name> version`; the version list only
	// matters for registries that publish no tags.
	if v := doc.DistTags["latest"]; v != "" {
		return v, nil
	}
	if v := greatestStable(doc.Versions); v != "" {
		return v, nil
	}
	return "", errs.New(errs.KindVersionLookup, op, "no published version of %s", name)
}

// greatestStable returns the highest version without a prerelease tag.
func greatestStable(versions map[string]json.RawMessage) string {
	var best *semver.Version
	for raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil || v.Prerelease() != "" {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return ""
	}
	return best.Original()
}
