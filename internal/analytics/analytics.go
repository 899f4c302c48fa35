// Package analytics stores a project's usage-analytics consent.
//
// The consent lives next to package.json in cfkit-analytics.json. When
// analytics are enabled the file also holds a random salt, so that anything
// derived from the project can be hashed without identifying it.
package analytics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/google/uuid"
)

// FileName is the consent file written to the project root.
const FileName = "cfkit-analytics.json"

// Consent is the stored analytics decision.
type Consent struct {
	Enabled bool   `json:"enabled"`
	Salt    string `json:"salt,omitempty"`
}

// Load reads the consent file in dir. Returns nil, nil if the file does not
// exist (no decision yet).
func Load(dir string) (*Consent, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(fmt.Errorf("reading %s: %w", FileName, err), errs.KindFilesystem, "analytics.load")
	}

	var c Consent
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errs.Wrap(fmt.Errorf("parsing %s: %w", FileName, err), errs.KindParse, "analytics.load")
	}
	return &c, nil
}

// Save records the decision in dir. Enabling keeps an existing salt or
// generates a new one; disabling drops it.
func Save(dir string, enabled bool) (*Consent, error) {
	c := &Consent{Enabled: enabled}
	if enabled {
		// A malformed previous file just means a fresh salt.
		if prev, err := Load(dir); err == nil && prev != nil && prev.Salt != "" {
			c.Salt = prev.Salt
		} else {
			salt, err := uuid.NewRandom()
			if err != nil {
				return nil, fmt.Errorf("generating analytics salt: %w", err)
			}
			c.Salt = salt.String()
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling consent: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, errs.Wrap(fmt.Errorf("writing %s: %w", FileName, err), errs.KindFilesystem, "analytics.save")
	}
	return c, nil
}
