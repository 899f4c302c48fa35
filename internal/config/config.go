package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cfkit-labs/cfkit/internal/branding"
	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyLogLevel      = "log_level"
	KeyTemplatesDir  = "templates_dir"
	KeyTemplateHost  = "template_host"
	KeyNpmRegistry   = "npm_registry"
	KeyVersionLookup = "version_lookup"
)

// Version lookup strategies accepted by KeyVersionLookup.
const (
	LookupNpm      = "npm"
	LookupRegistry = "registry"
)

// Keys lists every key accepted by Set, in display order.
var Keys = []string{KeyLogLevel, KeyTemplatesDir, KeyTemplateHost, KeyNpmRegistry, KeyVersionLookup}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTemplatesDir, "")
	viper.SetDefault(KeyTemplateHost, branding.TemplateHost())
	viper.SetDefault(KeyNpmRegistry, branding.NpmRegistry())
	viper.SetDefault(KeyVersionLookup, LookupNpm)
}

// Dir returns the path to the config directory (~/.cfkit/).
// CFKIT_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.cfkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file. Unknown keys
// and invalid values are usage errors.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return errs.New(errs.KindUsage, "config.set", "unknown config key %q", key)
	}
	if key == KeyVersionLookup && value != LookupNpm && value != LookupRegistry {
		return errs.New(errs.KindUsage, "config.set", "%s must be %q or %q, got %q", key, LookupNpm, LookupRegistry, value)
	}

	if err := EnsureDir(); err != nil {
		return errs.Wrap(err, errs.KindFilesystem, "config.set")
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return errs.Wrap(fmt.Errorf("creating config file %s: %w", configFile, err), errs.KindFilesystem, "config.set")
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return errs.Wrap(fmt.Errorf("writing config file: %w", err), errs.KindFilesystem, "config.set")
	}

	return nil
}
