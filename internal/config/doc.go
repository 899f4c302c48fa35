// Package config manages user-level settings stored at ~/.cfkit/config.yaml.
// Values can be overridden with CFKIT_-prefixed environment variables. Keys
// cover the log level, a local template directory override, the remote
// template host, and how dependency versions are looked up.
package config
