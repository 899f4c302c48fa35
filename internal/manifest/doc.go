// Package manifest reads, edits and validates Cloud Foundry manifest.yml
// files. Edits go through yaml.Node so comments and key order survive, and
// validation runs the document against an embedded JSON Schema.
package manifest
