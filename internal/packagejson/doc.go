// Package packagejson patches a project's package.json with the scripts and
// dependencies cfkit needs.
//
// Changes are described by named presets combined into a ChangeSet. Merge
// applies a ChangeSet to the original document with these rules:
//
//   - scripts are added; an existing script with a different command is a
//     conflict unless force is set, in which case the new command wins
//   - dependencies and devDependencies only fill gaps, the versions the
//     user already declared are kept
//   - jest settings are shallow-merged over an existing jest object
//
// Documents keep their top-level key order and any keys cfkit does not
// know about.
package packagejson
