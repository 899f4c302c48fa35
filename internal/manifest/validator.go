package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

const schemaURL = "manifest.schema.json"

var (
	manifestSchema = sync.OnceValues(compileSchema)
	printer        = message.NewPrinter(language.English)
)

// Report lists the schema violations found in one manifest.
type Report struct {
	Valid  bool
	Issues []Issue
}

// Issue is one violation. Path is a JSON pointer into the manifest, empty
// for the document root.
type Issue struct {
	Path    string
	Keyword string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
}

// Validate checks manifest YAML against the Cloud Foundry manifest schema.
// Unparseable YAML is a parse error; violations land in the Report.
func Validate(data []byte) (*Report, error) {
	schema, err := manifestSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(fmt.Errorf("parsing YAML: %w", err), errs.KindParse, "manifest.validate")
	}
	// The validator wants json.Number for numeric values.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("manifest is not representable as JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return nil, fmt.Errorf("decoding manifest JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &Report{Valid: true}, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	issues := leafIssues(verr, nil)
	if len(issues) == 0 {
		issues = []Issue{{Message: verr.Error()}}
	}
	return &Report{Issues: issues}, nil
}

// ValidateFile validates the manifest stored at path.
func ValidateFile(path string) (*Report, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// Combinator and reference failures only repeat what their causes say.
var structuralKeywords = map[string]bool{
	"":      true,
	"$ref":  true,
	"allOf": true,
	"oneOf": true,
}

// leafIssues appends one Issue per distinct leaf of the error tree.
func leafIssues(verr *jsonschema.ValidationError, acc []Issue) []Issue {
	for _, cause := range verr.Causes {
		acc = leafIssues(cause, acc)
	}
	if len(verr.Causes) > 0 || verr.ErrorKind == nil {
		return acc
	}

	var keyword string
	if kw := verr.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	if structuralKeywords[keyword] {
		return acc
	}

	issue := Issue{
		Keyword: keyword,
		Message: verr.ErrorKind.LocalizedString(printer),
	}
	if len(verr.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(verr.InstanceLocation, "/")
	}
	for _, seen := range acc {
		if seen == issue {
			return acc
		}
	}
	return append(acc, issue)
}
