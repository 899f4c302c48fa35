package manifest

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"go.yaml.in/yaml/v3"
)

// Read parses the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errs.Wrap(fmt.Errorf("parsing manifest %s: %w", path, err), errs.KindParse, "manifest.read")
	}
	return &m, nil
}

// AppName returns the name of the first application in the manifest.
func AppName(path string) (string, error) {
	m, err := Read(path)
	if err != nil {
		return "", err
	}
	if len(m.Applications) == 0 || m.Applications[0].Name == "" {
		return "", errs.New(errs.KindParse, "manifest.read", "%s has no application name", path)
	}
	return m.Applications[0].Name, nil
}

// SetAppName rewrites the name of the first application, leaving the rest
// of the document untouched.
func SetAppName(path, name string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errs.Wrap(fmt.Errorf("parsing manifest %s: %w", path, err), errs.KindParse, "manifest.write")
	}

	app := firstApplication(&doc)
	if app == nil {
		return errs.New(errs.KindParse, "manifest.write", "%s has no applications", path)
	}

	value := mappingValue(app, "name")
	if value == nil {
		app.Content = append(app.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
		)
	} else {
		value.Kind = yaml.ScalarNode
		value.Tag = "!!str"
		value.Style = 0
		value.Value = name
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	enc.Close()

	info, err := os.Stat(path)
	if err != nil {
		return errs.Wrap(err, errs.KindFilesystem, "manifest.write")
	}
	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return errs.Wrap(fmt.Errorf("writing %s: %w", path, err), errs.KindFilesystem, "manifest.write")
	}
	return nil
}

// firstApplication returns the mapping node of applications[0], or nil.
func firstApplication(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	apps := mappingValue(doc.Content[0], "applications")
	if apps == nil || apps.Kind != yaml.SequenceNode || len(apps.Content) == 0 {
		return nil
	}
	if first := apps.Content[0]; first.Kind == yaml.MappingNode {
		return first
	}
	return nil
}

// mappingValue returns the value node stored under key in a mapping node.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(fmt.Errorf("reading file %s: %w", path, err), errs.KindFilesystem, "manifest.read")
	}
	return data, nil
}
