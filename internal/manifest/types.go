package manifest

import "go.yaml.in/yaml/v3"

// FileName is the conventional manifest name in a project root.
const FileName = "manifest.yml"

// Manifest is the subset of a Cloud Foundry manifest cfkit reads.
type Manifest struct {
	Applications []Application `yaml:"applications"`
}

// Application is one entry of the applications list.
type Application struct {
	Name        string            `yaml:"name"`
	Path        string            `yaml:"path,omitempty"`
	Command     string            `yaml:"command,omitempty"`
	Memory      string            `yaml:"memory,omitempty"`
	Instances   int               `yaml:"instances,omitempty"`
	Buildpacks  []string          `yaml:"buildpacks,omitempty"`
	Routes      []Route           `yaml:"routes,omitempty"`
	RandomRoute bool              `yaml:"random-route,omitempty"`
	Env         map[string]string `yaml:"env,omitempty"`
	Services    []Service         `yaml:"services,omitempty"`
}

// Route is a single entry of an application's routes.
type Route struct {
	Route string `yaml:"route"`
}

// Service is a bound service instance. Manifests list services either as a
// plain name or as a mapping with a name key.
type Service struct {
	Name string `yaml:"name"`
}

func (s *Service) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		s.Name = n.Value
		return nil
	}
	type plain Service
	return n.Decode((*plain)(s))
}
