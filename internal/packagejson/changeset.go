package packagejson

import (
	"github.com/cfkit-labs/cfkit/internal/errs"
)

// Script is a named npm script.
type Script struct {
	Name    string
	Command string
}

// Preset is a named bundle of package.json additions.
type Preset struct {
	Name            string
	Scripts         []Script
	Dependencies    []string
	DevDependencies []string
	Jest            map[string]any
}

// ChangeSet is the combined set of additions applied to a package.json.
type ChangeSet struct {
	Scripts         []Script
	Dependencies    []string
	DevDependencies []string
	Jest            map[string]any
}

// Script returns the command for name and whether the ChangeSet defines it.
func (cs ChangeSet) Script(name string) (string, bool) {
	for _, s := range cs.Scripts {
		if s.Name == name {
			return s.Command, true
		}
	}
	return "", false
}

// Base presets. Exactly one of them starts every ChangeSet.
var (
	// ScaffoldPreset targets a project freshly generated by the Nest CLI.
	ScaffoldPreset = Preset{
		Name: "scaffold",
		Scripts: []Script{
			{"ci-build", "npm run build"},
			{"ci-package", "cfkit package --include=package.json,package-lock.json,dist/**/*"},
			{"ci-backend-unit-test", "jest --ci --passWithNoTests"},
			{"ci-it-backend", "jest --ci --config ./test/jest-e2e.json"},
		},
		Dependencies:    []string{"@sap-cloud-sdk/core"},
		DevDependencies: []string{"@sap-cloud-sdk/test-util", "jest-junit"},
		Jest: map[string]any{
			"reporters":         []string{"default", "jest-junit"},
			"coverageReporters": []string{"text", "cobertura"},
		},
	}

	// VanillaPreset targets an existing project cfkit did not generate.
	VanillaPreset = Preset{
		Name: "vanilla",
		Scripts: []Script{
			{"ci-build", `echo "Use this to compile or minify your application"`},
			{"ci-package", "cfkit package"},
			{"ci-backend-unit-test", `echo "Use this to run your backend unit tests"`},
			{"ci-it-backend", `echo "Use this to run your backend integration tests"`},
		},
		Dependencies:    []string{"@sap-cloud-sdk/core"},
		DevDependencies: []string{"@sap-cloud-sdk/test-util"},
	}
)

// FrontendPreset adds placeholder scripts for frontend test stages.
var FrontendPreset = Preset{
	Name: "frontend",
	Scripts: []Script{
		{"ci-frontend-unit-test", `echo "Use this to run your frontend unit tests"`},
		{"ci-e2e", `echo "Use this to run your end-to-end tests"`},
	},
}

// CdsPreset wires the SAP Cloud Application Programming Model tooling.
var CdsPreset = Preset{
	Name: "cds",
	Scripts: []Script{
		{"cds-deploy", "cds deploy"},
		{"cds-build", "cds build/all --clean"},
	},
	Dependencies:    []string{"@sap/cds"},
	DevDependencies: []string{"@sap/cds-dk"},
}

// Combine merges presets in order. Scripts may only be defined once, so a
// later preset never overrides an earlier one. Dependency lists are unioned
// and jest settings merged key by key.
func Combine(presets ...Preset) (ChangeSet, error) {
	var cs ChangeSet
	owner := map[string]string{}
	seenDep := map[string]bool{}
	seenDev := map[string]bool{}

	for _, p := range presets {
		for _, s := range p.Scripts {
			if prev, ok := owner[s.Name]; ok {
				return ChangeSet{}, errs.New(errs.KindInternal, "packagejson.presets",
					"preset %q redefines script %q from preset %q", p.Name, s.Name, prev)
			}
			owner[s.Name] = p.Name
			cs.Scripts = append(cs.Scripts, s)
		}
		cs.Dependencies = union(cs.Dependencies, p.Dependencies, seenDep)
		cs.DevDependencies = union(cs.DevDependencies, p.DevDependencies, seenDev)
		for k, v := range p.Jest {
			if cs.Jest == nil {
				cs.Jest = map[string]any{}
			}
			cs.Jest[k] = v
		}
	}
	return cs, nil
}

// ComputeChangeSet selects the presets for a project and combines them.
func ComputeChangeSet(isScaffold, frontendScripts, addCds bool) (ChangeSet, error) {
	presets := []Preset{VanillaPreset}
	if isScaffold {
		presets[0] = ScaffoldPreset
	}
	if frontendScripts {
		presets = append(presets, FrontendPreset)
	}
	if addCds {
		presets = append(presets, CdsPreset)
	}
	return Combine(presets...)
}

func union(dst, add []string, seen map[string]bool) []string {
	for _, name := range add {
		if !seen[name] {
			seen[name] = true
			dst = append(dst, name)
		}
	}
	return dst
}

// Names returns every dependency and devDependency in the ChangeSet.
func (cs ChangeSet) Names() []string {
	seen := map[string]bool{}
	return union(union(nil, cs.Dependencies, seen), cs.DevDependencies, seen)
}
