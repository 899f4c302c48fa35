package manifest

import (
	"testing"
)

func TestValidateFile_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid-app.yml", "valid-approuter.yml"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file     string
		desc     string
		wantPath string
	}{
		{"invalid-no-applications.yml", "empty applications list", "/applications"},
		{"invalid-bad-memory.yml", "memory violates pattern", "/applications/0/memory"},
		{"invalid-missing-name.yml", "missing required name", "/applications/0"},
		{"invalid-bad-instances.yml", "instances below minimum", "/applications/0/instances"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue at %s has empty message", issue.Path)
				}
			}
			if !found {
				t.Errorf("no issue at %s in %v", tt.wantPath, result.Issues)
			}
		})
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	_, err := ValidateFile(testPath("invalid-not-yaml.yml"))
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	_, err := ValidateFile(testPath("nonexistent.yml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Path: "/applications/0/memory", Message: "does not match pattern"}
	if got := i.String(); got != "/applications/0/memory: does not match pattern" {
		t.Errorf("String() = %q", got)
	}
	if got := (Issue{Message: "bad"}).String(); got != "bad" {
		t.Errorf("String() = %q", got)
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := manifestSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}
