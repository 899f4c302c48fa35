package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "cfkit" {
		t.Errorf("CLIName() = %q, want %q", got, "cfkit")
	}
	if got := HomeDir(); got != ".cfkit" {
		t.Errorf("HomeDir() = %q, want %q", got, ".cfkit")
	}
	if TemplateHost() == "" {
		t.Error("TemplateHost() should not be empty")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"home", "CFKIT_HOME"},
		{"LOG_LEVEL", "CFKIT_LOG_LEVEL"},
	}
	for _, tt := range tests {
		if got := EnvVar(tt.suffix); got != tt.want {
			t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}
