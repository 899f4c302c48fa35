package deploy

import "testing"

func TestMatchAny(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"package.json", "package.json", true},
		{"package.json", "sub/package.json", false},
		{"dist/**/*", "dist/main.js", true},
		{"dist/**/*", "dist/a/b/c.js", true},
		{"dist/**/*", "src/dist/main.js", false},
		{"**/*.map", "main.js.map", true},
		{"**/*.map", "dist/x/main.js.map", true},
		{"*.js", "index.js", true},
		{"*.js", "lib/index.js", false},
		{"src/?.ts", "src/a.ts", true},
		{"src/?.ts", "src/ab.ts", false},
		{"**", "anything/at/all", true},
		{"{dist,lib}/*.js", "lib/index.js", true},
		{"{dist,lib}/*.js", "src/index.js", false},
	}
	for _, tt := range tests {
		if got := matchAny([]string{tt.pattern}, tt.name); got != tt.want {
			t.Errorf("matchAny(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestValidGlob(t *testing.T) {
	for _, p := range []string{"dist/**/*", "*.js", "a/[bc]/d", "{dist,lib}/**"} {
		if !validGlob(p) {
			t.Errorf("validGlob(%q) = false", p)
		}
	}
	for _, p := range []string{"", "a/[b", "{dist,lib"} {
		if validGlob(p) {
			t.Errorf("validGlob(%q) = true", p)
		}
	}
}

func TestMatchAnyList(t *testing.T) {
	patterns := []string{"package.json", "dist/**"}
	if !matchAny(patterns, "dist/app/server.js") {
		t.Error("dist/** should match nested files")
	}
	if matchAny(patterns, "src/app.ts") {
		t.Error("src/app.ts should not match")
	}
	if matchAny(nil, "package.json") {
		t.Error("empty pattern list should match nothing")
	}
}

func TestSplitGlobs(t *testing.T) {
	got := SplitGlobs(" a.js, ,dist/**/* ,")
	if len(got) != 2 || got[0] != "a.js" || got[1] != "dist/**/*" {
		t.Errorf("SplitGlobs() = %q", got)
	}
}
