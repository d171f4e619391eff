package lesson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultMarkers_Compile(t *testing.T) {
	g, err := DefaultMarkers().Compile()
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if g.Placeholder() != DefaultPlaceholder {
		t.Errorf("Placeholder: got %q", g.Placeholder())
	}
	for _, kind := range ProblemKinds {
		if g.problems[kind] == nil {
			t.Errorf("no pattern for %s", kind)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MarkerSet)
		want   string
	}{
		{"empty pattern", func(m *MarkerSet) { m.ProofEnd = " " }, "marker proof_end: pattern is empty"},
		{"bad regexp", func(m *MarkerSet) { m.TextBegin = "(" }, "marker text_begin"},
		{"missing capture", func(m *MarkerSet) { m.HintBegin = `^/- hint` }, "needs a capture group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMarkers()
			tt.modify(m)
			_, err := m.Compile()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadMarkers_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.yaml")
	content := `proof_begin: '^by\s*$'
proof_end: '^qed\s*$'
placeholder: "?"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write markers: %v", err)
	}

	markers, err := LoadMarkers(path)
	if err != nil {
		t.Fatalf("LoadMarkers failed: %v", err)
	}
	if markers.ProofBegin != `^by\s*$` || markers.Placeholder != "?" {
		t.Errorf("overrides not applied: %+v", markers)
	}
	if markers.TextBegin != DefaultMarkers().TextBegin {
		t.Errorf("TextBegin lost its default: %q", markers.TextBegin)
	}

	g, err := markers.Compile()
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	text := "/- Lemma\n-/\nlemma x : true :=\nby\n  trivial\nqed\n"
	level, err := NewScanner(g).Parse(NewDocument("custom.lean", text), true)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p := level.Objects[0].(*Problem)
	if p.Region.ProofBody != "  trivial" || p.Region.EditorStartText != "?" {
		t.Errorf("region: got %+v", p.Region)
	}
}

func TestLoadMarkers_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadMarkers(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("proof_begin: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("Failed to write markers: %v", err)
	}
	if _, err := LoadMarkers(bad); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestGrammar_SideBar(t *testing.T) {
	g := DefaultGrammar()
	tests := []struct {
		modifier string
		want     bool
	}{
		{"", true},
		{" no-side-bar", false},
		{" NO-SIDE-BAR -/", false},
		{" something else", true},
	}
	for _, tt := range tests {
		if got := g.sideBar(tt.modifier); got != tt.want {
			t.Errorf("sideBar(%q) = %v, want %v", tt.modifier, got, tt.want)
		}
	}
}
