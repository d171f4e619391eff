package game

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `name = "Test game"
version = "1.0"
intro = "intro.lean"

[[worlds]]
id = 1
name = "Addition world"
levels = ["levels/a.lean", "levels/b.lean"]

[[worlds]]
id = 2
name = "Multiplication world"
levels = ["levels/c.lean"]
parents = [1]
`

var testSources = map[string]string{
	"intro.lean": "/-\n# Welcome\n\nPlay the levels in order.\n-/\n",
	"levels/a.lean": `-- Level name: Zero
/- Lemma
Adding zero.
-/
lemma add_zero' (a : ℕ) : a + 0 = a :=
begin
  simp,
end
`,
	"levels/b.lean": `-- Level name: Worked
/- Example
-/
example : 2 = 2 :=
begin
  refl,
end
`,
	"levels/c.lean": `-- Level name: Product
open nat -- hide
/- Theorem : no-side-bar
Multiply.
-/
theorem mul_one' (a : ℕ) : a * 1 = a :=
begin
  -- use the library
  simp,
end
`,
}

// writeGame lays out a small game in a temporary directory and returns the
// path of its configuration.
func writeGame(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{DefaultConfigFile: testConfig}
	for name, content := range testSources {
		files[name] = content
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return filepath.Join(dir, DefaultConfigFile)
}

func loadTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := LoadConfig(writeGame(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	return cfg
}
