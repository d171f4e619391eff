package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	cfg := loadTestConfig(t)

	if cfg.Name != "Test game" || cfg.Version != "1.0" || cfg.Intro != "intro.lean" {
		t.Errorf("metadata: got %+v", cfg)
	}
	if len(cfg.Worlds) != 2 {
		t.Fatalf("worlds: got %d, want 2", len(cfg.Worlds))
	}
	second := cfg.Worlds[1]
	if second.ID != 2 || second.Name != "Multiplication world" || len(second.Levels) != 1 {
		t.Errorf("second world: got %+v", second)
	}
	if len(second.Parents) != 1 || second.Parents[0] != 1 {
		t.Errorf("parents: got %v", second.Parents)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	sources := cfg.Sources()
	if len(sources) != 4 || sources[0] != filepath.Join(cfg.Dir, "intro.lean") {
		t.Errorf("Sources: got %v", sources)
	}
	if got := cfg.LibraryZipName(); got != "Test game-1.0-library.zip" {
		t.Errorf("LibraryZipName: got %q", got)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeGame(t)
	t.Setenv("LEANGAME_VERSION", "2.0")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Version != "2.0" {
		t.Errorf("Version: got %q, want 2.0", cfg.Version)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	content := `intro: intro.lean
worlds:
  - name: Only world
    levels: [one.lean]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != defaultGameName {
		t.Errorf("default name: got %q", cfg.Name)
	}
	if len(cfg.Worlds) != 1 || cfg.Worlds[0].Levels[0] != "one.lean" {
		t.Errorf("worlds: got %+v", cfg.Worlds)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigFile))
	if err == nil || !strings.Contains(err.Error(), "couldn't find a game configuration") {
		t.Errorf("got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		fields []string
	}{
		{
			name:   "empty",
			config: Config{},
			fields: []string{"intro", "worlds"},
		},
		{
			name: "bad ids and parents",
			config: Config{
				Intro: "intro.lean",
				Worlds: []WorldConfig{
					{ID: 1, Name: "A", Levels: []string{"a.lean"}, Parents: []int{1}},
					{ID: 3, Name: "B", Levels: []string{"b.lean"}},
				},
			},
			fields: []string{"worlds[0].parents", "worlds[1].id"},
		},
		{
			name: "missing name and levels",
			config: Config{
				Intro:  "intro.lean",
				Worlds: []WorldConfig{{}},
			},
			fields: []string{"worlds[0].name", "worlds[0].levels"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			var errs ConfigErrors
			if !errors.As(err, &errs) {
				t.Fatalf("got %v, want ConfigErrors", err)
			}
			if len(errs) != len(tt.fields) {
				t.Fatalf("got %d errors, want %d: %v", len(errs), len(tt.fields), errs)
			}
			for i, field := range tt.fields {
				if errs[i].Field != field {
					t.Errorf("error %d: got field %s, want %s", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestConfigErrors_Error(t *testing.T) {
	one := ConfigErrors{{Field: "intro", Message: "required field is missing"}}
	if one.Error() != "intro: required field is missing" {
		t.Errorf("single: got %q", one.Error())
	}

	two := append(one, ConfigError{Field: "worlds", Message: "at least one world is required"})
	if !strings.HasPrefix(two.Error(), "2 configuration errors:") {
		t.Errorf("multiple: got %q", two.Error())
	}
}

func TestConfig_Path(t *testing.T) {
	cfg := &Config{Dir: "games/nng"}

	tests := []struct{ in, want string }{
		{"intro.lean", filepath.Join("games/nng", "intro.lean")},
		{"/abs/intro.lean", "/abs/intro.lean"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cfg.Path(tt.in); got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
