// Package game builds a complete Lean game from its configuration: the intro
// page and every level of every world, scanned in declared order into one
// localized game payload and one translation template.
package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "game_config.toml"
	defaultGameName   = "Lean game"
	envPrefix         = "LEANGAME"
)

// Config describes a game: its metadata and the lessons it is made of.
type Config struct {
	Name       string        `mapstructure:"name" yaml:"name"`
	Version    string        `mapstructure:"version" yaml:"version"`
	Intro      string        `mapstructure:"intro" yaml:"intro"`
	Worlds     []WorldConfig `mapstructure:"worlds" yaml:"worlds"`
	ExtraFiles string        `mapstructure:"extra_files" yaml:"extra_files,omitempty"`

	// Markers optionally names a YAML marker file replacing the default
	// Lean 3 block markers.
	Markers string `mapstructure:"markers" yaml:"markers,omitempty"`

	// Dir is the directory relative paths are resolved against.
	Dir string `mapstructure:"-" yaml:"-"`
}

// WorldConfig is one world: an ordered list of level sources.
type WorldConfig struct {
	ID      int      `mapstructure:"id" yaml:"id,omitempty"`
	Name    string   `mapstructure:"name" yaml:"name"`
	Levels  []string `mapstructure:"levels" yaml:"levels"`
	Parents []int    `mapstructure:"parents" yaml:"parents,omitempty"`
}

// LoadConfig reads the game configuration at path. The format follows the
// file extension (toml, yaml or json); LEANGAME_* environment variables
// override top-level keys.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("couldn't find a game configuration at %s", path)
		}
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		v.SetConfigType(ext)
	}
	v.SetDefault("name", defaultGameName)
	v.SetDefault("version", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Dir = filepath.Dir(path)

	return &cfg, nil
}

// Path resolves a path from the configuration.
func (c *Config) Path(rel string) string {
	if rel == "" || filepath.IsAbs(rel) || c.Dir == "" {
		return rel
	}
	return filepath.Join(c.Dir, rel)
}

// LibraryZipName is the archive name the browser runtime loads.
func (c *Config) LibraryZipName() string {
	return fmt.Sprintf("%s-%s-library.zip", c.Name, c.Version)
}

// ConfigError is one problem found in a configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigErrors collects every problem found by Validate.
type ConfigErrors []ConfigError

func (errs ConfigErrors) Error() string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("%d configuration errors:\n  - %s", len(errs), strings.Join(messages, "\n  - "))
}

// Validate checks the world structure: ids start at 1 and increase by one,
// parents precede their world and every world has levels.
func (c *Config) Validate() error {
	var errs ConfigErrors

	if c.Intro == "" {
		errs = append(errs, ConfigError{Field: "intro", Message: "required field is missing"})
	}
	if len(c.Worlds) == 0 {
		errs = append(errs, ConfigError{Field: "worlds", Message: "at least one world is required"})
	}

	for w, world := range c.Worlds {
		field := fmt.Sprintf("worlds[%d]", w)
		id := w + 1
		if world.ID != 0 && world.ID != id {
			errs = append(errs, ConfigError{Field: field + ".id",
				Message: fmt.Sprintf("world id must start with 1 and increase by 1 at each world (got %d, want %d)", world.ID, id)})
		}
		if world.Name == "" {
			errs = append(errs, ConfigError{Field: field + ".name", Message: "required field is missing"})
		}
		for _, parent := range world.Parents {
			if parent < 1 || parent >= id {
				errs = append(errs, ConfigError{Field: field + ".parents",
					Message: fmt.Sprintf("parent id %d must be between 1 and %d", parent, id-1)})
			}
		}
		if len(world.Levels) == 0 {
			errs = append(errs, ConfigError{Field: field + ".levels",
				Message: fmt.Sprintf("world %d has no levels", id)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Sources returns the intro and level paths in build order, resolved
// against the configuration directory.
func (c *Config) Sources() []string {
	var out []string
	if c.Intro != "" {
		out = append(out, c.Path(c.Intro))
	}
	for _, world := range c.Worlds {
		for _, level := range world.Levels {
			out = append(out, c.Path(level))
		}
	}
	return out
}
