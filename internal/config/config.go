// Package config handles loading and parsing wheel configuration files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"wheelspin/internal/pathutil"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSpinTime  = 10.0
	DefaultMaxSlices = 1000
)

// Config is the top-level wheel configuration.
type Config struct {
	Version   string         `yaml:"version" toml:"version"`
	Profiles  []string       `yaml:"profiles,omitempty" toml:"profiles"`
	Variables map[string]any `yaml:"variables,omitempty" toml:"variables"`
	Wheel     Wheel          `yaml:"wheel" toml:"wheel"`
	Entries   []EntryDef     `yaml:"entries" toml:"entries"`
	Sequence  []int          `yaml:"sequence,omitempty" toml:"sequence"`
	Target    string         `yaml:"target,omitempty" toml:"target"`
}

// Wheel holds the spin settings.
type Wheel struct {
	SpinTime        float64 `yaml:"spinTime" toml:"spinTime"`
	SlowSpin        bool    `yaml:"slowSpin" toml:"slowSpin"`
	MaxSlices       int     `yaml:"maxSlices" toml:"maxSlices"`
	AllowDuplicates *bool   `yaml:"allowDuplicates" toml:"allowDuplicates"`
	DarkMode        bool    `yaml:"darkMode" toml:"darkMode"`
	ExactLanding    bool    `yaml:"exactLanding" toml:"exactLanding"`
}

// Duplicates reports whether duplicate labels are kept. Defaults to true.
func (w Wheel) Duplicates() bool {
	return w.AllowDuplicates == nil || *w.AllowDuplicates
}

// EntryDef is one configured entry.
// Enabled and Weight may be literals or ${ } expression strings.
type EntryDef struct {
	Text    string `yaml:"text"`
	Enabled any    `yaml:"enabled,omitempty"`
	Weight  any    `yaml:"weight,omitempty"`
	When    *When  `yaml:"when,omitempty"`
}

// When gates an entry on the run context.
type When struct {
	Profile StringOrSlice `yaml:"profile,omitempty"`
	Weekday StringOrSlice `yaml:"weekday,omitempty"`
}

// UnmarshalYAML accepts either a bare label or a mapping.
// Allows: - Alice  OR  - {text: Alice, weight: 2}
func (e *EntryDef) UnmarshalYAML(unmarshal func(any) error) error {
	var text string
	if err := unmarshal(&text); err == nil {
		*e = EntryDef{Text: text}
		return nil
	}

	type plain EntryDef
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*e = EntryDef(p)
	return nil
}

// UnmarshalTOML accepts either a bare label or an inline table.
func (e *EntryDef) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*e = EntryDef{Text: v}
		return nil
	case map[string]any:
		var def EntryDef
		if text, ok := v["text"].(string); ok {
			def.Text = text
		}
		def.Enabled = v["enabled"]
		def.Weight = v["weight"]
		if w, ok := v["when"].(map[string]any); ok {
			def.When = &When{
				Profile: toStrings(w["profile"]),
				Weekday: toStrings(w["weekday"]),
			}
		}
		*e = def
		return nil
	default:
		return fmt.Errorf("entry must be a string or table, got %T", value)
	}
}

// StringOrSlice handles values that can be either a string or []string.
// Allows: profile: "work" OR profile: ["work", "home"]
type StringOrSlice []string

// UnmarshalYAML implements custom unmarshaling for flexible YAML input.
func (s *StringOrSlice) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}

	var slice []string
	if err := unmarshal(&slice); err != nil {
		return err
	}
	*s = slice
	return nil
}

// UnmarshalTOML implements the same flexibility for TOML input.
func (s *StringOrSlice) UnmarshalTOML(value any) error {
	*s = toStrings(value)
	return nil
}

func toStrings(value any) StringOrSlice {
	switch v := value.(type) {
	case string:
		return StringOrSlice{v}
	case []any:
		out := make(StringOrSlice, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

// Load reads and parses a config file from the given path.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	expanded := pathutil.Expand(path)

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data, formatFor(expanded))
}

// Format is a config file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes and validates config data.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Version == "" {
		return errors.New("config missing version field")
	}

	if c.Version != "1" {
		return fmt.Errorf("unsupported config version: %s", c.Version)
	}

	if st := c.Wheel.SpinTime; st < 0 || math.IsNaN(st) || math.IsInf(st, 0) {
		return fmt.Errorf("wheel.spinTime must be a positive number, got %v", st)
	}

	if c.Wheel.MaxSlices < 0 {
		return fmt.Errorf("wheel.maxSlices must be positive, got %d", c.Wheel.MaxSlices)
	}

	for i, e := range c.Entries {
		if strings.TrimSpace(e.Text) == "" {
			return fmt.Errorf("entry %d: text cannot be empty", i+1)
		}
	}

	for i, idx := range c.Sequence {
		if idx < 0 {
			return fmt.Errorf("sequence[%d]: index cannot be negative", i)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Wheel.SpinTime == 0 {
		c.Wheel.SpinTime = DefaultSpinTime
	}
	if c.Wheel.MaxSlices == 0 {
		c.Wheel.MaxSlices = DefaultMaxSlices
	}
}
