package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/vigil/internal/prayer"
)

const DefaultPointsPerPrayer = 1000

type Prayer struct {
	Slot string `yaml:"slot"`
	Name string `yaml:"name"`
	Time string `yaml:"time"`
}

type Config struct {
	DBPath          string   `yaml:"db_path,omitempty"`
	Debug           bool     `yaml:"debug,omitempty"`
	PointsPerPrayer int      `yaml:"points_per_prayer"`
	Prayers         []Prayer `yaml:"prayers"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PointsPerPrayer: DefaultPointsPerPrayer,
		Prayers: []Prayer{
			{Slot: "pre_dawn", Name: "Before Sunrise", Time: "05:30"},
			{Slot: "post_sunrise", Name: "After Sunrise", Time: "07:00"},
			{Slot: "midday", Name: "Midday", Time: "12:00"},
			{Slot: "pre_sunset", Name: "Before Sunset", Time: "17:30"},
			{Slot: "night", Name: "After Sunset", Time: "21:00"},
		},
	}
}

// Dir returns <UserConfigDir>/vigil.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "vigil"), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the YAML file at path. A missing file yields Default().
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PointsPerPrayer <= 0 {
		cfg.PointsPerPrayer = DefaultPointsPerPrayer
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Prayers))
	for i, p := range c.Prayers {
		if p.Slot == "" {
			return fmt.Errorf("prayer %d: slot is required", i+1)
		}
		if seen[p.Slot] {
			return fmt.Errorf("prayer %q: duplicate slot", p.Slot)
		}
		seen[p.Slot] = true
		if p.Time != "" && !prayer.ValidTime(p.Time) {
			return fmt.Errorf("prayer %q: invalid time %q, want HH:MM", p.Slot, p.Time)
		}
	}
	return nil
}

// Definitions converts the configured prayers for seeding the store.
func (c Config) Definitions() []prayer.Definition {
	defs := make([]prayer.Definition, 0, len(c.Prayers))
	for _, p := range c.Prayers {
		name := p.Name
		if name == "" {
			name = p.Slot
		}
		defs = append(defs, prayer.Definition{SlotID: p.Slot, Name: name, Time: p.Time})
	}
	return defs
}
