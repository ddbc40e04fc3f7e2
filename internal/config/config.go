// Package config provides user settings, defaults, and persistence for calm.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	MinLevel = 1
	MaxLevel = 4
)

// Settings holds the user-tunable knobs. Everything here survives restarts;
// transient session state never lands in this struct.
type Settings struct {
	Level     int    `mapstructure:"level"`
	Muted     bool   `mapstructure:"muted"`
	Lang      string `mapstructure:"lang"`
	CardTheme string `mapstructure:"card_theme"`
}

// Defaults returns the settings used when no config file exists yet.
func Defaults() Settings {
	return Settings{
		Level:     1,
		Muted:     false,
		Lang:      "en",
		CardTheme: "pastel",
	}
}

// Manager loads and saves settings from <dataDir>/config.yaml. Environment
// variables with the CALM_ prefix override file values (CALM_LEVEL, CALM_LANG).
type Manager struct {
	v    *viper.Viper
	path string
}

func NewManager(dataDir string) *Manager {
	v := viper.New()
	def := Defaults()
	v.SetDefault("level", def.Level)
	v.SetDefault("muted", def.Muted)
	v.SetDefault("lang", def.Lang)
	v.SetDefault("card_theme", def.CardTheme)

	v.SetEnvPrefix("CALM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dataDir, "config.yaml")
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	return &Manager{v: v, path: path}
}

// Path returns the config file location.
func (m *Manager) Path() string { return m.path }

// Load reads the config file if present and returns the merged settings.
// A missing file is not an error; the defaults apply.
func (m *Manager) Load() (Settings, error) {
	if err := m.v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Defaults(), fmt.Errorf("reading config: %w", err)
		}
	}

	var s Settings
	if err := m.v.Unmarshal(&s); err != nil {
		return Defaults(), fmt.Errorf("parsing config: %w", err)
	}
	return normalize(s), nil
}

// Save writes the given settings back to the config file.
func (m *Manager) Save(s Settings) error {
	s = normalize(s)
	m.v.Set("level", s.Level)
	m.v.Set("muted", s.Muted)
	m.v.Set("lang", s.Lang)
	m.v.Set("card_theme", s.CardTheme)
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// normalize clamps out-of-range values instead of rejecting them so a
// hand-edited file never prevents startup.
func normalize(s Settings) Settings {
	if s.Level < MinLevel {
		s.Level = MinLevel
	}
	if s.Level > MaxLevel {
		s.Level = MaxLevel
	}
	switch s.Lang {
	case "en", "id":
	default:
		s.Lang = "en"
	}
	switch s.CardTheme {
	case "pastel", "vibrant":
	default:
		s.CardTheme = "pastel"
	}
	return s
}
