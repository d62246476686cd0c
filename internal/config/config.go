// Package config holds the console configuration. Defaults are embedded from
// default_config.yaml; a user file is decoded on top of them so it only
// needs the keys it changes.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefault []byte

// Config is the effective configuration.
type Config struct {
	App    AppConfig         `yaml:"app"`
	Server ServerConfig      `yaml:"server"`
	Routes map[string]string `yaml:"routes"`
	UI     UIConfig          `yaml:"ui"`
	Log    LogConfig         `yaml:"log"`
}

// AppConfig names the application.
type AppConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ServerConfig points form submission at the HRIS server.
type ServerConfig struct {
	BaseURL    string `yaml:"base_url"`
	Timeout    string `yaml:"timeout"`
	CSRFHeader string `yaml:"csrf_header"`
	CSRFToken  string `yaml:"csrf_token"`
}

// TimeoutDuration parses Timeout. Validate has already rejected bad values.
func (s ServerConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

// UIConfig covers themes and component defaults.
type UIConfig struct {
	Theme    string                 `yaml:"theme"`
	Themes   map[string]ThemeConfig `yaml:"themes"`
	Selector SelectorConfig         `yaml:"selector"`
	Splash   SplashConfig           `yaml:"splash"`
}

// ThemeConfig holds ANSI 256 color numbers or hex colors.
type ThemeConfig struct {
	Foreground  string `yaml:"foreground"`
	Muted       string `yaml:"muted"`
	Accent      string `yaml:"accent"`
	HighlightBG string `yaml:"highlight_bg"`
	Error       string `yaml:"error"`
	Success     string `yaml:"success"`
	Border      string `yaml:"border"`
}

// SelectorConfig sets defaults for every filterable selector.
type SelectorConfig struct {
	MaxRows     int    `yaml:"max_rows"`
	Placeholder string `yaml:"placeholder"`
	EmptyText   string `yaml:"empty_text"`
}

// SplashConfig drives the startup frame sequence.
type SplashConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval string   `yaml:"interval"`
	Frames   []string `yaml:"frames"`
}

// IntervalDuration parses Interval. Validate has already rejected bad values.
func (s SplashConfig) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(s.Interval)
	return d
}

// LogConfig mirrors the --log-level and --log-file flags.
type LogConfig struct {
	Level int8   `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultYAML returns a copy of the embedded defaults.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefault...)
}

// Default decodes the embedded defaults.
func Default() (Config, error) {
	return Parse(embeddedDefault, Config{})
}

// Parse decodes data on top of base. Keys absent from data keep base's
// values; maps merge key by key.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base.clone()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	// Map values decode whole, so a partial theme keeps base's other colors.
	for name, theme := range cfg.UI.Themes {
		if prev, ok := base.UI.Themes[name]; ok {
			cfg.UI.Themes[name] = theme.fill(prev)
		}
	}
	return cfg, nil
}

func (t ThemeConfig) fill(from ThemeConfig) ThemeConfig {
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return ThemeConfig{
		Foreground:  pick(t.Foreground, from.Foreground),
		Muted:       pick(t.Muted, from.Muted),
		Accent:      pick(t.Accent, from.Accent),
		HighlightBG: pick(t.HighlightBG, from.HighlightBG),
		Error:       pick(t.Error, from.Error),
		Success:     pick(t.Success, from.Success),
		Border:      pick(t.Border, from.Border),
	}
}

// Load returns the defaults merged with the file at path. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, fmt.Errorf("load default config: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = Parse(data, cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the rest of the program parses later.
func (c Config) Validate() error {
	if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
		return fmt.Errorf("server.timeout: %w", err)
	}
	if c.UI.Splash.Enabled {
		if d, err := time.ParseDuration(c.UI.Splash.Interval); err != nil || d <= 0 {
			return fmt.Errorf("ui.splash.interval must be a positive duration, got %q", c.UI.Splash.Interval)
		}
	}
	if _, ok := c.UI.Themes[c.UI.Theme]; !ok {
		return fmt.Errorf("ui.theme %q is not defined under ui.themes", c.UI.Theme)
	}
	if c.UI.Selector.MaxRows < 1 {
		return fmt.Errorf("ui.selector.max_rows must be at least 1, got %d", c.UI.Selector.MaxRows)
	}
	return nil
}

// Theme returns the active theme.
func (c Config) Theme() ThemeConfig {
	return c.UI.Themes[c.UI.Theme]
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func (c Config) clone() Config {
	out := c
	out.Routes = make(map[string]string, len(c.Routes))
	for k, v := range c.Routes {
		out.Routes[k] = v
	}
	out.UI.Themes = make(map[string]ThemeConfig, len(c.UI.Themes))
	for k, v := range c.UI.Themes {
		out.UI.Themes[k] = v
	}
	out.UI.Splash.Frames = append([]string(nil), c.UI.Splash.Frames...)
	return out
}
