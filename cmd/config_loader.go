package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/pkg/settings"
)

// configLoader resolves which config file applies and merges it over the
// embedded defaults.
type configLoader struct {
	getenv  func(string) string
	homeDir func() (string, error)
	load    func(string) (config.Config, error)
}

var cfgLoader = configLoader{getenv: os.Getenv, homeDir: os.UserHomeDir, load: config.Load}

func loadConfig(explicit string) (config.Config, error) {
	return cfgLoader.loadConfig(explicit)
}

func (l configLoader) loadConfig(explicit string) (config.Config, error) {
	cfg, err := l.load(l.resolvePath(explicit))
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// resolvePath returns the explicit path if set, then $HRIS_CONFIG, then
// $XDG_CONFIG_HOME/hris/config.yaml or ~/.config/hris/config.yaml when that
// file exists. An empty result means the defaults alone.
func (l configLoader) resolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := l.getenv(settings.ConfigEnvVar); env != "" {
		return env
	}
	candidate := ""
	if xdg := l.getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := l.homeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
