package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Plugin is the plugin's own configuration, separate from the host-owned
// display settings.
type Plugin struct {
	RefreshInterval time.Duration // periodic refresh cadence
	Theme           string        // palette name, informational for now
}

// minRefreshInterval guards against hammering the usage endpoint.
const minRefreshInterval = 10 * time.Second

// DefaultPlugin returns the plugin defaults: 60s refresh, default theme.
func DefaultPlugin() Plugin {
	return Plugin{
		RefreshInterval: 60 * time.Second,
		Theme:           "catppuccin-mocha",
	}
}

// pluginFile mirrors config.toml on disk.
type pluginFile struct {
	RefreshInterval string `toml:"refresh_interval"`
	Theme           string `toml:"theme"`
}

// PluginPath returns the plugin config file path
// (~/.config/claude-dashboard/config.toml).
func PluginPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "claude-dashboard", "config.toml")
}

// LoadPlugin reads the plugin config, falling back to defaults for the whole
// file or any individual invalid value.
func LoadPlugin() Plugin {
	return loadPluginFrom(PluginPath())
}

func loadPluginFrom(path string) Plugin {
	p := DefaultPlugin()

	var pf pluginFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return p
	}

	if pf.RefreshInterval != "" {
		if d, err := time.ParseDuration(pf.RefreshInterval); err == nil {
			if d < minRefreshInterval {
				d = minRefreshInterval
			}
			p.RefreshInterval = d
		}
	}
	if pf.Theme != "" {
		p.Theme = pf.Theme
	}
	return p
}
