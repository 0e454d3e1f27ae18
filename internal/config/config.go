// Package config reads the host-owned display settings and the plugin's own
// configuration file. Every loader degrades to documented defaults on any
// failure; a missing or corrupt file never propagates an error.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Plan is the subscription plan shown in the Account section.
type Plan string

const (
	PlanMax Plan = "max"
	PlanPro Plan = "pro"
)

// DisplayMode selects how much of the panel is rendered.
type DisplayMode string

const (
	ModeCompact  DisplayMode = "compact"
	ModeNormal   DisplayMode = "normal"
	ModeDetailed DisplayMode = "detailed"
)

// EffortLevel is the model effort setting read from the settings file.
type EffortLevel string

const (
	EffortLow    EffortLevel = "low"
	EffortMedium EffortLevel = "medium"
	EffortHigh   EffortLevel = "high"
)

// Display holds the host-owned display settings.
type Display struct {
	Plan Plan
	Mode DisplayMode
}

// DefaultDisplay is what LoadConfig returns when the config file is missing
// or unreadable.
func DefaultDisplay() Display {
	return Display{Plan: PlanMax, Mode: ModeNormal}
}

// configFile mirrors ~/.claude/config.json. Unknown fields are ignored.
type configFile struct {
	Plan        string `json:"plan"`
	DisplayMode string `json:"displayMode"`
}

// settingsFile mirrors ~/.claude/settings.json.
type settingsFile struct {
	EffortLevel string `json:"effortLevel"`
}

// ConfigPath returns the host config file path.
func ConfigPath() string {
	return claudePath("config.json")
}

// SettingsPath returns the host settings file path.
func SettingsPath() string {
	return claudePath("settings.json")
}

func claudePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", name)
}

// LoadConfig reads the display settings, falling back to defaults on any
// failure or unrecognized value.
func LoadConfig() Display {
	return loadConfigFrom(ConfigPath())
}

func loadConfigFrom(path string) Display {
	d := DefaultDisplay()

	data, err := os.ReadFile(path)
	if err != nil {
		return d
	}
	var cf configFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return d
	}

	switch Plan(cf.Plan) {
	case PlanMax, PlanPro:
		d.Plan = Plan(cf.Plan)
	}
	switch DisplayMode(cf.DisplayMode) {
	case ModeCompact, ModeNormal, ModeDetailed:
		d.Mode = DisplayMode(cf.DisplayMode)
	}
	return d
}

// LoadEffortLevel reads the effort setting, defaulting to high.
func LoadEffortLevel() EffortLevel {
	return loadEffortFrom(SettingsPath())
}

func loadEffortFrom(path string) EffortLevel {
	data, err := os.ReadFile(path)
	if err != nil {
		return EffortHigh
	}
	var sf settingsFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return EffortHigh
	}
	switch EffortLevel(sf.EffortLevel) {
	case EffortLow, EffortMedium, EffortHigh:
		return EffortLevel(sf.EffortLevel)
	}
	return EffortHigh
}
