package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-gridlink/control"

	"gopkg.in/yaml.v3"
)

// ErrUnknownType is returned for a controller type that is not supported.
var ErrUnknownType = errors.New("unknown controller type")

// ControllerType identifies the kind of controller
type ControllerType string

const (
	ControllerLaunchpadX    ControllerType = "launchpad-x"
	ControllerLaunchpadMini ControllerType = "launchpad-mini"
	ControllerLaunchpadPro  ControllerType = "launchpad-pro"
	ControllerKeyboard      ControllerType = "keyboard"
)

// ParseControllerType parses a controller type name.
func ParseControllerType(s string) (ControllerType, error) {
	switch t := ControllerType(strings.ToLower(strings.TrimSpace(s))); t {
	case ControllerLaunchpadX, ControllerLaunchpadMini, ControllerLaunchpadPro, ControllerKeyboard:
		return t, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownType)
}

func (t *ControllerType) UnmarshalText(text []byte) error {
	parsed, err := ParseControllerType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsGrid reports whether the type is a Launchpad surface.
func (t ControllerType) IsGrid() bool {
	return t != ControllerKeyboard
}

// ControllerConfig defines a saved controller configuration
type ControllerConfig struct {
	PortName     string         `yaml:"portName"`
	Type         ControllerType `yaml:"type"`
	AutoConnect  bool           `yaml:"autoConnect"`
	InputChannel int            `yaml:"inputChannel,omitempty"` // for keyboards
}

// SynthOutputConfig defines the MIDI output clips play to
type SynthOutputConfig struct {
	PortName string `yaml:"portName,omitempty"`
}

// NoteConfig is one note of a preset clip.
type NoteConfig struct {
	Step     int   `yaml:"step"`
	Pitch    uint8 `yaml:"pitch"`
	Velocity uint8 `yaml:"velocity"`
}

// ClipConfig places a clip on the grid at startup.
type ClipConfig struct {
	Track   int                    `yaml:"track"`
	Slot    int                    `yaml:"slot"`
	Color   int                    `yaml:"color"`
	Length  int                    `yaml:"length,omitempty"` // beats
	NoteOn  control.LaunchBehavior `yaml:"noteOn"`  // defaults to trigger
	NoteOff control.LaunchBehavior `yaml:"noteOff"` // defaults to noop
	Notes   []NoteConfig           `yaml:"notes,omitempty"`
}

// UnmarshalYAML fills in the default launch behaviors for omitted keys.
func (c *ClipConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ClipConfig
	clip := plain{NoteOn: control.LaunchTrigger, NoteOff: control.LaunchNoop}
	if err := value.Decode(&clip); err != nil {
		return err
	}
	*c = ClipConfig(clip)
	return nil
}

// EngineConfig sizes the clip grid and its clock.
type EngineConfig struct {
	Tracks      int          `yaml:"tracks"`
	Slots       int          `yaml:"slots"`
	Tempo       int          `yaml:"tempo"`
	BeatsPerBar int          `yaml:"beatsPerBar"`
	Clips       []ClipConfig `yaml:"clips,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `yaml:"palette,omitempty"` // GIMP palette replacing the built-in pad colours
}

// DebugConfig controls the debug log.
type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"` // defaults to debug.log in ConfigDir
}

// Config is the main configuration structure
type Config struct {
	Controllers []ControllerConfig `yaml:"controllers,omitempty"`
	SynthOutput SynthOutputConfig  `yaml:"synthOutput,omitempty"`
	Engine      EngineConfig       `yaml:"engine"`
	UI          UIConfig           `yaml:"ui,omitempty"`
	Debug       DebugConfig        `yaml:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Controllers: []ControllerConfig{
			{PortName: "LPX DAW", Type: ControllerLaunchpadX, AutoConnect: true},
			{PortName: "LPMiniMK3 DAW", Type: ControllerLaunchpadMini, AutoConnect: true},
			{PortName: "LPProMK3 DAW", Type: ControllerLaunchpadPro, AutoConnect: true},
		},
		Engine: EngineConfig{
			Tracks:      16,
			Slots:       16,
			Tempo:       120,
			BeatsPerBar: 4,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-gridlink"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file. Missing files yield the defaults, and so
// do sections missing from the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every preset clip fits the grid.
func (c *Config) Validate() error {
	e := c.Engine
	if e.Tracks < 1 || e.Slots < 1 {
		return fmt.Errorf("engine grid %dx%d must be at least 1x1", e.Tracks, e.Slots)
	}
	for _, clip := range e.Clips {
		if clip.Track < 0 || clip.Track >= e.Tracks || clip.Slot < 0 || clip.Slot >= e.Slots {
			return fmt.Errorf("clip %d/%d outside %dx%d grid", clip.Track, clip.Slot, e.Tracks, e.Slots)
		}
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DebugPath returns where the debug log goes.
func (c *Config) DebugPath() (string, error) {
	if c.Debug.Path != "" {
		return c.Debug.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// FindController finds a controller config by port name
func (c *Config) FindController(portName string) *ControllerConfig {
	for i := range c.Controllers {
		if c.Controllers[i].PortName == portName {
			return &c.Controllers[i]
		}
	}
	return nil
}

// AddController adds or updates a controller config
func (c *Config) AddController(ctrl ControllerConfig) {
	for i := range c.Controllers {
		if c.Controllers[i].PortName == ctrl.PortName {
			c.Controllers[i] = ctrl
			return
		}
	}
	c.Controllers = append(c.Controllers, ctrl)
}

// AutoConnectControllers returns controllers with autoConnect enabled
func (c *Config) AutoConnectControllers() []ControllerConfig {
	var result []ControllerConfig
	for _, ctrl := range c.Controllers {
		if ctrl.AutoConnect {
			result = append(result, ctrl)
		}
	}
	return result
}
