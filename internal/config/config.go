package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"soccer/internal/game"
)

// Environment overrides.
const (
	EnvSeed     = "SOCCER_SEED"
	EnvLogLevel = "SOCCER_LOG_LEVEL"
)

// Config holds everything the frontends read at start-up. Rules may also be
// swapped in while a match runs (see Watcher).
type Config struct {
	// Seed drives serves and effects. Zero picks one from the clock.
	Seed     uint64 `yaml:"seed"`
	TickRate int    `yaml:"tick_rate"` // simulation steps per second

	Rules  game.Rules   `yaml:"rules"`
	Window WindowConfig `yaml:"window"`
	Audio  AudioConfig  `yaml:"audio"`
	Log    LogConfig    `yaml:"log"`

	// CPU names the pilot that drives the away side ("" = second human).
	CPU string `yaml:"cpu"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type AudioConfig struct {
	Mute   bool    `yaml:"mute"`
	Volume float64 `yaml:"volume"` // 0..1
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		TickRate: game.TickRate,
		Rules:    game.DefaultRules(),
		Window: WindowConfig{
			Title:  "Soccer",
			Width:  game.WindowWidth,
			Height: game.WindowHeight,
			VSync:  true,
		},
		Audio: AudioConfig{Volume: 0.6},
		Log:   LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults and applies env overrides. An empty path
// or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	return LoadWith(path, nil)
}

// LoadWith is Load with a final adjustment, such as command-line flags,
// applied after env overrides and before validation. adjust may be nil.
func LoadWith(path string, adjust func(*Config)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c *Config) applyEnvOverrides() error {
	if s := os.Getenv(EnvSeed); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, s, err)
		}
		c.Seed = v
	}
	if s := os.Getenv(EnvLogLevel); s != "" {
		c.Log.Level = s
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate=%d: must be positive", c.TickRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window %dx%d: must be positive", c.Window.Width, c.Window.Height)
	}
	if !(c.Audio.Volume >= 0 && c.Audio.Volume <= 1) {
		return fmt.Errorf("audio.volume=%v: must be in [0, 1]", c.Audio.Volume)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format=%q: want json or console", c.Log.Format)
	}
	if c.CPU != "" {
		if _, err := game.NewPilot(c.CPU, 1); err != nil {
			return fmt.Errorf("cpu: %w", err)
		}
	}
	return nil
}

// MatchSeed returns the configured seed, or one from the clock when unset.
func (c *Config) MatchSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
