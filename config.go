package vulkanengine

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// Config is the engine configuration, usually read from a TOML file.
type Config struct {
	App        AppConfig    `toml:"app"`
	Window     WindowConfig `toml:"window"`
	Validation bool         `toml:"validation"`
	// Layers overrides the validation layers. Empty means the Khronos
	// validation layer.
	Layers   []string `toml:"layers"`
	Mesh     string   `toml:"mesh"`
	LogLevel string   `toml:"log_level"`
}

type AppConfig struct {
	Name       string  `toml:"name"`
	EngineName string  `toml:"engine_name"`
	Version    Version `toml:"version"`
	APIVersion Version `toml:"api_version"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// DefaultConfig returns the configuration used when no file is given.
// Validation is on unless the binary was built with the release tag.
func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			Name:       "VulkanEngine",
			EngineName: "No Engine",
			Version:    Version{Major: 1},
			APIVersion: Version{Major: 1},
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "VulkanEngine",
		},
		Validation: validationDefault,
		Mesh:       "models/cube.obj",
		LogLevel:   "info",
	}
}

// ParseConfig decodes TOML data over the defaults. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, errors.Wrapf(err, "config line %d column %d", row, col)
		}
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OpenConfig reads the TOML file at path over the defaults.
func OpenConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate reports values no component can work with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return l, nil
}

// Application returns the App description for instance creation.
func (c Config) Application() *App {
	return &App{
		Name:       c.App.Name,
		EngineName: c.App.EngineName,
		Version:    c.App.Version,
		APIVersion: c.App.APIVersion,
	}
}
