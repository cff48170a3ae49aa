package vulkanengine

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, validationDefault, cfg.Validation)
	assert.NoError(t, cfg.Validate())

	app := cfg.Application()
	assert.Equal(t, "VulkanEngine", app.Name)
	assert.Empty(t, app.EnabledLayers)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
validation = false
mesh = "models/cube.obj"
log_level = "debug"

[app]
name = "viewer"
version = { major = 0, minor = 2, patch = 1 }

[window]
width = 1280
height = 720
`))
	require.NoError(t, err)

	assert.False(t, cfg.Validation)
	assert.Equal(t, "models/cube.obj", cfg.Mesh)
	assert.Equal(t, "viewer", cfg.App.Name)
	assert.Equal(t, Version{Major: 0, Minor: 2, Patch: 1}, cfg.App.Version)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "VulkanEngine", cfg.Window.Title, "unset keys keep defaults")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  `colour = "red"`,
		"bad syntax":   `validation = `,
		"bad size":     "[window]\nwidth = 0",
		"bad loglevel": `log_level = "loud"`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestOpenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte("layers = [\"VK_LAYER_custom\"]\n"), 0o644))

	cfg, err := OpenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"VK_LAYER_custom"}, cfg.Layers)

	_, err = OpenConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
