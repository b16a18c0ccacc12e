package cubes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000000, cfg.InstanceCount())
	assert.Equal(t, ControllerOrbit, cfg.Camera.Controller)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero near", func(c *Config) { c.Camera.Znear = 0 }},
		{"near past far", func(c *Config) { c.Camera.Znear = 200 }},
		{"near equals far", func(c *Config) { c.Camera.Znear = c.Camera.Zfar }},
		{"fov too wide", func(c *Config) { c.Camera.Fovy = 180 }},
		{"zero up", func(c *Config) { c.Camera.Up = [3]float32{} }},
		{"unknown controller", func(c *Config) { c.Camera.Controller = "fly" }},
		{"unknown mesh", func(c *Config) { c.Scene.Mesh = "sphere" }},
		{"empty grid axis", func(c *Config) { c.Scene.Grid[1] = 0 }},
		{"grid too large", func(c *Config) { c.Scene.Grid = [3]int{1000, 1000, 1000} }},
		{"grid axes overflow int", func(c *Config) { c.Scene.Grid = [3]int{1 << 30, 1 << 30, 1 << 30} }},
		{"unknown present mode", func(c *Config) { c.Render.PresentMode = "vsync" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigValidateGridBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Grid = [3]int{256, 256, 256}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, MaxInstances, cfg.InstanceCount())

	cfg.Scene.Grid[2] = 257
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg := DefaultConfig()
	data := []byte(`
camera:
  controller: auto
  fovy: 60
scene:
  grid: [10, 20, 30]
debug: true
`)
	require.NoError(t, ParseConfig(data, &cfg))

	assert.Equal(t, ControllerAuto, cfg.Camera.Controller)
	assert.Equal(t, float32(60), cfg.Camera.Fovy)
	assert.Equal(t, [3]int{10, 20, 30}, cfg.Scene.Grid)
	assert.True(t, cfg.Debug)

	// untouched keys keep their defaults
	assert.Equal(t, float32(0.1), cfg.Camera.Znear)
	assert.Equal(t, "Cubes", cfg.Window.Title)
	assert.Equal(t, MeshCube, cfg.Scene.Mesh)
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cubes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("camera:\n  znear: 0\n"), 0o644))
		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cubes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0o644))
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidConfig)
	})
}
