package cubes

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// MaxInstances bounds the grid so the instance buffer stays addressable with
// 32-bit draw counts and under 512 MiB of instance data.
const MaxInstances = 1 << 24

const (
	ControllerNone  = "none"
	ControllerOrbit = "orbit"
	ControllerAuto  = "auto"

	MeshCube = "cube"
	MeshQuad = "quad"

	PresentFifo      = "fifo"
	PresentImmediate = "immediate"
	PresentMailbox   = "mailbox"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	Up     [3]float32 `yaml:"up"`

	Fovy  float32 `yaml:"fovy"` // degrees
	Znear float32 `yaml:"znear"`
	Zfar  float32 `yaml:"zfar"`

	Controller  string  `yaml:"controller"`
	Sensitivity float32 `yaml:"sensitivity"`
	OrbitRadius float32 `yaml:"orbit_radius"`
	AutoStep    float32 `yaml:"auto_step"`
	AutoRadius  float32 `yaml:"auto_radius"`
}

type SceneConfig struct {
	Mesh    string  `yaml:"mesh"`
	Grid    [3]int  `yaml:"grid"`
	Spacing float32 `yaml:"spacing"`
	Texture string  `yaml:"texture"`
}

type RenderConfig struct {
	PresentMode string     `yaml:"present_mode"`
	ClearColor  [4]float64 `yaml:"clear_color"`
	Depth       bool       `yaml:"depth"`
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Scene  SceneConfig  `yaml:"scene"`
	Render RenderConfig `yaml:"render"`
	Debug  bool         `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1920,
			Height: 1080,
			Title:  "Cubes",
		},
		Camera: CameraConfig{
			Eye:         [3]float32{0, 1, 2},
			Target:      [3]float32{0, 0, 0},
			Up:          [3]float32{0, 1, 0},
			Fovy:        45,
			Znear:       0.1,
			Zfar:        100,
			Controller:  ControllerOrbit,
			Sensitivity: 1,
			OrbitRadius: 15,
			AutoStep:    0.005,
			AutoRadius:  150,
		},
		Scene: SceneConfig{
			Mesh:    MeshCube,
			Grid:    [3]int{100, 100, 100},
			Spacing: 1.5,
		},
		Render: RenderConfig{
			PresentMode: PresentFifo,
			ClearColor:  [4]float64{0.1, 0.2, 0.3, 1.0},
			Depth:       true,
		},
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig.
// An empty path returns the defaults. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ParseConfig decodes YAML into cfg. Keys absent from data keep their current values.
func ParseConfig(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	cam := c.Camera
	if cam.Znear <= 0 {
		return fmt.Errorf("%w: znear must be > 0, got %v", ErrInvalidConfig, cam.Znear)
	}
	if cam.Znear >= cam.Zfar {
		return fmt.Errorf("%w: znear (%v) must be < zfar (%v)", ErrInvalidConfig, cam.Znear, cam.Zfar)
	}
	if cam.Fovy <= 0 || cam.Fovy >= 180 {
		return fmt.Errorf("%w: fovy must be in (0, 180), got %v", ErrInvalidConfig, cam.Fovy)
	}
	if cam.Up == [3]float32{} {
		return fmt.Errorf("%w: up vector is zero", ErrInvalidConfig)
	}
	switch cam.Controller {
	case ControllerNone, ControllerOrbit, ControllerAuto:
	default:
		return fmt.Errorf("%w: unknown camera controller %q", ErrInvalidConfig, cam.Controller)
	}

	switch c.Scene.Mesh {
	case MeshCube, MeshQuad:
	default:
		return fmt.Errorf("%w: unknown mesh %q", ErrInvalidConfig, c.Scene.Mesh)
	}
	total := 1
	for i, n := range c.Scene.Grid {
		if n <= 0 {
			return fmt.Errorf("%w: grid axis %d must be > 0, got %d", ErrInvalidConfig, i, n)
		}
		if n > MaxInstances/total {
			return fmt.Errorf("%w: grid %v exceeds %d instances", ErrInvalidConfig, c.Scene.Grid, MaxInstances)
		}
		total *= n
	}

	switch c.Render.PresentMode {
	case PresentFifo, PresentImmediate, PresentMailbox:
	default:
		return fmt.Errorf("%w: unknown present mode %q", ErrInvalidConfig, c.Render.PresentMode)
	}
	return nil
}

// InstanceCount is the number of grid cells the scene draws.
func (c Config) InstanceCount() int {
	return c.Scene.Grid[0] * c.Scene.Grid[1] * c.Scene.Grid[2]
}
