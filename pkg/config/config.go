// Package config loads the YAML configuration of the scene viewer
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/leterax/lightscene/pkg/scene"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid config")

// Config is the root of the configuration file
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Assets   AssetsConfig   `yaml:"assets"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
}

// WindowConfig describes the GLFW window
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// AssetsConfig holds paths to models and shaders
type AssetsConfig struct {
	House     string `yaml:"house"`
	Character string `yaml:"character"`
	ShaderDir string `yaml:"shader_dir"`
	Workers   int    `yaml:"workers"` // asset decode goroutines, 0 picks one per CPU

	MaxTextureSize int `yaml:"max_texture_size"`
}

// ControlsConfig tunes input handling
type ControlsConfig struct {
	MoveSpeed     float32    `yaml:"move_speed"`
	Sensitivity   float32    `yaml:"sensitivity"`
	NudgePolicy   string     `yaml:"nudge_policy"`
	NudgeSpeed    float32    `yaml:"nudge_speed"`
	PlayerStart   [3]float32 `yaml:"player_start,flow"`
	LampStart     [3]float32 `yaml:"lamp_start,flow"`
	CaptureCursor bool       `yaml:"capture_cursor"`
}

// LoggingConfig selects log level and format
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WatchConfig controls hot reloading of shader sources
type WatchConfig struct {
	Shaders bool `yaml:"shaders"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	settings := scene.DefaultSettings()
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Fuentes de luz",
			VSync:  true,
		},
		Assets: AssetsConfig{
			House:     "assets/models/casafinal.obj",
			Character: "assets/models/snoopy.obj",
			ShaderDir: "assets/shaders",

			MaxTextureSize: 4096,
		},
		Controls: ControlsConfig{
			MoveSpeed:     settings.MoveSpeed,
			Sensitivity:   settings.Sensitivity,
			NudgePolicy:   settings.NudgePolicy.String(),
			NudgeSpeed:    settings.NudgeSpeed,
			PlayerStart:   settings.PlayerStart,
			LampStart:     settings.LampStart,
			CaptureCursor: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Shaders: true,
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result. Fields absent from
// data keep their current values.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var problems []string

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Assets.ShaderDir == "" {
		problems = append(problems, "assets.shader_dir is required")
	}
	if c.Assets.Workers < 0 {
		problems = append(problems, "assets.workers must not be negative")
	}
	if c.Assets.MaxTextureSize < 0 {
		problems = append(problems, "assets.max_texture_size must not be negative")
	}
	if c.Controls.MoveSpeed < 0 {
		problems = append(problems, "controls.move_speed must not be negative")
	}
	if c.Controls.Sensitivity <= 0 {
		problems = append(problems, "controls.sensitivity must be positive")
	}
	if c.Controls.NudgeSpeed < 0 {
		problems = append(problems, "controls.nudge_speed must not be negative")
	}
	if _, err := scene.ParseNudgePolicy(c.Controls.NudgePolicy); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// SceneSettings converts the controls section into simulation settings.
// The config must have passed Validate.
func (c *Config) SceneSettings() scene.Settings {
	policy, _ := scene.ParseNudgePolicy(c.Controls.NudgePolicy)
	return scene.Settings{
		MoveSpeed:   c.Controls.MoveSpeed,
		Sensitivity: c.Controls.Sensitivity,
		NudgePolicy: policy,
		NudgeSpeed:  c.Controls.NudgeSpeed,
		PlayerStart: mgl32.Vec3(c.Controls.PlayerStart),
		LampStart:   mgl32.Vec3(c.Controls.LampStart),
	}
}
