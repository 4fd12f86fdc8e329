package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/lightscene/pkg/scene"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if got := cfg.SceneSettings(); got != scene.DefaultSettings() {
		t.Errorf("SceneSettings() = %+v, want %+v", got, scene.DefaultSettings())
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Assets != Default().Assets {
		t.Errorf("Assets = %+v, want defaults", cfg.Assets)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := `
window:
  width: 1280
  height: 720
assets:
  character: models/dog.obj
  workers: 2
controls:
  nudge_policy: scaled
  nudge_speed: 1.5
  player_start: [1, 2, 3]
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 1280x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != Default().Window.Title {
		t.Errorf("title = %q, want default kept", cfg.Window.Title)
	}
	if cfg.Assets.Character != "models/dog.obj" || cfg.Assets.House != Default().Assets.House {
		t.Errorf("assets = %+v", cfg.Assets)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}

	settings := cfg.SceneSettings()
	if settings.NudgePolicy != scene.NudgeScaled || settings.NudgeSpeed != 1.5 {
		t.Errorf("nudge = %v/%v, want scaled/1.5", settings.NudgePolicy, settings.NudgeSpeed)
	}
	if settings.PlayerStart != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("PlayerStart = %v, want (1,2,3)", settings.PlayerStart)
	}
	if settings.MoveSpeed != scene.DefaultMoveSpeed {
		t.Errorf("MoveSpeed = %v, want default", settings.MoveSpeed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"zero width", "window: {width: 0}", "window size"},
		{"negative workers", "assets: {workers: -1}", "assets.workers"},
		{"negative texture size", "assets: {max_texture_size: -8}", "max_texture_size"},
		{"no shader dir", "assets: {shader_dir: \"\"}", "shader_dir"},
		{"bad policy", "controls: {nudge_policy: sometimes}", "nudge policy"},
		{"zero sensitivity", "controls: {sensitivity: 0}", "sensitivity"},
		{"negative speed", "controls: {move_speed: -3}", "move_speed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse([]byte(tt.data), Default())
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Parse() error = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	tests := []string{
		"window: [",
		"controls: {player_start: [1, 2]}",
		"window: {width: wide}",
	}

	for _, data := range tests {
		err := Parse([]byte(data), Default())
		if err == nil {
			t.Errorf("Parse(%q) = nil, want error", data)
			continue
		}
		if errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) = %v, want a decode error", data, err)
		}
	}
}

func TestExampleSceneFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "scene.yaml"))
	if err != nil {
		t.Fatalf("Load(scene.yaml) error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("scene.yaml = %+v, want it to spell out the defaults %+v", *cfg, *Default())
	}
}
