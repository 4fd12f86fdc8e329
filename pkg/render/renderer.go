package render

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/lightscene/internal/openglhelper"
	"github.com/leterax/lightscene/pkg/asset"
	"github.com/leterax/lightscene/pkg/config"
	"github.com/leterax/lightscene/pkg/scene"
)

// Renderer owns the window, the GPU resources and the scene state, and runs
// the frame loop
type Renderer struct {
	window *openglhelper.Window
	log    *slog.Logger
	state  *scene.State

	lightingShader *openglhelper.Shader
	lampShader     *openglhelper.Shader

	house     *Model
	character *Model
	lampCube  *openglhelper.Mesh
	textures  *textureCache

	watcher *ShaderWatcher

	projection mgl32.Mat4

	// Timing
	lastFrameTime float64
	deltaTime     float32

	closed bool
}

// ErrWindow wraps window and GL loader failures, which callers treat as fatal
var ErrWindow = errors.New("window initialization failed")

// NewRenderer creates the window, compiles the shaders and loads the models
// named in cfg. Models that fail to load are logged and skipped; window,
// GL and shader failures are returned.
func NewRenderer(cfg *config.Config, log *slog.Logger) (*Renderer, error) {
	window, err := openglhelper.NewWindow(openglhelper.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}

	r := &Renderer{
		window:   window,
		log:      log,
		state:    scene.NewState(cfg.SceneSettings()),
		textures: newTextureCache(),
	}
	width, height := window.Size()
	r.projection = scene.Perspective(width, height)

	if err := r.loadShaders(cfg.Assets.ShaderDir); err != nil {
		r.Cleanup()
		return nil, err
	}

	r.loadModels(cfg)
	r.lampCube = openglhelper.NewCube()

	glfwWindow := window.GLFWWindow()
	glfwWindow.SetKeyCallback(r.keyCallback)
	glfwWindow.SetCursorPosCallback(r.cursorPosCallback)
	glfwWindow.SetMouseButtonCallback(r.mouseButtonCallback)
	glfwWindow.SetFramebufferSizeCallback(r.framebufferSizeCallback)

	if cfg.Controls.CaptureCursor {
		window.SetMouseCaptured(true)
	}

	if cfg.Watch.Shaders {
		watcher, err := NewShaderWatcher(cfg.Assets.ShaderDir)
		if err != nil {
			// Hot reload is a convenience; keep running without it
			log.Warn("Shader watcher disabled", "dir", cfg.Assets.ShaderDir, "error", err)
		} else {
			r.watcher = watcher
		}
	}

	return r, nil
}

func (r *Renderer) loadShaders(dir string) error {
	lighting, err := openglhelper.LoadShaderFromFiles(
		filepath.Join(dir, LightingVertex), filepath.Join(dir, LightingFragment))
	if err != nil {
		return fmt.Errorf("failed to load lighting shader: %w", err)
	}
	r.lightingShader = lighting

	lamp, err := openglhelper.LoadShaderFromFiles(
		filepath.Join(dir, LampVertex), filepath.Join(dir, LampFragment))
	if err != nil {
		return fmt.Errorf("failed to load lamp shader: %w", err)
	}
	r.lampShader = lamp
	return nil
}

// loadModels decodes the house and the character in parallel, then uploads
// them on this thread
func (r *Renderer) loadModels(cfg *config.Config) {
	var paths []string
	for _, p := range []string{cfg.Assets.House, cfg.Assets.Character} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return
	}

	loader := asset.NewLoader(cfg.Assets.Workers, cfg.Assets.MaxTextureSize, r.log)
	models, err := loader.LoadModels(paths...)
	if err != nil {
		r.log.Warn("Some models were skipped", "error", err)
	}

	for _, m := range models {
		if m == nil {
			continue
		}
		gpu := uploadModel(m, r.textures)
		switch m.Path {
		case cfg.Assets.House:
			r.house = gpu
		case cfg.Assets.Character:
			r.character = gpu
		}
	}
}

// State returns the scene state driven by this renderer
func (r *Renderer) State() *scene.State {
	return r.state
}

// Run starts the main rendering loop. It returns when the window is asked
// to close.
func (r *Renderer) Run() {
	r.lastFrameTime = r.window.Time()

	for !r.window.ShouldClose() {
		currentTime := r.window.Time()
		r.deltaTime = float32(currentTime - r.lastFrameTime)
		r.lastFrameTime = currentTime

		r.window.PollEvents()
		r.state.ApplyMovement(r.deltaTime)
		r.reloadShaders()

		r.render(currentTime)
		r.window.SwapBuffers()
	}
}

// reloadShaders recompiles programs whose sources changed. A failed
// compile keeps the previous program.
func (r *Renderer) reloadShaders() {
	if r.watcher == nil {
		return
	}

	select {
	case err := <-r.watcher.Errors:
		if err != nil {
			r.log.Warn("Shader watcher error", "error", err)
		}
	default:
	}

	for _, path := range r.watcher.Drain() {
		for _, shader := range []*openglhelper.Shader{r.lightingShader, r.lampShader} {
			vert, frag := shader.Sources()
			if filepath.Clean(vert) != path && filepath.Clean(frag) != path {
				continue
			}
			if err := shader.Reload(); err != nil {
				r.log.Error("Shader reload failed, keeping previous program", "path", path, "error", err)
				continue
			}
			r.log.Info("Shader reloaded", "path", path)
		}
	}
}

// render draws one frame at elapsed time t
func (r *Renderer) render(t float64) {
	frame := r.state.Frame(t, r.projection)

	r.window.Clear(ClearColor)

	r.lightingShader.Use()
	r.lightingShader.SetMat4("view", frame.View)
	r.lightingShader.SetMat4("projection", frame.Projection)
	r.lightingShader.SetInt("material.diffuse", DiffuseUnit)
	r.lightingShader.SetInt("material.specular", SpecularUnit)
	frame.Lighting.Apply(r.lightingShader)

	if r.house != nil {
		r.lightingShader.SetMat4("model", frame.House)
		r.lightingShader.SetInt("transparency", 0)
		r.house.Draw(r.lightingShader)
	}
	if r.character != nil {
		r.lightingShader.SetMat4("model", frame.Character)
		r.character.Draw(r.lightingShader)
	}

	r.lampShader.Use()
	r.lampShader.SetMat4("view", frame.View)
	r.lampShader.SetMat4("projection", frame.Projection)
	for i, model := range frame.Lamps {
		color := LampColor
		if i == 0 && r.state.Toggle.Active() {
			color = frame.Lighting.Points[0].Diffuse
		}
		r.lampShader.SetMat4("model", model)
		r.lampShader.SetVec3("lampColor", color)
		r.lampCube.Draw()
	}
}

// Cleanup frees all resources and closes the window
func (r *Renderer) Cleanup() {
	if r.closed {
		return
	}
	r.closed = true

	if r.watcher != nil {
		_ = r.watcher.Close()
		r.watcher = nil
	}
	for _, m := range []*Model{r.house, r.character} {
		if m != nil {
			m.Delete()
		}
	}
	r.house, r.character = nil, nil
	if r.lampCube != nil {
		r.lampCube.Delete()
		r.lampCube = nil
	}
	r.textures.delete()
	for _, s := range []*openglhelper.Shader{r.lightingShader, r.lampShader} {
		if s != nil {
			s.Delete()
		}
	}
	r.lightingShader, r.lampShader = nil, nil

	r.window.Close()
}

// Callback functions
func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k, a := sceneKey(key), sceneAction(action)

	if k == scene.KeyQuit && a == scene.Press {
		r.window.SetShouldClose(true)
	}

	// Toggle mouse capture with C key
	if k == scene.KeyCaptureMouse && a == scene.Press {
		r.window.ToggleMouseCaptured()
		r.state.Camera.ResetMouse()
	}

	if r.state.HandleKey(k, a) {
		r.log.Debug("Lamp toggled", "active", r.state.Toggle.Active())
	}
}

func (r *Renderer) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if r.window.IsMouseCaptured() {
		r.state.HandleCursor(xpos, ypos)
	}
}

func (r *Renderer) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	// Clicking into the window grabs the cursor again after C released it
	if button == glfw.MouseButtonLeft && action == glfw.Press && !r.window.IsMouseCaptured() {
		r.window.SetMouseCaptured(true)
		r.state.Camera.ResetMouse()
	}
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
	r.projection = scene.Perspective(width, height)
	r.log.Debug("Framebuffer resized", "width", width, "height", height)
}
