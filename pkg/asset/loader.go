package asset

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Model is a parsed OBJ file with every texture it references decoded
type Model struct {
	Path     string
	Data     *ModelData
	Textures map[string]*image.NRGBA
}

// Texture returns the decoded image for path, or nil
func (m *Model) Texture(path string) *image.NRGBA {
	if path == "" {
		return nil
	}
	return m.Textures[path]
}

// Loader parses models and decodes textures on a shared worker pool. It is
// meant to run before the render loop; nothing it produces touches OpenGL.
type Loader struct {
	pool           worker.DynamicWorkerPool
	log            *slog.Logger
	maxTextureSize int
}

// NewLoader creates a loader with the given number of workers. workers <= 0
// uses one per CPU. Textures larger than maxTextureSize on either side are
// downscaled; 0 disables the limit.
func NewLoader(workers, maxTextureSize int, log *slog.Logger) *Loader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		pool:           worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		log:            log,
		maxTextureSize: maxTextureSize,
	}
}

// LoadModels loads every path. The result has one entry per path in input
// order; entries whose model failed to load are nil and their errors are
// joined into the returned error. A texture that fails to decode is logged
// and left out of Textures so the mesh falls back to its material color.
func (l *Loader) LoadModels(paths ...string) ([]*Model, error) {
	start := time.Now()
	models := make([]*Model, len(paths))
	errs := make([]error, len(paths))

	// Phase 1: geometry and materials
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				data, err := LoadOBJ(path)
				if err != nil {
					errs[i] = fmt.Errorf("failed to load model %s: %w", path, err)
					return nil, errs[i]
				}
				models[i] = &Model{Path: path, Data: data, Textures: make(map[string]*image.NRGBA)}
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: textures, each distinct file decoded once
	var unique []string
	seen := make(map[string]bool)
	for _, m := range models {
		if m == nil {
			continue
		}
		for _, p := range m.Data.TexturePaths() {
			if !seen[p] {
				seen[p] = true
				unique = append(unique, p)
			}
		}
	}

	images := make([]*image.NRGBA, len(unique))
	for i, path := range unique {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID: len(paths) + i,
			Do: func() (any, error) {
				defer wg.Done()
				img, err := LoadImage(path)
				if err != nil {
					l.log.Warn("Texture skipped", "path", path, "error", err)
					return nil, err
				}
				images[i] = Downscale(img, l.maxTextureSize)
				return nil, nil
			},
		})
	}
	wg.Wait()

	decoded := make(map[string]*image.NRGBA, len(unique))
	for i, path := range unique {
		if images[i] != nil {
			decoded[path] = images[i]
		}
	}
	for _, m := range models {
		if m == nil {
			continue
		}
		for _, p := range m.Data.TexturePaths() {
			if img, ok := decoded[p]; ok {
				m.Textures[p] = img
			}
		}
		l.log.Debug("Loaded model", "path", m.Path, "meshes", len(m.Data.Meshes), "textures", len(m.Textures))
	}

	l.log.Info("Assets loaded", "models", len(paths), "textures", len(decoded), "took", time.Since(start))
	return models, errors.Join(errs...)
}
