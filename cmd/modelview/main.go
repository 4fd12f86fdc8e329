package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/leterax/lightscene/internal/logger"
	"github.com/leterax/lightscene/pkg/config"
	"github.com/leterax/lightscene/pkg/render"
)

func init() {
	// This is needed to ensure that the OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	modelPath := flag.String("model", "", "OBJ file to display")
	configPath := flag.String("config", "", "Path to a scene YAML file for window and control settings")
	flag.Parse()

	if *modelPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// The model takes the place of the house; there is no character
	cfg.Assets.House = *modelPath
	cfg.Assets.Character = ""
	cfg.Window.Title = "modelview - " + filepath.Base(*modelPath)

	log := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	renderer, err := render.NewRenderer(cfg, log)
	if err != nil {
		log.Error("Failed to initialize renderer", "error", err)
		os.Exit(1)
	}
	defer renderer.Cleanup()

	renderer.Run()
}
