package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/leterax/lightscene/internal/logger"
	"github.com/leterax/lightscene/pkg/config"
	"github.com/leterax/lightscene/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to the scene YAML file (empty for defaults)")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log.Info("Starting lightscene", "config", *configPath, "nudge", cfg.Controls.NudgePolicy)

	renderer, err := render.NewRenderer(cfg, log)
	if err != nil {
		log.Error("Failed to initialize renderer", "error", err)
		os.Exit(1)
	}
	defer renderer.Cleanup()

	renderer.Run()
}
