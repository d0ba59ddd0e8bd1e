// Command server runs the Yawmiyat journal HTTP API.
//
// STARTUP ORDER:
// 1. Parse flags (only --config and --version)
// 2. Load the YAML file; environment variables override it
// 3. Build the logger at the configured level
// 4. Validate the config and create the database directory
// 5. Hand everything to server.New and block in Start
//
// Until step 3 there is no configured logger, so early failures go through
// the default slog logger.
//
// RUNNING:
//   JWT_SECRET=$(openssl rand -hex 32) go run ./cmd/server --config yawmiyat.yaml
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sakif/yawmiyat/internal/config"
	"github.com/sakif/yawmiyat/internal/server"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"YAML config file; environment variables override it." type:"path" default:"yawmiyat.yaml"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("yawmiyat"),
		kong.Description("Arabic journaling server"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("loading config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		slog.Error("loading config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.EnsureDBDir(); err != nil {
		logger.Error("failed to create database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	// MISSING GEMINI KEY:
	// Not fatal. Users can store their own key in settings; without either
	// the assistant answers with a short Arabic hint.
	if cfg.Assistant.APIKey == "" {
		logger.Info("no server Gemini key; the assistant uses per-user keys only")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
