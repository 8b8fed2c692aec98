package main

import (
	"context"
	"errors"
	"os"

	"github.com/duskthistle/swipereel/internal/services"
	"github.com/duskthistle/swipereel/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
			configPath = "config.toml"
		}
	}

	backend := services.NewBackendService(services.BackendOpts{
		BaseURL:        config.Backend.BaseURL,
		RequestTimeout: config.Backend.RequestTimeoutDuration(),
		RateLimit:      config.Backend.RateLimit,
		RateLimitBurst: config.Backend.RateLimitBurst,
	})

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Service:    backend,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "swipereel",
		Usage:    "Review short clips and publish the keepers",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
