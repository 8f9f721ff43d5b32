package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/promptdeck/platform/backend/internal/config"
	"github.com/promptdeck/platform/backend/internal/logger"
)

func main() {
	ctx := context.Background()

	// Bootstrap logger; replaced by the configured one once config is loaded
	loggerService, err := logger.NewService(&logger.Config{Level: logger.InfoLevel, Format: "json", Output: "stdout"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	configService := config.NewConfigService(loggerService)
	cfg, err := configService.Load(".")
	if err != nil {
		loggerService.LogFatal(err, "Failed to load configuration")
	}

	logCfg := &logger.Config{
		Level:       logger.Level(cfg.Logging.Level),
		Format:      cfg.Logging.Format,
		Output:      cfg.Logging.Output,
		Development: cfg.Logging.Development,
	}
	logCfg.File.Enabled = cfg.Logging.File.Enabled
	logCfg.File.Path = cfg.Logging.File.Path
	loggerService, err = logger.NewService(logCfg)
	if err != nil {
		log.Fatalf("Failed to initialize configured logger: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	app, err := NewApp(ctx, cfg, loggerService)
	if err != nil {
		loggerService.LogFatal(err, "Failed to initialize application")
	}

	if err := app.Run(); err != nil {
		log.Printf("Application error: %v", err)
	}

	<-ctx.Done()

	if err := app.Shutdown(); err != nil {
		fmt.Printf("Error during shutdown: %v\n", err)
		os.Exit(1)
	}
}
