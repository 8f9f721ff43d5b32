package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/promptdeck/platform/backend/internal/config"
	"github.com/promptdeck/platform/backend/internal/database"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/logger"
	"gorm.io/datatypes"
)

// importEntry is one legacy configuration in the import file
type importEntry struct {
	Category  string                 `json:"category"`
	RawConfig map[string]interface{} `json:"rawConfig"`
	OwnerRef  string                 `json:"ownerRef"`
}

func main() {
	file := flag.String("file", "legacy_configs.json", "path to the JSON file with legacy configurations")
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found or error loading it: %v", err)
	}

	loggerService, err := logger.NewService(&logger.Config{
		Level:  logger.InfoLevel,
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	configService := config.NewConfigService(loggerService)
	cfg, err := configService.Load(*configPath)
	if err != nil {
		loggerService.LogFatal(err, "Failed to load configuration")
	}

	dbService := database.NewDatabaseService(&cfg.Database, loggerService)
	db, err := dbService.Connect()
	if err != nil {
		loggerService.LogFatal(err, "Failed to connect to database")
	}
	defer dbService.Close()

	payload, err := os.ReadFile(*file)
	if err != nil {
		loggerService.LogFatal(err, fmt.Sprintf("Failed to read import file %s", *file))
	}

	var entries []importEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		loggerService.LogFatal(err, "Failed to parse import file")
	}

	repo := legacy.NewRepository(db)
	ctx := context.Background()

	imported := 0
	for i, entry := range entries {
		if entry.Category == "" {
			loggerService.LogWarn("Skipping entry with empty category", map[string]interface{}{
				"index": i,
			})
			continue
		}
		record := &legacy.Record{
			Category:  entry.Category,
			RawConfig: datatypes.JSONMap(entry.RawConfig),
			OwnerRef:  entry.OwnerRef,
		}
		if err := repo.Create(ctx, record); err != nil {
			loggerService.LogWarn("Failed to import entry", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		imported++
	}

	loggerService.LogInfo("Legacy config import complete", map[string]interface{}{
		"file":     *file,
		"imported": imported,
		"skipped":  len(entries) - imported,
	})
}
