package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/uuid"

	"github.com/pantryloop/backend/config"
	"github.com/pantryloop/backend/internal/database"
	"github.com/pantryloop/backend/internal/logger"
	"github.com/pantryloop/backend/internal/service"
)

// Seeds an existing group's catalog from a template file. Intended for
// bootstrapping demo or test groups from the command line.
func main() {
	groupFlag := flag.String("group", "", "id of the group to seed")
	fileFlag := flag.String("file", "", "template file (defaults to TEMPLATE_FILE)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(string(cfg.Env))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	groupID, err := uuid.Parse(*groupFlag)
	if err != nil {
		zlog.Fatalw("invalid group id", "group", *groupFlag, "error", err)
	}

	file := *fileFlag
	if file == "" {
		file = cfg.TemplateFile
	}

	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatalw("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatalw("failed to run migrations", "error", err)
	}

	seeder := service.NewSeedService(db, zlog)
	if err := seeder.SeedFromFile(context.Background(), groupID, file); err != nil {
		zlog.Fatalw("seeding failed", "group_id", groupID, "file", file, "error", err)
	}
	zlog.Infow("group seeded", "group_id", groupID, "file", file)
}
