package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"pickupgames/signup/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	source := flag.String("source", "file://db/migrations", "migration source URL")
	down := flag.Bool("down", false, "roll back one migration instead of applying all")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	m, err := migrate.New(*source, databaseURL(*configPath))
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	defer m.Close()

	if *down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("database migration failed: %v", err)
	}

	version, dirty, _ := m.Version()
	log.Printf("database at version %d (dirty=%t)", version, dirty)
}

// databaseURL prefers DATABASE_URL and falls back to the postgres section of the config file.
func databaseURL(configPath string) string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("DATABASE_URL is not set and config could not be loaded: %v", err)
	}
	return cfg.Database.Postgres.URL()
}
