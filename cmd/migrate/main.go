package main

import (
	"context"
	"log"
	"time"

	"github.com/yourname/putget/internal/config"
	"github.com/yourname/putget/internal/repo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if repo.IsMemoryDSN(cfg.MetaDSN) {
		log.Println("memory journal selected, skipping migrations")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.ApplyMigrations(ctx, cfg.MetaDSN); err != nil {
		log.Fatal(err)
	}

	log.Println("migrations applied")
}
