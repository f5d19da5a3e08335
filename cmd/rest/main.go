package main

import (
	"log"

	"github.com/mbernahr/simple-eri-test-server/internal/bootstrap"
	"github.com/mbernahr/simple-eri-test-server/internal/config"
	"github.com/mbernahr/simple-eri-test-server/internal/server"
	"github.com/mbernahr/simple-eri-test-server/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Database (vector index backing store)
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Unable to bootstrap services: %v", err)
	}
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
