package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/gadgetswap-dev/gadgetswap/db"
	"github.com/gadgetswap-dev/gadgetswap/internal/auth"
	"github.com/gadgetswap-dev/gadgetswap/internal/config"
	"github.com/gadgetswap-dev/gadgetswap/internal/router"
	"github.com/gadgetswap-dev/gadgetswap/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := auth.Init(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, database, err := db.ConnectDatabase(ctx, cfg.MongoURI, cfg.DBName)

	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect from the database: %v", err)
		}
	}()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	r := router.NewRouter(cfg, store.NewMongoStore(database))

	log.Printf("GadgetSwap is listening on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
