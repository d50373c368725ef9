package main

import (
	"Bloop/config"
	"Bloop/middleware"
	"Bloop/routes"
	"Bloop/services/bluff"
	"Bloop/services/content"
	"Bloop/services/game"
	"Bloop/services/socket_io"
	"Bloop/services/store"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
		} else {
			log.Println("Database migrated successfully")
		}
	}

	storage := content.NewStorage(gormDB)
	if os.Getenv("SEED_POSTGRES") == "true" {
		if err := storage.Seed(); err != nil {
			log.Printf("Warning: Deck seeding failed: %v", err)
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	// Redis is preferred but optional; without it the room store runs
	// on the in-memory fallback.
	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Printf("Warning: Redis unavailable, using in-memory room store: %v", err)
	} else {
		log.Println("Connection to Redis successful")
		defer redisClient.Close()
	}
	roomStore := store.NewRoomStore(redisClient)

	engine := game.NewEngine(roomStore, storage, bluff.NewGenerator())

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, storage, engine)

	sio := &socket_io.MySocketServer{}
	sio.Start(r, engine)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
