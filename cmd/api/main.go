package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/config"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/routes"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/fcm"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/storage"
)

func main() {
	if err := config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db := config.ConnectDB()

	ctx := context.Background()

	store, err := storage.NewS3Store(ctx)
	if err != nil {
		log.Fatalf("failed to initialize object store: %v", err)
	}

	// Push notifications are optional; the API keeps running without them.
	if err := fcm.Init(ctx); err != nil {
		log.Printf("FCM disabled: %v", err)
	} else {
		go fcm.StartNotifierConsumer(ctx)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // multipart letter scans
	})

	routes.Register(app, db, store)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}

	log.Println("🚀 API running on", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
