package main

import (
	"log"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/config"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

func main() {
	db := config.ConnectDB()

	err := db.AutoMigrate(
		&models.User{},
		&models.IncomingLetter{},
		&models.OutgoingLetter{},
		&models.LetterDisposition{},
		&models.LetterApproval{},
		&models.LetterAttachment{},
		&models.SequenceCounter{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("✅ Migration completed")
}
