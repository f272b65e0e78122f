package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/handlers"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/middleware"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/services"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/storage"
)

func Register(app *fiber.App, db *gorm.DB, store storage.ObjectStore) {
	attachmentSvc := services.NewAttachmentService(db, store)

	authHandler := handlers.NewAuthHandler(db)
	incomingHandler := handlers.NewIncomingLetterHandler(db, attachmentSvc)
	outgoingHandler := handlers.NewOutgoingLetterHandler(db, attachmentSvc)
	dispositionHandler := handlers.NewDispositionHandler(db)
	attachmentHandler := handlers.NewAttachmentHandler(db, attachmentSvc)

	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.RequireAuth())

	// Incoming letters
	incoming := authed.Group("/letters/incoming")
	incoming.Get("/", incomingHandler.List)
	incoming.Post("/", incomingHandler.Create)
	incoming.Get("/:id", incomingHandler.Get)
	incoming.Put("/:id", incomingHandler.Update)
	incoming.Delete("/:id", incomingHandler.Delete)
	incoming.Patch("/:id/status", incomingHandler.UpdateStatus)

	// Dispositions
	incoming.Post("/:id/dispositions", dispositionHandler.Create)
	incoming.Patch("/:id/dispositions/:dispositionID/status", dispositionHandler.UpdateStatus)

	// Incoming attachments
	incoming.Post("/:id/attachments", attachmentHandler.Upload(models.OwnerIncoming))
	incoming.Delete("/:id/attachments/:attachmentID", attachmentHandler.Delete(models.OwnerIncoming))

	// Outgoing letters
	outgoing := authed.Group("/letters/outgoing")
	outgoing.Get("/", outgoingHandler.List)
	outgoing.Post("/", outgoingHandler.Create)
	outgoing.Get("/:id", outgoingHandler.Get)
	outgoing.Put("/:id", outgoingHandler.Update)
	outgoing.Delete("/:id", outgoingHandler.Delete)
	outgoing.Post("/:id/submit", outgoingHandler.Submit)
	outgoing.Post("/:id/approve-reject", outgoingHandler.ApproveReject)
	outgoing.Post("/:id/send", outgoingHandler.Send)
	outgoing.Post("/:id/archive", outgoingHandler.Archive)

	// Outgoing attachments
	outgoing.Post("/:id/attachments", attachmentHandler.Upload(models.OwnerOutgoing))
	outgoing.Delete("/:id/attachments/:attachmentID", attachmentHandler.Delete(models.OwnerOutgoing))
}
