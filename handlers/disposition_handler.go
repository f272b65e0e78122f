package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	letterdto "github.com/rendyyanisusanto/edulite-v1-backend-sub000/dto/letters"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/middleware"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/services"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/events"
)

type DispositionHandler struct {
	db *gorm.DB
}

func NewDispositionHandler(db *gorm.DB) *DispositionHandler {
	return &DispositionHandler{db: db}
}

// POST /api/letters/incoming/:id/dispositions
//
// Creating a disposition unconditionally moves the parent letter to
// dispositioned, in the same transaction as the insert.
func (h *DispositionHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanIssueDisposition(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to issue dispositions")
	}

	letterID, _ := c.ParamsInt("id")

	var letter models.IncomingLetter
	err := h.db.Where("id = ? AND organization_id = ?", letterID, claims.OrganizationID).
		First(&letter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	var req letterdto.CreateDispositionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	var assignee models.User
	err = h.db.Where("id = ? AND organization_id = ?", req.AssigneeID, claims.OrganizationID).
		First(&assignee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "assignee not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve assignee")
	}

	disposition := req.ToModel()
	disposition.OrganizationID = claims.OrganizationID
	disposition.IncomingLetterID = letter.ID
	disposition.IssuedByID = claims.UserID

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&disposition).Error; err != nil {
			return err
		}
		return tx.Model(&models.IncomingLetter{}).
			Where("id = ?", letter.ID).
			Update("status", models.IncomingStatusDispositioned).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to create disposition")
	}

	events.Publish(events.LetterEvent{
		Type:            events.DispositionAssigned,
		OrganizationID:  claims.OrganizationID,
		LetterID:        letter.ID,
		ReferenceNumber: letter.ReferenceNumber,
		Subject:         letter.Subject,
		Status:          string(models.IncomingStatusDispositioned),
		TargetUserID:    assignee.ID,
	})

	return utils.Created(c, "disposition created", disposition)
}

// PATCH /api/letters/incoming/:id/dispositions/:dispositionID/status
//
// Status updates recompute the parent letter's aggregate status inside the
// same transaction: on_progress always pulls the parent to in_progress;
// done promotes the parent to done only when every sibling is done.
func (h *DispositionHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}

	letterID, _ := c.ParamsInt("id")
	dispositionID, _ := c.ParamsInt("dispositionID")

	var disposition models.LetterDisposition
	err := h.db.
		Where("id = ? AND incoming_letter_id = ? AND organization_id = ?",
			dispositionID, letterID, claims.OrganizationID).
		First(&disposition).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "disposition not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve disposition")
	}

	// Assignees update their own routes; leadership and admin may correct any.
	if disposition.AssigneeID != claims.UserID && !services.CanIssueDisposition(claims.Role) {
		return utils.Forbidden(c, "you are not assigned to this disposition")
	}

	var req letterdto.UpdateDispositionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LetterDisposition{}).
			Where("id = ?", disposition.ID).
			Update("status", req.Status).Error; err != nil {
			return err
		}

		var siblings []models.LetterDisposition
		if err := tx.Where("incoming_letter_id = ?", disposition.IncomingLetterID).
			Find(&siblings).Error; err != nil {
			return err
		}

		parentStatus := services.AggregateIncomingStatus(req.Status, siblings)
		return tx.Model(&models.IncomingLetter{}).
			Where("id = ?", disposition.IncomingLetterID).
			Update("status", parentStatus).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to update disposition status")
	}

	disposition.Status = req.Status
	return utils.OK(c, "disposition status updated", disposition)
}
