package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/middleware"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/services"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils"
)

// AttachmentHandler serves the attachment endpoints for both letter kinds;
// the owner kind is fixed per route when the handler is registered.
type AttachmentHandler struct {
	db          *gorm.DB
	attachments *services.AttachmentService
}

func NewAttachmentHandler(db *gorm.DB, attachments *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{db: db, attachments: attachments}
}

// letterExists checks the owning letter within the caller's organization.
func (h *AttachmentHandler) letterExists(kind models.OwnerKind, orgID uint, id int) (bool, error) {
	var count int64
	var err error
	switch kind {
	case models.OwnerIncoming:
		err = h.db.Model(&models.IncomingLetter{}).
			Where("id = ? AND organization_id = ?", id, orgID).Count(&count).Error
	case models.OwnerOutgoing:
		err = h.db.Model(&models.OutgoingLetter{}).
			Where("id = ? AND organization_id = ?", id, orgID).Count(&count).Error
	default:
		return false, errors.New("unknown owner kind")
	}
	return count > 0, err
}

// Upload handles POST /api/letters/{incoming|outgoing}/:id/attachments.
func (h *AttachmentHandler) Upload(kind models.OwnerKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.GetJWTClaims(c)
		if !ok {
			return utils.Unauthorized(c, "authorization context missing")
		}

		id, _ := c.ParamsInt("id")
		exists, err := h.letterExists(kind, claims.OrganizationID, id)
		if err != nil {
			return utils.InternalServerError(c, "failed to retrieve letter")
		}
		if !exists {
			return utils.NotFound(c, "letter not found")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return utils.BadRequest(c, "form field 'file' is required", nil)
			}
			return utils.BadRequest(c, "invalid file upload", err.Error())
		}

		caption := c.FormValue("caption")

		owner := models.AttachmentOwner{Kind: kind, ID: uint(id)}
		attachment, err := h.attachments.Attach(c.Context(), claims.OrganizationID, owner, fileHeader, caption)
		if err != nil {
			return utils.FromAppError(c, err)
		}

		return utils.Created(c, "attachment uploaded", attachment)
	}
}

// Delete handles DELETE /api/letters/{incoming|outgoing}/:id/attachments/:attachmentID.
func (h *AttachmentHandler) Delete(kind models.OwnerKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.GetJWTClaims(c)
		if !ok {
			return utils.Unauthorized(c, "authorization context missing")
		}

		id, _ := c.ParamsInt("id")
		attachmentID, _ := c.ParamsInt("attachmentID")

		owner := models.AttachmentOwner{Kind: kind, ID: uint(id)}
		err := h.attachments.Detach(c.Context(), claims.OrganizationID, owner, uint(attachmentID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "attachment not found")
			}
			return utils.FromAppError(c, err)
		}

		return utils.OK(c, "attachment deleted", nil)
	}
}
