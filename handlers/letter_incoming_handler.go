package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	letterdto "github.com/rendyyanisusanto/edulite-v1-backend-sub000/dto/letters"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/middleware"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/services"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils"
)

type IncomingLetterHandler struct {
	db          *gorm.DB
	attachments *services.AttachmentService
}

func NewIncomingLetterHandler(db *gorm.DB, attachments *services.AttachmentService) *IncomingLetterHandler {
	return &IncomingLetterHandler{db: db, attachments: attachments}
}

// findScoped loads a letter within the caller's organization. Rows of other
// organizations answer not-found, never forbidden.
func (h *IncomingLetterHandler) findScoped(orgID uint, id int) (*models.IncomingLetter, error) {
	var letter models.IncomingLetter
	err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&letter).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

// GET /api/letters/incoming
func (h *IncomingLetterHandler) List(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.db.Model(&models.IncomingLetter{}).
		Where("organization_id = ?", claims.OrganizationID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if classification := c.Query("classification"); classification != "" {
		query = query.Where("classification = ?", classification)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if from := c.Query("received_from"); from != "" {
		query = query.Where("received_date >= ?", from)
	}
	if to := c.Query("received_to"); to != "" {
		query = query.Where("received_date <= ?", to)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"subject LIKE ? OR sender LIKE ? OR reference_number LIKE ? OR external_number LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "failed to count letters")
	}

	var letters []models.IncomingLetter
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&letters).Error; err != nil {
		return utils.InternalServerError(c, "failed to retrieve letters")
	}

	meta := utils.PaginationMeta{Page: page, Limit: limit, Total: total}
	return utils.Paginated(c, "incoming letters retrieved", letters, meta)
}

// POST /api/letters/incoming
func (h *IncomingLetterHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanCreateLetter(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to register incoming letters")
	}

	var req letterdto.CreateIncomingLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	letter := req.ToModel()
	letter.OrganizationID = claims.OrganizationID
	letter.CreatedByID = claims.UserID

	// Reference allocation and insert share one transaction so a failed
	// insert releases the number again.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		reference, err := services.NextReferenceNumber(tx, claims.OrganizationID, models.KindIncoming, time.Now().Year())
		if err != nil {
			return err
		}
		letter.ReferenceNumber = reference

		return tx.Create(&letter).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to register incoming letter")
	}

	return utils.Created(c, "incoming letter registered", letter)
}

// GET /api/letters/incoming/:id
func (h *IncomingLetterHandler) Get(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}

	id, _ := c.ParamsInt("id")

	var letter models.IncomingLetter
	err := h.db.
		Preload("Dispositions").
		Preload("Dispositions.Assignee").
		Where("id = ? AND organization_id = ?", id, claims.OrganizationID).
		First(&letter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	attachments, err := h.attachments.ListForOwner(claims.OrganizationID, models.AttachmentOwner{
		Kind: models.OwnerIncoming,
		ID:   letter.ID,
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve attachments")
	}

	return utils.OK(c, "letter retrieved", fiber.Map{
		"letter":      letter,
		"attachments": attachments,
	})
}

// PUT /api/letters/incoming/:id
func (h *IncomingLetterHandler) Update(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanEditLetter(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to edit incoming letters")
	}

	id, _ := c.ParamsInt("id")
	letter, err := h.findScoped(claims.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	var req letterdto.UpdateIncomingLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	letterdto.ApplyIncomingUpdate(letter, &req)

	if err := h.db.Save(letter).Error; err != nil {
		return utils.InternalServerError(c, "failed to update letter")
	}

	return utils.OK(c, "letter updated", letter)
}

// PATCH /api/letters/incoming/:id/status
//
// Direct status writes are validated against the enum only; any enumerated
// value is accepted from any prior state as a manual correction path.
func (h *IncomingLetterHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}

	id, _ := c.ParamsInt("id")
	letter, err := h.findScoped(claims.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	var req letterdto.UpdateIncomingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	letter.Status = req.Status
	if err := h.db.Save(letter).Error; err != nil {
		return utils.InternalServerError(c, "failed to update status")
	}

	return utils.OK(c, "status updated", letter)
}

// DELETE /api/letters/incoming/:id
//
// Deletion cascades: attachment objects are removed from the store
// best-effort, then attachment and disposition rows, then the letter, in
// one transaction. A store failure is logged and never blocks the delete.
func (h *IncomingLetterHandler) Delete(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanEditLetter(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to delete incoming letters")
	}

	id, _ := c.ParamsInt("id")
	letter, err := h.findScoped(claims.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	owner := models.AttachmentOwner{Kind: models.OwnerIncoming, ID: letter.ID}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.attachments.CascadeDelete(c.Context(), tx, claims.OrganizationID, owner); err != nil {
			return err
		}
		if err := tx.Where("incoming_letter_id = ?", letter.ID).
			Delete(&models.LetterDisposition{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.IncomingLetter{}, letter.ID).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to delete letter")
	}

	return utils.OK(c, "letter deleted", nil)
}
