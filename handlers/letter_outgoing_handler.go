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
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/events"
)

type OutgoingLetterHandler struct {
	db          *gorm.DB
	attachments *services.AttachmentService
}

func NewOutgoingLetterHandler(db *gorm.DB, attachments *services.AttachmentService) *OutgoingLetterHandler {
	return &OutgoingLetterHandler{db: db, attachments: attachments}
}

func (h *OutgoingLetterHandler) findScoped(orgID uint, id int) (*models.OutgoingLetter, error) {
	var letter models.OutgoingLetter
	err := h.db.Where("id = ? AND organization_id = ?", id, orgID).First(&letter).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

// GET /api/letters/outgoing
func (h *OutgoingLetterHandler) List(c *fiber.Ctx) error {
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

	query := h.db.Model(&models.OutgoingLetter{}).
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
	if from := c.Query("letter_from"); from != "" {
		query = query.Where("letter_date >= ?", from)
	}
	if to := c.Query("letter_to"); to != "" {
		query = query.Where("letter_date <= ?", to)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"subject LIKE ? OR recipient LIKE ? OR reference_number LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "failed to count letters")
	}

	var letters []models.OutgoingLetter
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&letters).Error; err != nil {
		return utils.InternalServerError(c, "failed to retrieve letters")
	}

	meta := utils.PaginationMeta{Page: page, Limit: limit, Total: total}
	return utils.Paginated(c, "outgoing letters retrieved", letters, meta)
}

// POST /api/letters/outgoing
func (h *OutgoingLetterHandler) Create(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanCreateLetter(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to draft outgoing letters")
	}

	var req letterdto.CreateOutgoingLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	letter := req.ToModel()
	letter.OrganizationID = claims.OrganizationID
	letter.CreatedByID = claims.UserID

	err := h.db.Transaction(func(tx *gorm.DB) error {
		reference, err := services.NextReferenceNumber(tx, claims.OrganizationID, models.KindOutgoing, time.Now().Year())
		if err != nil {
			return err
		}
		letter.ReferenceNumber = reference

		return tx.Create(&letter).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to create outgoing letter")
	}

	return utils.Created(c, "outgoing letter created", letter)
}

// GET /api/letters/outgoing/:id
func (h *OutgoingLetterHandler) Get(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}

	id, _ := c.ParamsInt("id")

	var letter models.OutgoingLetter
	err := h.db.
		Preload("Approvals", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Approvals.Actor").
		Where("id = ? AND organization_id = ?", id, claims.OrganizationID).
		First(&letter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	attachments, err := h.attachments.ListForOwner(claims.OrganizationID, models.AttachmentOwner{
		Kind: models.OwnerOutgoing,
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

// PUT /api/letters/outgoing/:id
//
// Content edits are allowed only while the letter is draft or rejected.
func (h *OutgoingLetterHandler) Update(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanEditLetter(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to edit outgoing letters")
	}

	id, _ := c.ParamsInt("id")
	letter, err := h.findScoped(claims.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	if !letter.Editable() {
		return utils.Conflict(c, "letter can only be edited while draft or rejected")
	}

	var req letterdto.UpdateOutgoingLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	letterdto.ApplyOutgoingUpdate(letter, &req)

	if err := h.db.Save(letter).Error; err != nil {
		return utils.InternalServerError(c, "failed to update letter")
	}

	return utils.OK(c, "letter updated", letter)
}

// DELETE /api/letters/outgoing/:id
func (h *OutgoingLetterHandler) Delete(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanEditLetter(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to delete outgoing letters")
	}

	id, _ := c.ParamsInt("id")
	letter, err := h.findScoped(claims.OrganizationID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "letter not found")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to retrieve letter")
	}

	if !letter.Editable() {
		return utils.Conflict(c, "letter can only be deleted while draft or rejected")
	}

	owner := models.AttachmentOwner{Kind: models.OwnerOutgoing, ID: letter.ID}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := h.attachments.CascadeDelete(c.Context(), tx, claims.OrganizationID, owner); err != nil {
			return err
		}
		if err := tx.Where("outgoing_letter_id = ?", letter.ID).
			Delete(&models.LetterApproval{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.OutgoingLetter{}, letter.ID).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to delete letter")
	}

	return utils.OK(c, "letter deleted", nil)
}

// POST /api/letters/outgoing/:id/submit
func (h *OutgoingLetterHandler) Submit(c *fiber.Ctx) error {
	return h.transition(c, services.ActionSubmit, "", events.ApprovalRequested)
}

// POST /api/letters/outgoing/:id/approve-reject
func (h *OutgoingLetterHandler) ApproveReject(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanDecideApproval(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to decide approvals")
	}

	var req letterdto.ApprovalDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}
	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	return h.transition(c, req.Action, req.Notes, events.ApprovalDecided)
}

// POST /api/letters/outgoing/:id/send
func (h *OutgoingLetterHandler) Send(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanDecideApproval(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to send letters")
	}

	var req letterdto.ApprovalNotesRequest
	_ = c.BodyParser(&req)

	return h.transition(c, services.ActionSend, req.Notes, events.LetterSent)
}

// POST /api/letters/outgoing/:id/archive
func (h *OutgoingLetterHandler) Archive(c *fiber.Ctx) error {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return utils.Unauthorized(c, "authorization context missing")
	}
	if !services.CanArchiveLetter(claims.Role) {
		return utils.Forbidden(c, "you are not allowed to archive letters")
	}

	return h.transition(c, services.ActionArchive, "", "")
}

// transition runs one workflow action: validates it against the machine,
// appends the approval record when the action carries one, and flips the
// letter status — all inside a single transaction so the audit log and the
// status projection can never diverge.
func (h *OutgoingLetterHandler) transition(c *fiber.Ctx, action, notes string, eventType events.LetterEventType) error {
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

	next, err := services.NextOutgoingStatus(letter.Status, action)
	if err != nil {
		return utils.FromAppError(c, err)
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if approvalAction, hasRecord := services.ApprovalActionFor(action); hasRecord {
			approval := models.LetterApproval{
				OrganizationID:   claims.OrganizationID,
				OutgoingLetterID: letter.ID,
				ActorID:          claims.UserID,
				Action:           approvalAction,
				Notes:            notes,
			}
			if err := tx.Create(&approval).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{"status": next}
		if action == services.ActionSend {
			now := time.Now()
			letter.SendDate = &now
			updates["send_date"] = &now
		}

		return tx.Model(&models.OutgoingLetter{}).
			Where("id = ?", letter.ID).
			Updates(updates).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "failed to apply workflow action")
	}

	letter.Status = next

	if eventType != "" {
		events.Publish(events.LetterEvent{
			Type:            eventType,
			OrganizationID:  claims.OrganizationID,
			LetterID:        letter.ID,
			ReferenceNumber: letter.ReferenceNumber,
			Subject:         letter.Subject,
			Status:          string(next),
			TargetUserID:    letter.CreatedByID,
		})
	}

	return utils.OK(c, "workflow action applied", letter)
}
