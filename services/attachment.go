package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/apperr"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/storage"
)

// AttachmentService is the ledger of binary attachments. The object store is
// the external collaborator: uploads are fatal on failure, deletes are
// best-effort and only logged.
type AttachmentService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

func NewAttachmentService(db *gorm.DB, store storage.ObjectStore) *AttachmentService {
	return &AttachmentService{db: db, store: store}
}

// Attach uploads the file and records its metadata against the owning
// letter. If the metadata insert fails the just-uploaded object is removed
// again so no orphan stays behind.
func (s *AttachmentService) Attach(ctx context.Context, orgID uint, owner models.AttachmentOwner, fileHeader *multipart.FileHeader, caption string) (*models.LetterAttachment, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperr.Validation("could not read uploaded file", nil)
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	key := fmt.Sprintf("letters/%s/%d/%s%s", owner.Kind, owner.ID, uuid.NewString(), ext)
	contentType := fileHeader.Header.Get("Content-Type")

	if _, err := s.store.Upload(ctx, file, key, contentType); err != nil {
		return nil, apperr.Storage("failed to upload attachment", err)
	}

	attachment := models.LetterAttachment{
		OrganizationID: orgID,
		OwnerKind:      owner.Kind,
		OwnerID:        owner.ID,
		StorageKey:     key,
		FileName:       fileHeader.Filename,
		Size:           fileHeader.Size,
		MimeType:       contentType,
		Caption:        caption,
	}

	if err := s.db.Create(&attachment).Error; err != nil {
		// Compensating cleanup, best-effort.
		if delErr := s.store.Delete(context.Background(), key); delErr != nil {
			log.Printf("failed to clean up orphaned object %s: %v", key, delErr)
		}
		return nil, err
	}

	return &attachment, nil
}

// Detach removes one attachment: object first (logged on failure, never
// fatal), metadata row second.
func (s *AttachmentService) Detach(ctx context.Context, orgID uint, owner models.AttachmentOwner, attachmentID uint) error {
	var attachment models.LetterAttachment
	err := s.db.
		Where("id = ? AND organization_id = ? AND owner_kind = ? AND owner_id = ?",
			attachmentID, orgID, owner.Kind, owner.ID).
		First(&attachment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("attachment not found")
	}
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, attachment.StorageKey); err != nil {
		log.Printf("failed to delete object %s during detach: %v", attachment.StorageKey, err)
	}

	return s.db.Delete(&models.LetterAttachment{}, attachment.ID).Error
}

// CascadeDelete removes every attachment owned by a letter as part of the
// letter's own deletion. Store failures are logged and skipped; the metadata
// rows are removed regardless so the letter deletion can proceed.
// Pass the enclosing transaction as tx.
func (s *AttachmentService) CascadeDelete(ctx context.Context, tx *gorm.DB, orgID uint, owner models.AttachmentOwner) error {
	var attachments []models.LetterAttachment
	if err := tx.
		Where("organization_id = ? AND owner_kind = ? AND owner_id = ?", orgID, owner.Kind, owner.ID).
		Find(&attachments).Error; err != nil {
		return err
	}

	for _, a := range attachments {
		if err := s.store.Delete(ctx, a.StorageKey); err != nil {
			log.Printf("failed to delete object %s during cascade for %s letter %d: %v",
				a.StorageKey, owner.Kind, owner.ID, err)
		}
	}

	return tx.
		Where("organization_id = ? AND owner_kind = ? AND owner_id = ?", orgID, owner.Kind, owner.ID).
		Delete(&models.LetterAttachment{}).Error
}

// ListForOwner returns a letter's attachments with presigned read URLs.
func (s *AttachmentService) ListForOwner(orgID uint, owner models.AttachmentOwner) ([]models.LetterAttachment, error) {
	var attachments []models.LetterAttachment
	if err := s.db.
		Where("organization_id = ? AND owner_kind = ? AND owner_id = ?", orgID, owner.Kind, owner.ID).
		Order("id ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}

	for i := range attachments {
		url, err := s.store.Presign(attachments[i].StorageKey)
		if err != nil {
			log.Printf("failed to presign URL for %s: %v", attachments[i].StorageKey, err)
			continue
		}
		attachments[i].FileURL = url
	}

	return attachments, nil
}
