package models

import "time"

type OwnerKind string

const (
	OwnerIncoming OwnerKind = "incoming"
	OwnerOutgoing OwnerKind = "outgoing"
)

// AttachmentOwner identifies the single letter an attachment belongs to.
type AttachmentOwner struct {
	Kind OwnerKind
	ID   uint
}

// LetterAttachment is a binary object stored in S3 and owned by exactly one
// letter. Ownership is a tagged (kind, id) pair so a row can never point at
// an incoming and an outgoing letter at the same time.
type LetterAttachment struct {
	ID             uint      `gorm:"primaryKey;autoIncrement:true" json:"id"`
	OrganizationID uint      `gorm:"not null;index" json:"organization_id"`
	OwnerKind      OwnerKind `gorm:"type:varchar(20);not null;index:idx_attachment_owner" json:"owner_kind"`
	OwnerID        uint      `gorm:"not null;index:idx_attachment_owner" json:"owner_id"`

	StorageKey string `gorm:"type:varchar(255);not null" json:"-"`
	FileName   string `gorm:"type:varchar(255);not null" json:"file_name"`
	Size       int64  `json:"size"`
	MimeType   string `gorm:"type:varchar(100)" json:"mime_type"`
	Caption    string `gorm:"type:varchar(255)" json:"caption"`

	// Populated on reads with a presigned URL, never persisted.
	FileURL string `gorm:"-" json:"file_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LetterAttachment) TableName() string {
	return "letter_attachments"
}

func (a *LetterAttachment) Owner() AttachmentOwner {
	return AttachmentOwner{Kind: a.OwnerKind, ID: a.OwnerID}
}
