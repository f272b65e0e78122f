package models

import "time"

type ApprovalAction string

const (
	ApprovalActionApprove ApprovalAction = "approve"
	ApprovalActionReject  ApprovalAction = "reject"
	ApprovalActionSend    ApprovalAction = "send"
)

// LetterApproval is one entry in the append-only sign-off log of an outgoing
// letter. Rows are never updated or deleted through normal operation; the
// letter's status column is the cached projection of the latest entry.
type LetterApproval struct {
	ID               uint `gorm:"primaryKey;autoIncrement:true" json:"id"`
	OrganizationID   uint `gorm:"not null;index" json:"organization_id"`
	OutgoingLetterID uint `gorm:"not null;index" json:"outgoing_letter_id"`

	ActorID uint  `gorm:"not null;index" json:"actor_id"`
	Actor   *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`

	Action ApprovalAction `gorm:"type:varchar(20);not null;index" json:"action"`
	Notes  string         `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}

func (LetterApproval) TableName() string {
	return "letter_approvals"
}

func (a ApprovalAction) IsValid() bool {
	switch a {
	case ApprovalActionApprove, ApprovalActionReject, ApprovalActionSend:
		return true
	default:
		return false
	}
}
