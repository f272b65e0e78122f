package models

import (
	"time"
)

type LetterKind string
type Priority string
type IncomingStatus string
type OutgoingStatus string

// Kind tags double as the reference-number prefix (SM/2025/0001).
const (
	KindIncoming LetterKind = "SM"
	KindOutgoing LetterKind = "SK"
)

const (
	PriorityNormal   Priority = "normal"
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
)

const (
	IncomingStatusNew           IncomingStatus = "new"
	IncomingStatusDispositioned IncomingStatus = "dispositioned"
	IncomingStatusInProgress    IncomingStatus = "in_progress"
	IncomingStatusDone          IncomingStatus = "done"
	IncomingStatusArchived      IncomingStatus = "archived"
)

const (
	OutgoingStatusDraft    OutgoingStatus = "draft"
	OutgoingStatusPending  OutgoingStatus = "pending"
	OutgoingStatusApproved OutgoingStatus = "approved"
	OutgoingStatusRejected OutgoingStatus = "rejected"
	OutgoingStatusSent     OutgoingStatus = "sent"
	OutgoingStatusArchived OutgoingStatus = "archived"
)

// IncomingLetter is a physical/external letter received by the organization.
type IncomingLetter struct {
	ID              uint   `gorm:"primaryKey;autoIncrement:true" json:"id"`
	OrganizationID  uint   `gorm:"not null;index" json:"organization_id"`
	ReferenceNumber string `gorm:"type:varchar(100);index" json:"reference_number"`
	ExternalNumber  string `gorm:"type:varchar(100);index" json:"external_number"`
	Classification  string `gorm:"type:varchar(100);index" json:"classification"`
	Subject         string `gorm:"type:varchar(255);not null" json:"subject"`
	Sender          string `gorm:"type:varchar(200);not null;index" json:"sender"`

	ReceivedDate *time.Time `gorm:"type:date;index" json:"received_date"`
	LetterDate   *time.Time `gorm:"type:date" json:"letter_date"`

	Priority    Priority       `gorm:"type:varchar(20);default:'normal';not null;index" json:"priority"`
	Description string         `gorm:"type:text" json:"description"`
	Status      IncomingStatus `gorm:"type:varchar(20);default:'new';not null;index" json:"status"`

	CreatedByID uint  `gorm:"index" json:"created_by_id"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	Dispositions []LetterDisposition `gorm:"foreignKey:IncomingLetterID" json:"dispositions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (IncomingLetter) TableName() string {
	return "incoming_letters"
}

// OutgoingLetter is a letter authored by the organization for external delivery.
type OutgoingLetter struct {
	ID              uint   `gorm:"primaryKey;autoIncrement:true" json:"id"`
	OrganizationID  uint   `gorm:"not null;index" json:"organization_id"`
	ReferenceNumber string `gorm:"type:varchar(100);index" json:"reference_number"`
	Classification  string `gorm:"type:varchar(100);index" json:"classification"`
	Subject         string `gorm:"type:varchar(255);not null" json:"subject"`
	Recipient       string `gorm:"type:varchar(200);not null;index" json:"recipient"`

	LetterDate *time.Time `gorm:"type:date" json:"letter_date"`
	SendDate   *time.Time `gorm:"index" json:"send_date"`

	Priority    Priority       `gorm:"type:varchar(20);default:'normal';not null;index" json:"priority"`
	Description string         `gorm:"type:text" json:"description"`
	Status      OutgoingStatus `gorm:"type:varchar(20);default:'draft';not null;index" json:"status"`

	CreatedByID uint  `gorm:"index" json:"created_by_id"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	Approvals []LetterApproval `gorm:"foreignKey:OutgoingLetterID" json:"approvals,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OutgoingLetter) TableName() string {
	return "outgoing_letters"
}

// --- Helper Methods ---

// Editable reports whether content fields may still be mutated.
func (l *OutgoingLetter) Editable() bool {
	return l.Status == OutgoingStatusDraft || l.Status == OutgoingStatusRejected
}

func (s IncomingStatus) IsValid() bool {
	switch s {
	case IncomingStatusNew, IncomingStatusDispositioned, IncomingStatusInProgress,
		IncomingStatusDone, IncomingStatusArchived:
		return true
	default:
		return false
	}
}

func (s OutgoingStatus) IsValid() bool {
	switch s {
	case OutgoingStatusDraft, OutgoingStatusPending, OutgoingStatusApproved,
		OutgoingStatusRejected, OutgoingStatusSent, OutgoingStatusArchived:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityNormal, PriorityUrgent, PriorityCritical:
		return true
	default:
		return false
	}
}
