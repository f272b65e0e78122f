package models

import "time"

type DispositionStatus string

const (
	DispositionPending    DispositionStatus = "pending"
	DispositionOnProgress DispositionStatus = "on_progress"
	DispositionDone       DispositionStatus = "done"
)

// LetterDisposition is one routing instruction from an incoming letter to a
// responsible user. A letter may fan out to any number of dispositions; they
// are only removed together with the parent letter.
type LetterDisposition struct {
	ID               uint `gorm:"primaryKey;autoIncrement:true" json:"id"`
	OrganizationID   uint `gorm:"not null;index" json:"organization_id"`
	IncomingLetterID uint `gorm:"not null;index" json:"incoming_letter_id"`

	IssuedByID uint  `gorm:"not null;index" json:"issued_by_id"`
	IssuedBy   *User `gorm:"foreignKey:IssuedByID" json:"issued_by,omitempty"`
	AssigneeID uint  `gorm:"not null;index" json:"assignee_id"`
	Assignee   *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`

	Instruction string            `gorm:"type:text;not null" json:"instruction"`
	DueDate     *time.Time        `gorm:"type:date" json:"due_date"`
	Status      DispositionStatus `gorm:"type:varchar(20);default:'pending';not null;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LetterDisposition) TableName() string {
	return "letter_dispositions"
}

func (s DispositionStatus) IsValid() bool {
	switch s {
	case DispositionPending, DispositionOnProgress, DispositionDone:
		return true
	default:
		return false
	}
}
