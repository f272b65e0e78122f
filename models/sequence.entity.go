package models

import "time"

// SequenceCounter holds the highest issued numeric suffix for one
// (organization, year, kind) triple. Allocation locks this row so two
// concurrent letter creations can never draw the same number.
type SequenceCounter struct {
	ID             uint       `gorm:"primaryKey;autoIncrement:true"`
	OrganizationID uint       `gorm:"not null;uniqueIndex:idx_sequence_scope"`
	Year           int        `gorm:"not null;uniqueIndex:idx_sequence_scope"`
	Kind           LetterKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_sequence_scope"`
	LastNumber     int        `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
