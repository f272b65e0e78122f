package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

// NextReferenceNumber allocates the next sequential reference number for an
// (organization, year, kind) triple, formatted "SM/2025/0001".
//
// Allocation goes through a dedicated counter row locked with FOR UPDATE so
// two concurrent letter creations cannot draw the same number. Call it
// inside the same transaction that inserts the letter; a later rollback then
// releases the number together with the row.
func NextReferenceNumber(tx *gorm.DB, orgID uint, kind models.LetterKind, year int) (string, error) {
	locked := tx
	// SQLite (tests) has no row locks; its single writer serializes anyway.
	if tx.Dialector.Name() == "mysql" {
		locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var counter models.SequenceCounter
	err := locked.
		Where("organization_id = ? AND year = ? AND kind = ?", orgID, year, kind).
		First(&counter).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First allocation for this scope. Seed from the highest reference
		// already issued so numbering continues across the counter rollout.
		seed, seedErr := highestIssuedNumber(tx, orgID, kind, year)
		if seedErr != nil {
			return "", seedErr
		}
		counter = models.SequenceCounter{
			OrganizationID: orgID,
			Year:           year,
			Kind:           kind,
			LastNumber:     seed,
		}
		if err := tx.Create(&counter).Error; err != nil {
			// Unique index on (org, year, kind): a concurrent first
			// allocation won the race, so the caller's transaction fails
			// and the request can be retried.
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	counter.LastNumber++
	if err := tx.Model(&models.SequenceCounter{}).
		Where("id = ?", counter.ID).
		Update("last_number", counter.LastNumber).Error; err != nil {
		return "", err
	}

	return FormatReferenceNumber(kind, year, counter.LastNumber), nil
}

// FormatReferenceNumber renders "{KIND}/{year}/{seq}" with the sequence
// zero-padded to 4 digits.
func FormatReferenceNumber(kind models.LetterKind, year, seq int) string {
	return fmt.Sprintf("%s/%d/%04d", kind, year, seq)
}

// ParseReferenceSuffix extracts the numeric suffix of a reference number.
func ParseReferenceSuffix(reference string) (int, error) {
	idx := strings.LastIndex(reference, "/")
	if idx < 0 || idx == len(reference)-1 {
		return 0, fmt.Errorf("malformed reference number %q", reference)
	}
	return strconv.Atoi(reference[idx+1:])
}

// highestIssuedNumber finds the newest letter row carrying a reference with
// this scope's prefix and returns its suffix, or 0 when none exists. Newest
// row by id, not a scan of every match.
func highestIssuedNumber(tx *gorm.DB, orgID uint, kind models.LetterKind, year int) (int, error) {
	prefix := fmt.Sprintf("%s/%d/", kind, year)

	var reference string
	var err error
	switch kind {
	case models.KindIncoming:
		var row models.IncomingLetter
		err = tx.
			Where("organization_id = ? AND reference_number LIKE ?", orgID, prefix+"%").
			Order("id DESC").
			First(&row).Error
		reference = row.ReferenceNumber
	case models.KindOutgoing:
		var row models.OutgoingLetter
		err = tx.
			Where("organization_id = ? AND reference_number LIKE ?", orgID, prefix+"%").
			Order("id DESC").
			First(&row).Error
		reference = row.ReferenceNumber
	default:
		return 0, fmt.Errorf("unknown letter kind %q", kind)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return ParseReferenceSuffix(reference)
}
