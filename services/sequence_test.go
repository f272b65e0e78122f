package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.IncomingLetter{},
		&models.OutgoingLetter{},
		&models.SequenceCounter{},
	))

	return db
}

func TestNextReferenceNumber_StartsAtOne(t *testing.T) {
	db := openTestDB(t)
	year := time.Now().Year()

	ref, err := NextReferenceNumber(db, 1, models.KindIncoming, year)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SM/%d/0001", year), ref)
}

func TestNextReferenceNumber_Increments(t *testing.T) {
	db := openTestDB(t)
	year := time.Now().Year()

	first, err := NextReferenceNumber(db, 1, models.KindIncoming, year)
	require.NoError(t, err)
	second, err := NextReferenceNumber(db, 1, models.KindIncoming, year)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("SM/%d/0001", year), first)
	assert.Equal(t, fmt.Sprintf("SM/%d/0002", year), second)

	// Round-trip: the suffix of the issued value plus one reproduces the
	// next issued value.
	suffix, err := ParseReferenceSuffix(first)
	require.NoError(t, err)
	assert.Equal(t, FormatReferenceNumber(models.KindIncoming, year, suffix+1), second)
}

func TestNextReferenceNumber_IndependentScopes(t *testing.T) {
	db := openTestDB(t)
	year := time.Now().Year()

	in, err := NextReferenceNumber(db, 1, models.KindIncoming, year)
	require.NoError(t, err)
	out, err := NextReferenceNumber(db, 1, models.KindOutgoing, year)
	require.NoError(t, err)
	otherOrg, err := NextReferenceNumber(db, 2, models.KindIncoming, year)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("SM/%d/0001", year), in)
	assert.Equal(t, fmt.Sprintf("SK/%d/0001", year), out)
	assert.Equal(t, fmt.Sprintf("SM/%d/0001", year), otherOrg)
}

func TestNextReferenceNumber_SeedsFromExistingLetters(t *testing.T) {
	db := openTestDB(t)
	year := time.Now().Year()

	// Letters issued before the counter table existed.
	require.NoError(t, db.Create(&models.IncomingLetter{
		OrganizationID:  1,
		ReferenceNumber: fmt.Sprintf("SM/%d/0007", year),
		Subject:         "old letter",
		Sender:          "somebody",
	}).Error)

	ref, err := NextReferenceNumber(db, 1, models.KindIncoming, year)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SM/%d/0008", year), ref)
}

func TestNextReferenceNumber_StrictlyIncreasingNoDuplicates(t *testing.T) {
	db := openTestDB(t)
	year := time.Now().Year()

	seen := make(map[string]bool)
	prev := 0
	for i := 0; i < 25; i++ {
		ref, err := NextReferenceNumber(db, 1, models.KindOutgoing, year)
		require.NoError(t, err)
		require.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true

		suffix, err := ParseReferenceSuffix(ref)
		require.NoError(t, err)
		require.Greater(t, suffix, prev)
		prev = suffix
	}
}

func TestParseReferenceSuffix_Malformed(t *testing.T) {
	_, err := ParseReferenceSuffix("SM-2025-0001")
	assert.Error(t, err)

	_, err = ParseReferenceSuffix("SM/2025/")
	assert.Error(t, err)
}
