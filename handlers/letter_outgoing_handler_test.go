package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

func TestOutgoingLetterLifecycle(t *testing.T) {
	env := newTestEnv(t)
	records, recordsToken := env.seedUser(t, 1, models.RoleRecords)
	_, leaderToken := env.seedUser(t, 1, models.RoleLeadership)

	// Draft
	resp := env.doJSON(t, http.MethodPost, "/api/letters/outgoing/", recordsToken, map[string]interface{}{
		"subject":        "Budget proposal FY2027",
		"recipient":      "Ministry of Education",
		"classification": "finance",
		"letter_date":    "2026-09-01",
		"priority":       "urgent",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var letter models.OutgoingLetter
	require.NoError(t, env.db.Order("id DESC").First(&letter).Error)
	assert.Equal(t, models.OutgoingStatusDraft, letter.Status)
	assert.Equal(t, fmt.Sprintf("SK/%d/0001", time.Now().Year()), letter.ReferenceNumber)
	assert.Equal(t, records.ID, letter.CreatedByID)

	base := fmt.Sprintf("/api/letters/outgoing/%d", letter.ID)

	// Submit for approval
	resp = env.doJSON(t, http.MethodPost, base+"/submit", recordsToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&letter, letter.ID).Error)
	assert.Equal(t, models.OutgoingStatusPending, letter.Status)

	// Approve
	resp = env.doJSON(t, http.MethodPost, base+"/approve-reject", leaderToken, map[string]interface{}{
		"action": "approve",
		"notes":  "ready to go",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&letter, letter.ID).Error)
	assert.Equal(t, models.OutgoingStatusApproved, letter.Status)

	// Send
	resp = env.doJSON(t, http.MethodPost, base+"/send", leaderToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&letter, letter.ID).Error)
	assert.Equal(t, models.OutgoingStatusSent, letter.Status)
	require.NotNil(t, letter.SendDate)
	assert.WithinDuration(t, time.Now(), *letter.SendDate, time.Minute)

	// Approval log records the decisions in order.
	var approvals []models.LetterApproval
	require.NoError(t, env.db.Where("outgoing_letter_id = ?", letter.ID).Order("id ASC").Find(&approvals).Error)
	require.Len(t, approvals, 2)
	assert.Equal(t, models.ApprovalActionApprove, approvals[0].Action)
	assert.Equal(t, "ready to go", approvals[0].Notes)
	assert.Equal(t, models.ApprovalActionSend, approvals[1].Action)

	// Archive
	resp = env.doJSON(t, http.MethodPost, base+"/archive", recordsToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&letter, letter.ID).Error)
	assert.Equal(t, models.OutgoingStatusArchived, letter.Status)
}

func TestOutgoingLetterRejectionAllowsRework(t *testing.T) {
	env := newTestEnv(t)
	_, recordsToken := env.seedUser(t, 1, models.RoleRecords)
	_, leaderToken := env.seedUser(t, 1, models.RoleLeadership)

	letter := seedOutgoing(t, env, 1, models.OutgoingStatusPending)
	base := fmt.Sprintf("/api/letters/outgoing/%d", letter.ID)

	resp := env.doJSON(t, http.MethodPost, base+"/approve-reject", leaderToken, map[string]interface{}{
		"action": "reject",
		"notes":  "wrong recipient",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&letter, letter.ID).Error)
	assert.Equal(t, models.OutgoingStatusRejected, letter.Status)

	// Rejected letters are editable again.
	resp = env.doJSON(t, http.MethodPut, base, recordsToken, map[string]interface{}{
		"recipient": "Provincial Office",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&letter, letter.ID).Error)
	assert.Equal(t, "Provincial Office", letter.Recipient)

	// And can be resubmitted.
	resp = env.doJSON(t, http.MethodPost, base+"/submit", recordsToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&letter, letter.ID).Error)
	assert.Equal(t, models.OutgoingStatusPending, letter.Status)
}

func TestOutgoingLetterIllegalTransitions(t *testing.T) {
	env := newTestEnv(t)
	_, recordsToken := env.seedUser(t, 1, models.RoleRecords)
	_, leaderToken := env.seedUser(t, 1, models.RoleLeadership)

	t.Run("approve a draft", func(t *testing.T) {
		letter := seedOutgoing(t, env, 1, models.OutgoingStatusDraft)
		resp := env.doJSON(t, http.MethodPost,
			fmt.Sprintf("/api/letters/outgoing/%d/approve-reject", letter.ID), leaderToken,
			map[string]interface{}{"action": "approve"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		require.NoError(t, env.db.First(&letter, letter.ID).Error)
		assert.Equal(t, models.OutgoingStatusDraft, letter.Status)

		var count int64
		require.NoError(t, env.db.Model(&models.LetterApproval{}).
			Where("outgoing_letter_id = ?", letter.ID).Count(&count).Error)
		assert.Zero(t, count, "failed transition must not leave an approval record")
	})

	t.Run("send a pending letter", func(t *testing.T) {
		letter := seedOutgoing(t, env, 1, models.OutgoingStatusPending)
		resp := env.doJSON(t, http.MethodPost,
			fmt.Sprintf("/api/letters/outgoing/%d/send", letter.ID), leaderToken, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		require.NoError(t, env.db.First(&letter, letter.ID).Error)
		assert.Equal(t, models.OutgoingStatusPending, letter.Status)
		assert.Nil(t, letter.SendDate)
	})

	t.Run("submit a sent letter", func(t *testing.T) {
		letter := seedOutgoing(t, env, 1, models.OutgoingStatusSent)
		resp := env.doJSON(t, http.MethodPost,
			fmt.Sprintf("/api/letters/outgoing/%d/submit", letter.ID), recordsToken, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestOutgoingLetterSentIsImmutable(t *testing.T) {
	env := newTestEnv(t)
	_, recordsToken := env.seedUser(t, 1, models.RoleRecords)

	letter := seedOutgoing(t, env, 1, models.OutgoingStatusSent)
	base := fmt.Sprintf("/api/letters/outgoing/%d", letter.ID)

	resp := env.doJSON(t, http.MethodPut, base, recordsToken, map[string]interface{}{
		"subject": "tampered",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.doJSON(t, http.MethodDelete, base, recordsToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var reloaded models.OutgoingLetter
	require.NoError(t, env.db.First(&reloaded, letter.ID).Error)
	assert.Equal(t, letter.Subject, reloaded.Subject)
	assert.Equal(t, models.OutgoingStatusSent, reloaded.Status)
}

func TestOutgoingLetterPermissions(t *testing.T) {
	env := newTestEnv(t)
	_, staffToken := env.seedUser(t, 1, models.RoleStaff)
	_, recordsToken := env.seedUser(t, 1, models.RoleRecords)

	resp := env.doJSON(t, http.MethodPost, "/api/letters/outgoing/", staffToken, map[string]interface{}{
		"subject":   "A letter staff may not draft",
		"recipient": "Somewhere",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	letter := seedOutgoing(t, env, 1, models.OutgoingStatusPending)
	resp = env.doJSON(t, http.MethodPost,
		fmt.Sprintf("/api/letters/outgoing/%d/approve-reject", letter.ID), recordsToken,
		map[string]interface{}{"action": "approve"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOutgoingLetterCrossOrgScoping(t *testing.T) {
	env := newTestEnv(t)
	_, outsiderToken := env.seedUser(t, 2, models.RoleRecords)

	letter := seedOutgoing(t, env, 1, models.OutgoingStatusDraft)
	base := fmt.Sprintf("/api/letters/outgoing/%d", letter.ID)

	// Foreign letters are indistinguishable from missing ones.
	resp := env.doJSON(t, http.MethodGet, base, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doJSON(t, http.MethodPost, base+"/submit", outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doJSON(t, http.MethodDelete, base, outsiderToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOutgoingLetterSequencePerOrganization(t *testing.T) {
	env := newTestEnv(t)
	_, orgOneToken := env.seedUser(t, 1, models.RoleRecords)
	_, orgTwoToken := env.seedUser(t, 2, models.RoleRecords)

	year := time.Now().Year()
	create := func(token, subject string) {
		resp := env.doJSON(t, http.MethodPost, "/api/letters/outgoing/", token, map[string]interface{}{
			"subject":   subject,
			"recipient": "External Party",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	create(orgOneToken, "first")
	create(orgOneToken, "second")
	create(orgTwoToken, "first elsewhere")

	var refs []string
	require.NoError(t, env.db.Model(&models.OutgoingLetter{}).
		Where("organization_id = ?", 1).Order("id ASC").
		Pluck("reference_number", &refs).Error)
	assert.Equal(t, []string{
		fmt.Sprintf("SK/%d/0001", year),
		fmt.Sprintf("SK/%d/0002", year),
	}, refs)

	var foreign models.OutgoingLetter
	require.NoError(t, env.db.Where("organization_id = ?", 2).First(&foreign).Error)
	assert.Equal(t, fmt.Sprintf("SK/%d/0001", year), foreign.ReferenceNumber,
		"organizations number independently")
}

func TestOutgoingLetterGetIncludesApprovalTrail(t *testing.T) {
	env := newTestEnv(t)
	_, recordsToken := env.seedUser(t, 1, models.RoleRecords)
	leader, leaderToken := env.seedUser(t, 1, models.RoleLeadership)

	letter := seedOutgoing(t, env, 1, models.OutgoingStatusPending)
	base := fmt.Sprintf("/api/letters/outgoing/%d", letter.ID)

	resp := env.doJSON(t, http.MethodPost, base+"/approve-reject", leaderToken, map[string]interface{}{
		"action": "approve",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.doJSON(t, http.MethodGet, base, recordsToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	letterData, ok := data["letter"].(map[string]interface{})
	require.True(t, ok)

	approvals, ok := letterData["approvals"].([]interface{})
	require.True(t, ok)
	require.Len(t, approvals, 1)

	first, ok := approvals[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "approve", first["action"])
	actor, ok := first["actor"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, leader.Username, actor["username"])
}

func TestOutgoingLetterRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, http.MethodGet, "/api/letters/outgoing/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// seedOutgoing inserts a letter directly at the given status, bypassing the
// workflow, so transition tests can start anywhere.
func seedOutgoing(t *testing.T, env *testEnv, orgID uint, status models.OutgoingStatus) models.OutgoingLetter {
	t.Helper()

	letter := models.OutgoingLetter{
		OrganizationID:  orgID,
		ReferenceNumber: fmt.Sprintf("SK/%d/9%03d", time.Now().Year(), time.Now().UnixNano()%1000),
		Subject:         "Seeded letter",
		Recipient:       "Seeded Recipient",
		Priority:        models.PriorityNormal,
		Status:          status,
	}
	require.NoError(t, env.db.Create(&letter).Error)
	return letter
}
