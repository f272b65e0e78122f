package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/apperr"
)

func TestNextOutgoingStatus_HappyPath(t *testing.T) {
	cases := []struct {
		name    string
		current models.OutgoingStatus
		action  string
		want    models.OutgoingStatus
	}{
		{"submit draft", models.OutgoingStatusDraft, ActionSubmit, models.OutgoingStatusPending},
		{"approve pending", models.OutgoingStatusPending, ActionApprove, models.OutgoingStatusApproved},
		{"reject pending", models.OutgoingStatusPending, ActionReject, models.OutgoingStatusRejected},
		{"resubmit rejected", models.OutgoingStatusRejected, ActionSubmit, models.OutgoingStatusPending},
		{"send approved", models.OutgoingStatusApproved, ActionSend, models.OutgoingStatusSent},
		{"archive sent", models.OutgoingStatusSent, ActionArchive, models.OutgoingStatusArchived},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextOutgoingStatus(tc.current, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextOutgoingStatus_IllegalTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current models.OutgoingStatus
		action  string
	}{
		{"approve draft", models.OutgoingStatusDraft, ActionApprove},
		{"send draft", models.OutgoingStatusDraft, ActionSend},
		{"send pending", models.OutgoingStatusPending, ActionSend},
		{"submit pending", models.OutgoingStatusPending, ActionSubmit},
		{"approve approved", models.OutgoingStatusApproved, ActionApprove},
		{"submit sent", models.OutgoingStatusSent, ActionSubmit},
		{"send sent", models.OutgoingStatusSent, ActionSend},
		{"archive archived", models.OutgoingStatusArchived, ActionArchive},
		{"send rejected", models.OutgoingStatusRejected, ActionSend},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextOutgoingStatus(tc.current, tc.action)
			require.Error(t, err)
			assert.True(t, apperr.IsStateConflict(err), "expected state conflict, got %v", err)
			assert.Equal(t, tc.current, got, "status must not change on a refused action")
		})
	}
}

func TestApprovalActionFor(t *testing.T) {
	action, ok := ApprovalActionFor(ActionApprove)
	require.True(t, ok)
	assert.Equal(t, models.ApprovalActionApprove, action)

	action, ok = ApprovalActionFor(ActionReject)
	require.True(t, ok)
	assert.Equal(t, models.ApprovalActionReject, action)

	action, ok = ApprovalActionFor(ActionSend)
	require.True(t, ok)
	assert.Equal(t, models.ApprovalActionSend, action)

	_, ok = ApprovalActionFor(ActionSubmit)
	assert.False(t, ok, "submit leaves no approval record")

	_, ok = ApprovalActionFor(ActionArchive)
	assert.False(t, ok, "archive leaves no approval record")
}

func disposition(status models.DispositionStatus) models.LetterDisposition {
	return models.LetterDisposition{Status: status}
}

func TestAggregateIncomingStatus(t *testing.T) {
	t.Run("on_progress always pulls the letter to in_progress", func(t *testing.T) {
		siblings := []models.LetterDisposition{
			disposition(models.DispositionDone),
			disposition(models.DispositionOnProgress),
		}
		got := AggregateIncomingStatus(models.DispositionOnProgress, siblings)
		assert.Equal(t, models.IncomingStatusInProgress, got)
	})

	t.Run("done with all siblings done promotes to done", func(t *testing.T) {
		siblings := []models.LetterDisposition{
			disposition(models.DispositionDone),
			disposition(models.DispositionDone),
			disposition(models.DispositionDone),
		}
		got := AggregateIncomingStatus(models.DispositionDone, siblings)
		assert.Equal(t, models.IncomingStatusDone, got)
	})

	t.Run("done with a pending sibling stays in_progress", func(t *testing.T) {
		siblings := []models.LetterDisposition{
			disposition(models.DispositionDone),
			disposition(models.DispositionPending),
		}
		got := AggregateIncomingStatus(models.DispositionDone, siblings)
		assert.Equal(t, models.IncomingStatusInProgress, got)
	})

	t.Run("done with an on_progress sibling stays in_progress", func(t *testing.T) {
		siblings := []models.LetterDisposition{
			disposition(models.DispositionOnProgress),
			disposition(models.DispositionDone),
		}
		got := AggregateIncomingStatus(models.DispositionDone, siblings)
		assert.Equal(t, models.IncomingStatusInProgress, got)
	})

	t.Run("reset to pending keeps the letter dispositioned", func(t *testing.T) {
		siblings := []models.LetterDisposition{
			disposition(models.DispositionPending),
		}
		got := AggregateIncomingStatus(models.DispositionPending, siblings)
		assert.Equal(t, models.IncomingStatusDispositioned, got)
	})
}
