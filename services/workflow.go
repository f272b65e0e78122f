package services

import (
	"fmt"

	"github.com/anggasct/fluo"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils/apperr"
)

// Workflow actions on an outgoing letter.
const (
	ActionSubmit  = "submit"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionSend    = "send"
	ActionArchive = "archive"
)

// outgoingWorkflow is the approval state machine for outgoing letters.
// Rejected letters may be resubmitted; their approval history stays intact.
var outgoingWorkflow = fluo.NewMachine().
	State(string(models.OutgoingStatusDraft)).Initial().
	To(string(models.OutgoingStatusPending)).On(ActionSubmit).
	State(string(models.OutgoingStatusPending)).
	To(string(models.OutgoingStatusApproved)).On(ActionApprove).
	To(string(models.OutgoingStatusRejected)).On(ActionReject).
	State(string(models.OutgoingStatusApproved)).
	To(string(models.OutgoingStatusSent)).On(ActionSend).
	State(string(models.OutgoingStatusRejected)).
	To(string(models.OutgoingStatusPending)).On(ActionSubmit).
	State(string(models.OutgoingStatusSent)).
	To(string(models.OutgoingStatusArchived)).On(ActionArchive).
	State(string(models.OutgoingStatusArchived)).Final().
	Build()

// NextOutgoingStatus validates one workflow action against the current
// status and returns the resulting status. An action the machine refuses
// comes back as a state-conflict error and nothing may be mutated.
func NextOutgoingStatus(current models.OutgoingStatus, action string) (models.OutgoingStatus, error) {
	machine := outgoingWorkflow.CreateInstance()
	if err := machine.Start(); err != nil {
		return current, err
	}
	if err := machine.SetState(string(current)); err != nil {
		return current, apperr.StateConflict(fmt.Sprintf("letter is in unknown status %q", current))
	}

	result := machine.HandleEvent(action, nil)
	if !result.Success() {
		return current, apperr.StateConflict(fmt.Sprintf("action %q is not allowed while the letter is %s", action, current))
	}

	return models.OutgoingStatus(machine.CurrentState()), nil
}

// ApprovalActionFor maps a workflow action to the audit-log entry it must
// append, or false for actions that leave no approval record (submit,
// archive).
func ApprovalActionFor(action string) (models.ApprovalAction, bool) {
	switch action {
	case ActionApprove:
		return models.ApprovalActionApprove, true
	case ActionReject:
		return models.ApprovalActionReject, true
	case ActionSend:
		return models.ApprovalActionSend, true
	default:
		return "", false
	}
}

// AggregateIncomingStatus recomputes an incoming letter's status from its
// dispositions after one of them changed to updated.
//
// Rules: any disposition moving to on_progress pulls the letter to
// in_progress regardless of siblings; a disposition reaching done promotes
// the letter to done only when every sibling is done, otherwise in_progress.
func AggregateIncomingStatus(updated models.DispositionStatus, siblings []models.LetterDisposition) models.IncomingStatus {
	if updated == models.DispositionOnProgress {
		return models.IncomingStatusInProgress
	}

	if updated == models.DispositionDone {
		for _, d := range siblings {
			if d.Status != models.DispositionDone {
				return models.IncomingStatusInProgress
			}
		}
		return models.IncomingStatusDone
	}

	// A route reset to pending keeps the letter at dispositioned.
	return models.IncomingStatusDispositioned
}
