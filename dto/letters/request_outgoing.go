package letters

import (
	"strings"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

type CreateOutgoingLetterRequest struct {
	Classification string `json:"classification" form:"classification"`
	Subject        string `json:"subject" form:"subject"`
	Recipient      string `json:"recipient" form:"recipient"`
	LetterDate     string `json:"letter_date" form:"letter_date"` // YYYY-MM-DD
	Priority       string `json:"priority" form:"priority"`
	Description    string `json:"description" form:"description"`
}

type UpdateOutgoingLetterRequest struct {
	Classification *string `json:"classification" form:"classification"`
	Subject        *string `json:"subject" form:"subject"`
	Recipient      *string `json:"recipient" form:"recipient"`
	LetterDate     *string `json:"letter_date" form:"letter_date"`
	Priority       *string `json:"priority" form:"priority"`
	Description    *string `json:"description" form:"description"`
}

// ApprovalDecisionRequest carries an approve or reject decision on a
// pending letter.
type ApprovalDecisionRequest struct {
	Action string `json:"action" form:"action"` // approve | reject
	Notes  string `json:"notes" form:"notes"`
}

// ApprovalNotesRequest carries optional notes on send/archive actions.
type ApprovalNotesRequest struct {
	Notes string `json:"notes" form:"notes"`
}

func (r *CreateOutgoingLetterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Subject) == "" {
		errs["subject"] = "subject is required"
	}
	if strings.TrimSpace(r.Recipient) == "" {
		errs["recipient"] = "recipient is required"
	}
	if r.Priority != "" && !validPriorityString(r.Priority) {
		errs["priority"] = "priority must be normal, urgent, or critical"
	}
	if _, ok := parseDate(r.LetterDate); !ok {
		errs["letter_date"] = "letter_date must be YYYY-MM-DD"
	}

	return errs
}

func (r *UpdateOutgoingLetterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.Subject != nil && strings.TrimSpace(*r.Subject) == "" {
		errs["subject"] = "subject must not be empty"
	}
	if r.Recipient != nil && strings.TrimSpace(*r.Recipient) == "" {
		errs["recipient"] = "recipient must not be empty"
	}
	if r.Priority != nil && !validPriorityString(*r.Priority) {
		errs["priority"] = "priority must be normal, urgent, or critical"
	}
	if r.LetterDate != nil {
		if _, ok := parseDate(*r.LetterDate); !ok {
			errs["letter_date"] = "letter_date must be YYYY-MM-DD"
		}
	}

	return errs
}

func (r *ApprovalDecisionRequest) Validate() map[string]string {
	errs := make(map[string]string)
	switch models.ApprovalAction(r.Action) {
	case models.ApprovalActionApprove, models.ApprovalActionReject:
	default:
		errs["action"] = "action must be approve or reject"
	}
	return errs
}
