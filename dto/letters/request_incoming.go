package letters

import (
	"strings"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

type CreateIncomingLetterRequest struct {
	ExternalNumber string `json:"external_number" form:"external_number"`
	Classification string `json:"classification" form:"classification"`
	Subject        string `json:"subject" form:"subject"`
	Sender         string `json:"sender" form:"sender"`
	ReceivedDate   string `json:"received_date" form:"received_date"` // YYYY-MM-DD
	LetterDate     string `json:"letter_date" form:"letter_date"`     // YYYY-MM-DD
	Priority       string `json:"priority" form:"priority"`
	Description    string `json:"description" form:"description"`
}

type UpdateIncomingLetterRequest struct {
	ExternalNumber *string `json:"external_number" form:"external_number"`
	Classification *string `json:"classification" form:"classification"`
	Subject        *string `json:"subject" form:"subject"`
	Sender         *string `json:"sender" form:"sender"`
	ReceivedDate   *string `json:"received_date" form:"received_date"`
	LetterDate     *string `json:"letter_date" form:"letter_date"`
	Priority       *string `json:"priority" form:"priority"`
	Description    *string `json:"description" form:"description"`
}

// UpdateIncomingStatusRequest is the direct status escape hatch. Only enum
// membership is checked; disposition-driven recomputation reconverges the
// value afterwards.
type UpdateIncomingStatusRequest struct {
	Status models.IncomingStatus `json:"status" form:"status"`
}

func (r *CreateIncomingLetterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Subject) == "" {
		errs["subject"] = "subject is required"
	}
	if strings.TrimSpace(r.Sender) == "" {
		errs["sender"] = "sender is required"
	}
	if r.Priority != "" && !validPriorityString(r.Priority) {
		errs["priority"] = "priority must be normal, urgent, or critical"
	}
	if _, ok := parseDate(r.ReceivedDate); !ok {
		errs["received_date"] = "received_date must be YYYY-MM-DD"
	}
	if _, ok := parseDate(r.LetterDate); !ok {
		errs["letter_date"] = "letter_date must be YYYY-MM-DD"
	}

	return errs
}

func (r *UpdateIncomingLetterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.Subject != nil && strings.TrimSpace(*r.Subject) == "" {
		errs["subject"] = "subject must not be empty"
	}
	if r.Sender != nil && strings.TrimSpace(*r.Sender) == "" {
		errs["sender"] = "sender must not be empty"
	}
	if r.Priority != nil && !validPriorityString(*r.Priority) {
		errs["priority"] = "priority must be normal, urgent, or critical"
	}
	if r.ReceivedDate != nil {
		if _, ok := parseDate(*r.ReceivedDate); !ok {
			errs["received_date"] = "received_date must be YYYY-MM-DD"
		}
	}
	if r.LetterDate != nil {
		if _, ok := parseDate(*r.LetterDate); !ok {
			errs["letter_date"] = "letter_date must be YYYY-MM-DD"
		}
	}

	return errs
}

func (r *UpdateIncomingStatusRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Status == "" {
		errs["status"] = "status is required"
	} else if !r.Status.IsValid() {
		errs["status"] = "status must be one of new, dispositioned, in_progress, done, archived"
	}
	return errs
}
