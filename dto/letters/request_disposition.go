package letters

import (
	"strings"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

type CreateDispositionRequest struct {
	AssigneeID  uint   `json:"assignee_id" form:"assignee_id"`
	Instruction string `json:"instruction" form:"instruction"`
	DueDate     string `json:"due_date" form:"due_date"` // YYYY-MM-DD
}

type UpdateDispositionStatusRequest struct {
	Status models.DispositionStatus `json:"status" form:"status"`
}

func (r *CreateDispositionRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.AssigneeID == 0 {
		errs["assignee_id"] = "assignee_id is required"
	}
	if strings.TrimSpace(r.Instruction) == "" {
		errs["instruction"] = "instruction is required"
	}
	if _, ok := parseDate(r.DueDate); !ok {
		errs["due_date"] = "due_date must be YYYY-MM-DD"
	}

	return errs
}

func (r *UpdateDispositionStatusRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Status == "" {
		errs["status"] = "status is required"
	} else if !r.Status.IsValid() {
		errs["status"] = "status must be one of pending, on_progress, done"
	}
	return errs
}
