package letters

import (
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

// ToModel builds the entity from a validated create request. The reference
// number and status are owned by the handler.
func (r *CreateIncomingLetterRequest) ToModel() models.IncomingLetter {
	received, _ := parseDate(r.ReceivedDate)
	letterDate, _ := parseDate(r.LetterDate)

	priority := models.Priority(r.Priority)
	if priority == "" {
		priority = models.PriorityNormal
	}

	return models.IncomingLetter{
		ExternalNumber: r.ExternalNumber,
		Classification: r.Classification,
		Subject:        r.Subject,
		Sender:         r.Sender,
		ReceivedDate:   received,
		LetterDate:     letterDate,
		Priority:       priority,
		Description:    r.Description,
		Status:         models.IncomingStatusNew,
	}
}

// ApplyIncomingUpdate copies the set fields of a validated update request
// onto the entity.
func ApplyIncomingUpdate(letter *models.IncomingLetter, r *UpdateIncomingLetterRequest) {
	if r.ExternalNumber != nil {
		letter.ExternalNumber = *r.ExternalNumber
	}
	if r.Classification != nil {
		letter.Classification = *r.Classification
	}
	if r.Subject != nil {
		letter.Subject = *r.Subject
	}
	if r.Sender != nil {
		letter.Sender = *r.Sender
	}
	if r.ReceivedDate != nil {
		received, _ := parseDate(*r.ReceivedDate)
		letter.ReceivedDate = received
	}
	if r.LetterDate != nil {
		letterDate, _ := parseDate(*r.LetterDate)
		letter.LetterDate = letterDate
	}
	if r.Priority != nil {
		letter.Priority = models.Priority(*r.Priority)
	}
	if r.Description != nil {
		letter.Description = *r.Description
	}
}

// ToModel builds a disposition from a validated create request. Parent,
// issuer and organization are owned by the handler.
func (r *CreateDispositionRequest) ToModel() models.LetterDisposition {
	due, _ := parseDate(r.DueDate)

	return models.LetterDisposition{
		AssigneeID:  r.AssigneeID,
		Instruction: r.Instruction,
		DueDate:     due,
		Status:      models.DispositionPending,
	}
}
