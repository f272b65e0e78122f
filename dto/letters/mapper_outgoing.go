package letters

import (
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

// ToModel builds the entity from a validated create request. Letters always
// start life as drafts.
func (r *CreateOutgoingLetterRequest) ToModel() models.OutgoingLetter {
	letterDate, _ := parseDate(r.LetterDate)

	priority := models.Priority(r.Priority)
	if priority == "" {
		priority = models.PriorityNormal
	}

	return models.OutgoingLetter{
		Classification: r.Classification,
		Subject:        r.Subject,
		Recipient:      r.Recipient,
		LetterDate:     letterDate,
		Priority:       priority,
		Description:    r.Description,
		Status:         models.OutgoingStatusDraft,
	}
}

// ApplyOutgoingUpdate copies the set fields of a validated update request
// onto the entity. Callers must have checked Editable() first.
func ApplyOutgoingUpdate(letter *models.OutgoingLetter, r *UpdateOutgoingLetterRequest) {
	if r.Classification != nil {
		letter.Classification = *r.Classification
	}
	if r.Subject != nil {
		letter.Subject = *r.Subject
	}
	if r.Recipient != nil {
		letter.Recipient = *r.Recipient
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
