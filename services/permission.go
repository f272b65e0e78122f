package services

import (
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

// Role gates on workflow actions. These answer "may this role do this at
// all"; organization scoping and state checks live with the handlers and
// the workflow machine.

// CanCreateLetter - records office registers both directions; admin always may.
func CanCreateLetter(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleRecords
}

// CanEditLetter mirrors CanCreateLetter: whoever registers letters
// maintains their content.
func CanEditLetter(role models.Role) bool {
	return CanCreateLetter(role)
}

// CanIssueDisposition - leadership routes incoming letters to staff.
func CanIssueDisposition(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleLeadership
}

// CanDecideApproval - approve/reject/send are leadership actions.
func CanDecideApproval(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleLeadership
}

// CanArchiveLetter - records office closes the loop after sending.
func CanArchiveLetter(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleRecords || role == models.RoleLeadership
}
