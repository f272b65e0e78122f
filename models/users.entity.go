package models

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // full access within the organization
	RoleRecords    Role = "records"    // records office: intake, outgoing drafts, archive
	RoleLeadership Role = "leadership" // issues dispositions, approves and sends
	RoleStaff      Role = "staff"      // works assigned dispositions
)

type User struct {
	ID             uint   `gorm:"primaryKey;autoIncrement:true" json:"id"`
	OrganizationID uint   `gorm:"not null;index" json:"organization_id"`
	Username       string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email          string `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null" json:"-"`
	FullName       string `gorm:"type:varchar(200)" json:"full_name"`
	Role           Role   `gorm:"type:varchar(30);not null;index" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// --- Helper Methods ---

func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u *User) IsRecords() bool    { return u.Role == RoleRecords }
func (u *User) IsLeadership() bool { return u.Role == RoleLeadership }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRecords, RoleLeadership, RoleStaff:
		return true
	default:
		return false
	}
}
