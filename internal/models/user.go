package models

import "time"

type Role string

const (
	RoleSeeker   Role = "SEEKER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Stable id issued by the external identity provider. Nullable so that
	// admin-created accounts exist before their first verified login.
	IdentityUID *string `gorm:"size:128;uniqueIndex" json:"identity_uid,omitempty"`

	Email string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Name  string `gorm:"size:100" json:"name"`
	Role  Role   `gorm:"size:20;default:'SEEKER'" json:"role"`

	Active    bool `gorm:"default:true" json:"active"`
	Staff     bool `gorm:"default:false" json:"staff"`
	Superuser bool `gorm:"default:false" json:"superuser"`

	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`

	// Only set for accounts that can log in with a password (admins).
	PasswordHash string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries admin privileges, either through
// the ADMIN role or through the platform staff/superuser flags.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Staff || u.Superuser
}
