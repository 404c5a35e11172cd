package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of authorities a user can hold.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFranchisee Role = "franchisee"
	RoleDiner      Role = "diner"
)

// UserRole grants a role to a user. FranchiseID is set only for the
// franchisee role, scoping it to a single franchise.
type UserRole struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Role        Role       `gorm:"size:20;not null" json:"role"`
	FranchiseID *uuid.UUID `gorm:"type:uuid;index" json:"franchiseId,omitempty"`
	CreatedAt   time.Time  `json:"-"`
}

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Email     string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Roles     []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"roles"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// UserSummary is the admin shape embedded in franchise responses.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
