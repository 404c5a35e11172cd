package models

import (
	"time"

	"github.com/google/uuid"
)

type Franchise struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Stores    []Store   `gorm:"foreignKey:FranchiseID;constraint:OnDelete:CASCADE" json:"stores"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Admins is resolved from franchisee roles at read time, not persisted.
	Admins []UserSummary `gorm:"-" json:"admins"`
}

type Store struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FranchiseID uuid.UUID `gorm:"type:uuid;not null;index" json:"franchiseId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	CreatedAt   time.Time `json:"-"`
}
