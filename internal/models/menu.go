package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem belongs to the single global menu shared by every franchise.
type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:255" json:"image"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt   time.Time `json:"-"`
}
