package models

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken records a logged-out session token by its token id (jti),
// never the raw token. Presence means the token must not validate again.
// Rows become purgeable once ExpiresAt passes.
type RevokedToken struct {
	TokenID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
}
