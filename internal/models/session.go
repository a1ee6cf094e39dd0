package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one login. The token is handed to the client and sent back as
// a bearer token on every request.
type Session struct {
	Token     uuid.UUID `gorm:"type:uuid;primaryKey" json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
