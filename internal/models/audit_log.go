package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog records every settlement state change with a snapshot of the
// figures involved.
type AuditLog struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID      `gorm:"type:uuid;index" json:"transaction_id"`
	Action        string         `gorm:"index;not null" json:"action"`
	PerformedBy   uuid.UUID      `gorm:"type:uuid" json:"performed_by"`
	Details       datatypes.JSON `json:"details,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
