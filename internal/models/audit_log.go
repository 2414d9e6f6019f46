package models

import "time"

// AuditLog records a notable action for the admin panel. Rows older than the
// retention window are deleted by the nightly cleanup job.
type AuditLog struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Action    string    `gorm:"type:varchar(64);not null;index" json:"action"`
	Message   string    `gorm:"type:text" json:"message"`
	UserID    uint64    `gorm:"index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
