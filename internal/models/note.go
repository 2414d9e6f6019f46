package models

import (
	"time"

	"gorm.io/gorm"
)

// Note is a shared lecture note. Rate accumulates the ratings given by other
// users; the weekly leaderboard sums it per owner.
type Note struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	FileURL     string         `gorm:"type:varchar(512)" json:"file_url"`
	Rate        int            `gorm:"not null;default:0" json:"rate"`
	OwnerID     uint64         `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
