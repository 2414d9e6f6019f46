package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/rank"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleManager   UserRole = "manager"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID             uint64                      `gorm:"primarykey" json:"id"`
	Name           string                      `gorm:"type:varchar(255);not null" json:"name"`
	Email          string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string                      `gorm:"type:varchar(255);not null" json:"-"`
	Role           UserRole                    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Bio            string                      `gorm:"type:text" json:"bio"`
	ProfilePicture string                      `gorm:"type:varchar(512)" json:"profile_picture"`
	Points         int                         `gorm:"not null;default:0" json:"points"`
	Rank           string                      `gorm:"type:varchar(64);not null;default:''" json:"rank"`
	Thanks         int                         `gorm:"not null;default:0" json:"thanks"`
	Badges         datatypes.JSONSlice[string] `json:"badges"`
	Title          string                      `gorm:"type:varchar(128)" json:"title"`
	DailyLogin     bool                        `gorm:"not null;default:false" json:"daily_login"`
	LastActiveAt   *time.Time                  `json:"last_active_at"`
	IsPublic       bool                        `gorm:"not null;default:true" json:"is_public"`
	IsActive       bool                        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`

	// Relations
	TaskProgress []TaskProgress `gorm:"foreignKey:UserID" json:"task_progress,omitempty"`
	Notes        []Note         `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeSave keeps the derived rank label in lockstep with the point total.
// Every save of a User struct goes through here, so no caller that mutates
// Points can persist a stale Rank.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Points < 0 {
		u.Points = 0
	}
	u.Rank = rank.Calculate(u.Points)
	return nil
}

// HasBadge reports whether the badge is already in the user's badge set.
func (u *User) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
