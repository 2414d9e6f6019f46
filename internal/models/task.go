package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskType is the category of user action a task counts.
type TaskType string

const (
	TaskTypeNote      TaskType = "NOTE"
	TaskTypeBlog      TaskType = "BLOG"
	TaskTypeUser      TaskType = "USER"
	TaskTypeCommunity TaskType = "COMMUNITY"
	TaskTypeTask      TaskType = "TASK"
	TaskTypeComment   TaskType = "COMMENT"
	TaskTypeVote      TaskType = "VOTE"
)

// ValidTaskType reports whether t is one of the known task categories.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeNote, TaskTypeBlog, TaskTypeUser, TaskTypeCommunity,
		TaskTypeTask, TaskTypeComment, TaskTypeVote:
		return true
	}
	return false
}

// Task is an admin-defined achievement: complete Target qualifying actions of
// the given Type and earn Points (and the Badge, if one is set).
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Points      int            `gorm:"not null" json:"points"`
	Badge       string         `gorm:"type:varchar(128)" json:"badge"`
	Target      int            `gorm:"not null" json:"target"`
	Type        TaskType       `gorm:"type:varchar(20);not null;index" json:"type"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedByID uint64         `json:"created_by_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
