package models

import "time"

// TaskProgress tracks one user's advancement toward one task's target.
// Progress only ever grows and Completed only ever flips false to true;
// rewards are handed out exactly once, at the moment of completion.
type TaskProgress struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_task_progress_user_task" json:"user_id"`
	TaskID    uint64    `gorm:"not null;uniqueIndex:idx_task_progress_user_task" json:"task_id"`
	Progress  int       `gorm:"not null;default:0" json:"progress"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
