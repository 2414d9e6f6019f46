package dto

import (
	"fmt"

	"github.com/uniem/uniem-api/internal/models"
)

// TaskProgressDTO represents one task's progress in the user-progress
// response.
type TaskProgressDTO struct {
	TaskID       uint64          `json:"task_id"`
	TaskTitle    string          `json:"task_title"`
	Type         models.TaskType `json:"type"`
	Progress     int             `json:"progress"`
	Target       int             `json:"target"`
	Percentage   string          `json:"percentage"`
	Completed    bool            `json:"completed"`
	EarnedBadge  string          `json:"earned_badge,omitempty"`
	PointsEarned int             `json:"points_earned"`
}

// ToTaskProgressDTO flattens a progress row and its task definition. Badge
// and points show up only once the task is completed.
func ToTaskProgressDTO(p *models.TaskProgress) TaskProgressDTO {
	dto := TaskProgressDTO{
		TaskID:    p.TaskID,
		TaskTitle: p.Task.Title,
		Type:      p.Task.Type,
		Progress:  p.Progress,
		Target:    p.Task.Target,
		Completed: p.Completed,
	}

	if p.Task.Target > 0 {
		dto.Percentage = fmt.Sprintf("%.2f%%", float64(p.Progress)/float64(p.Task.Target)*100)
	} else {
		dto.Percentage = "N/A"
	}

	if p.Completed {
		dto.EarnedBadge = p.Task.Badge
		dto.PointsEarned = p.Task.Points
	}

	return dto
}
