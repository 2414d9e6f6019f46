package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/dto"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMissingParameters = errors.New("user id and task type are required")
	ErrInvalidTaskType   = errors.New("unknown task type")
)

// GamificationService advances task progress and hands out the resulting
// points, badges and rank updates.
type GamificationService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// NewGamificationService creates a new GamificationService
func NewGamificationService(userRepo repository.UserRepository, taskRepo repository.TaskRepository) *GamificationService {
	return &GamificationService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// CompleteTask records one qualifying action of the given type for the user:
// every active task of that type gains one unit of progress, tasks that reach
// their target pay out their reward exactly once, and the user's rank is
// refreshed a single time at the end.
//
// The call is not idempotent. It counts whatever it is handed, so the caller
// must invoke it exactly once per genuinely distinct action; invoking it
// twice for the same action double-counts progress.
func (s *GamificationService) CompleteTask(userID uint64, taskType models.TaskType) error {
	if userID == 0 || taskType == "" {
		return ErrMissingParameters
	}
	if !models.ValidTaskType(taskType) {
		return ErrInvalidTaskType
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	tasks, err := s.taskRepo.ListActiveByType(taskType)
	if err != nil {
		return fmt.Errorf("failed to list active tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	taskIDs := make([]uint64, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}

	existing, err := s.taskRepo.FindProgress(userID, taskIDs)
	if err != nil {
		return fmt.Errorf("failed to load task progress: %w", err)
	}

	byTask := make(map[uint64]*models.TaskProgress, len(existing))
	for i := range existing {
		byTask[existing[i].TaskID] = &existing[i]
	}

	for i := range tasks {
		task := &tasks[i]

		entry, ok := byTask[task.ID]
		if !ok {
			entry = &models.TaskProgress{
				UserID:   userID,
				TaskID:   task.ID,
				Progress: 1,
			}
			if task.Target == 1 {
				entry.Completed = true
				s.award(user, task)
			}
		} else {
			entry.Progress++
			if entry.Progress >= task.Target && !entry.Completed {
				entry.Completed = true
				s.award(user, task)
			}
		}

		if err := s.taskRepo.SaveProgress(entry); err != nil {
			return fmt.Errorf("failed to save progress for task %d: %w", task.ID, err)
		}
	}

	// One rank refresh per invocation, covering every award above.
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// award applies a completed task's reward to the in-memory user. The caller
// persists the user once all tasks are processed.
func (s *GamificationService) award(user *models.User, task *models.Task) {
	user.Points += task.Points

	if task.Badge != "" && !user.HasBadge(task.Badge) {
		user.Badges = append(user.Badges, task.Badge)
		user.Title = task.Badge
	}
}

// GetUserTaskProgress returns the user's progress across every task they have
// interacted with. Rows whose task definition has since been deleted are
// dropped.
func (s *GamificationService) GetUserTaskProgress(userID uint64) ([]dto.TaskProgressDTO, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	rows, err := s.taskRepo.ListProgressByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task progress: %w", err)
	}

	out := make([]dto.TaskProgressDTO, 0, len(rows))
	for i := range rows {
		if rows[i].Task.ID == 0 {
			continue
		}
		out = append(out, dto.ToTaskProgressDTO(&rows[i]))
	}

	return out, nil
}
