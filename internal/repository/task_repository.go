package repository

import (
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task definition
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// List returns task definitions, optionally filtered by type, newest first
func (r *GormTaskRepository) List(taskType *models.TaskType) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.Order("created_at DESC")
	if taskType != nil {
		query = query.Where("type = ?", *taskType)
	}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListActiveByType returns every active task of the given type
func (r *GormTaskRepository) ListActiveByType(taskType models.TaskType) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("type = ? AND is_active = ?", taskType, true).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindProgress returns the user's progress rows for the given task IDs
func (r *GormTaskRepository) FindProgress(userID uint64, taskIDs []uint64) ([]models.TaskProgress, error) {
	if len(taskIDs) == 0 {
		return []models.TaskProgress{}, nil
	}
	var progress []models.TaskProgress
	if err := r.db.
		Where("user_id = ? AND task_id IN ?", userID, taskIDs).
		Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// ListProgressByUser returns all of a user's progress rows with tasks
// preloaded, oldest first
func (r *GormTaskRepository) ListProgressByUser(userID uint64) ([]models.TaskProgress, error) {
	var progress []models.TaskProgress
	if err := r.db.
		Preload("Task").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// SaveProgress persists a progress row
func (r *GormTaskRepository) SaveProgress(progress *models.TaskProgress) error {
	return r.db.Save(progress).Error
}
