package repository

import (
	"time"

	"github.com/uniem/uniem-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs finds every user whose ID is in the given set
	FindByIDs(ids []uint64) ([]models.User, error)

	// Save persists all fields of the user (rank is refreshed by hooks)
	Save(user *models.User) error

	// AddPoints atomically adds delta to the user's point total and refreshes
	// the stored rank label from the resulting value
	AddPoints(userID uint64, delta int) error

	// FindActiveSince returns users whose last activity is at or after the cutoff
	FindActiveSince(cutoff time.Time) ([]models.User, error)

	// FindAll returns every user (batch sweeps only)
	FindAll() ([]models.User, error)
}

// TaskRepository defines the interface for task and task-progress data access
type TaskRepository interface {
	// Create creates a new task definition
	Create(task *models.Task) error

	// List returns task definitions, optionally filtered by type
	List(taskType *models.TaskType) ([]models.Task, error)

	// ListActiveByType returns every active task of the given type
	ListActiveByType(taskType models.TaskType) ([]models.Task, error)

	// FindProgress returns the user's progress rows for the given task IDs
	FindProgress(userID uint64, taskIDs []uint64) ([]models.TaskProgress, error)

	// ListProgressByUser returns all of a user's progress rows with tasks preloaded
	ListProgressByUser(userID uint64) ([]models.TaskProgress, error)

	// SaveProgress persists a progress row
	SaveProgress(progress *models.TaskProgress) error
}

// RankingRepository defines the interface for leaderboard snapshot access
type RankingRepository interface {
	// Create inserts a new snapshot with its entries; snapshots are write-once
	Create(ranking *models.Ranking) error

	// ListByPeriod returns snapshots for a period, newest first
	ListByPeriod(period models.RankingPeriod, limit int) ([]models.Ranking, error)
}

// DimensionEntry is one row of a single leaderboard dimension: a user and the
// metric that ranked them (a count or a rating sum).
type DimensionEntry struct {
	UserID uint64 `json:"user_id"`
	Value  int64  `json:"value"`
}

// LeaderboardRepository computes the five per-dimension top lists over a
// trailing window.
type LeaderboardRepository interface {
	// TopNoteUploaders counts notes created since the cutoff, per owner
	TopNoteUploaders(since time.Time, limit int) ([]DimensionEntry, error)

	// TopRatedNoteOwners sums note ratings since the cutoff, per owner
	TopRatedNoteOwners(since time.Time, limit int) ([]DimensionEntry, error)

	// TopCommunityCreators counts community items since the cutoff, per owner
	TopCommunityCreators(since time.Time, limit int) ([]DimensionEntry, error)

	// TopCommenters counts comments since the cutoff, per author
	TopCommenters(since time.Time, limit int) ([]DimensionEntry, error)

	// TopLikedOwners counts likes received since the cutoff, per liked item's owner
	TopLikedOwners(since time.Time, limit int) ([]DimensionEntry, error)
}

// LogRepository defines the interface for audit-log access
type LogRepository interface {
	// Create appends an audit-log row
	Create(entry *models.AuditLog) error

	// DeleteOlderThan removes rows created before the cutoff and reports how
	// many were deleted
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
