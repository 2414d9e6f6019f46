package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
)

// GormLogRepository is a GORM implementation of LogRepository
type GormLogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *gorm.DB) LogRepository {
	return &GormLogRepository{db: db}
}

// Create appends an audit-log row
func (r *GormLogRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// DeleteOlderThan removes rows created before the cutoff
func (r *GormLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at <= ?", cutoff).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
