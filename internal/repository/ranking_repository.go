package repository

import (
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
)

// GormRankingRepository is a GORM implementation of RankingRepository
type GormRankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository creates a new RankingRepository
func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &GormRankingRepository{db: db}
}

// Create inserts a new snapshot with its entries. Each call creates a fresh
// row; there is no upsert.
func (r *GormRankingRepository) Create(ranking *models.Ranking) error {
	return r.db.Create(ranking).Error
}

// ListByPeriod returns snapshots for a period, newest first
func (r *GormRankingRepository) ListByPeriod(period models.RankingPeriod, limit int) ([]models.Ranking, error) {
	var rankings []models.Ranking
	query := r.db.
		Preload("TopUsers").
		Where("period = ?", period).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rankings).Error; err != nil {
		return nil, err
	}
	return rankings, nil
}
