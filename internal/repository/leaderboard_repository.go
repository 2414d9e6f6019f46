package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
)

// GormLeaderboardRepository computes leaderboard dimensions with GROUP BY
// aggregations over the domain tables.
type GormLeaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &GormLeaderboardRepository{db: db}
}

// TopNoteUploaders counts notes created since the cutoff, per owner
func (r *GormLeaderboardRepository) TopNoteUploaders(since time.Time, limit int) ([]DimensionEntry, error) {
	var entries []DimensionEntry
	err := r.db.Model(&models.Note{}).
		Select("owner_id AS user_id, COUNT(*) AS value").
		Where("created_at >= ?", since).
		Group("owner_id").
		Order("value DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// TopRatedNoteOwners sums note ratings since the cutoff, per owner
func (r *GormLeaderboardRepository) TopRatedNoteOwners(since time.Time, limit int) ([]DimensionEntry, error) {
	var entries []DimensionEntry
	err := r.db.Model(&models.Note{}).
		Select("owner_id AS user_id, SUM(rate) AS value").
		Where("created_at >= ?", since).
		Group("owner_id").
		Order("value DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// TopCommunityCreators counts community items since the cutoff, per owner
func (r *GormLeaderboardRepository) TopCommunityCreators(since time.Time, limit int) ([]DimensionEntry, error) {
	var entries []DimensionEntry
	err := r.db.Model(&models.CommunityItem{}).
		Select("owner_id AS user_id, COUNT(*) AS value").
		Where("created_at >= ?", since).
		Group("owner_id").
		Order("value DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// TopCommenters counts comments since the cutoff, per author
func (r *GormLeaderboardRepository) TopCommenters(since time.Time, limit int) ([]DimensionEntry, error) {
	var entries []DimensionEntry
	err := r.db.Model(&models.Comment{}).
		Select("comments.user_id AS user_id, COUNT(*) AS value").
		Where("comments.created_at >= ?", since).
		Group("comments.user_id").
		Order("value DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// TopLikedOwners counts likes received since the cutoff, credited to the
// owner of the liked item.
func (r *GormLeaderboardRepository) TopLikedOwners(since time.Time, limit int) ([]DimensionEntry, error) {
	var entries []DimensionEntry
	err := r.db.Model(&models.Like{}).
		Select("community_items.owner_id AS user_id, COUNT(*) AS value").
		Joins("JOIN community_items ON community_items.id = likes.item_id").
		Where("likes.created_at >= ?", since).
		Group("community_items.owner_id").
		Order("value DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
