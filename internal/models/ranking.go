package models

import "time"

type RankingPeriod string

const (
	PeriodWeekly  RankingPeriod = "weekly"
	PeriodMonthly RankingPeriod = "monthly"
	PeriodYearly  RankingPeriod = "yearly"
)

// ValidRankingPeriod reports whether p is a known reporting period.
func ValidRankingPeriod(p RankingPeriod) bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Ranking is a write-once leaderboard snapshot. The scheduler inserts a fresh
// row per run; snapshots are never updated afterwards.
type Ranking struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Period    RankingPeriod  `gorm:"type:varchar(10);not null;index" json:"period"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	TopUsers  []RankingEntry `gorm:"foreignKey:RankingID" json:"top_users"`
}

// RankingEntry preserves a user's points and rank label as they were at
// snapshot time.
type RankingEntry struct {
	ID        uint64 `gorm:"primarykey" json:"-"`
	RankingID uint64 `gorm:"not null;index" json:"-"`
	UserID    uint64 `gorm:"not null" json:"user_id"`
	Points    int    `gorm:"not null" json:"points"`
	Rank      string `gorm:"type:varchar(64);not null" json:"rank"`
}
