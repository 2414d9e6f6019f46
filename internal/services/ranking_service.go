package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/uniem/uniem-api/internal/constants"
	"github.com/uniem/uniem-api/internal/dto"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/rank"
	"github.com/uniem/uniem-api/internal/repository"
)

var ErrInvalidPeriod = errors.New("invalid period, use weekly, monthly or yearly")

// RankingService computes the five leaderboard dimensions and publishes
// merged snapshots. Reading and publishing are two distinct operations:
// ComputeLeaderboards never persists anything, PublishSnapshot always inserts
// exactly one new snapshot row.
type RankingService struct {
	leaderboardRepo repository.LeaderboardRepository
	rankingRepo     repository.RankingRepository
	userRepo        repository.UserRepository
}

// NewRankingService creates a new RankingService
func NewRankingService(
	leaderboardRepo repository.LeaderboardRepository,
	rankingRepo repository.RankingRepository,
	userRepo repository.UserRepository,
) *RankingService {
	return &RankingService{
		leaderboardRepo: leaderboardRepo,
		rankingRepo:     rankingRepo,
		userRepo:        userRepo,
	}
}

// periodStart maps a reporting period to its lookback cutoff.
func periodStart(period models.RankingPeriod, now time.Time) (time.Time, error) {
	switch period {
	case models.PeriodWeekly:
		return now.AddDate(0, 0, -7), nil
	case models.PeriodMonthly:
		return now.AddDate(0, -1, 0), nil
	case models.PeriodYearly:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, ErrInvalidPeriod
}

// ComputeLeaderboards returns the five raw top-10 dimensions for the period's
// trailing window. Each dimension is independent; no weighting or
// deduplication happens across them. This is the synchronous dashboard read
// path and persists nothing.
func (s *RankingService) ComputeLeaderboards(period models.RankingPeriod) (*dto.LeaderboardsDTO, error) {
	since, err := periodStart(period, time.Now())
	if err != nil {
		return nil, err
	}

	limit := constants.LeaderboardSize

	uploaders, err := s.leaderboardRepo.TopNoteUploaders(since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top uploaders: %w", err)
	}
	rated, err := s.leaderboardRepo.TopRatedNoteOwners(since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top rated note owners: %w", err)
	}
	creators, err := s.leaderboardRepo.TopCommunityCreators(since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top community creators: %w", err)
	}
	commenters, err := s.leaderboardRepo.TopCommenters(since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top commenters: %w", err)
	}
	liked, err := s.leaderboardRepo.TopLikedOwners(since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top liked owners: %w", err)
	}

	return &dto.LeaderboardsDTO{
		TopUploaders:         uploaders,
		TopRatedNoteOwners:   rated,
		TopCommunityCreators: creators,
		TopCommenters:        commenters,
		TopLikedOwners:       liked,
	}, nil
}

// PublishSnapshot computes the period's leaderboards, merges the users
// appearing in any dimension into one list annotated with their live points
// and rank label, and inserts it as a new write-once snapshot. Calling twice
// produces two snapshots.
func (s *RankingService) PublishSnapshot(period models.RankingPeriod) (*models.Ranking, error) {
	boards, err := s.ComputeLeaderboards(period)
	if err != nil {
		return nil, err
	}

	userIDs := mergeDimensionUserIDs(
		boards.TopUploaders,
		boards.TopRatedNoteOwners,
		boards.TopCommunityCreators,
		boards.TopCommenters,
		boards.TopLikedOwners,
	)

	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve leaderboard users: %w", err)
	}

	byID := make(map[uint64]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	entries := make([]models.RankingEntry, 0, len(userIDs))
	for _, id := range userIDs {
		user, ok := byID[id]
		if !ok {
			// Dimension rows may reference users deleted since the window.
			continue
		}
		entries = append(entries, models.RankingEntry{
			UserID: user.ID,
			Points: user.Points,
			Rank:   rank.Calculate(user.Points),
		})
	}

	ranking := &models.Ranking{
		Period:   period,
		TopUsers: entries,
	}
	if err := s.rankingRepo.Create(ranking); err != nil {
		return nil, fmt.Errorf("failed to persist %s snapshot: %w", period, err)
	}

	return ranking, nil
}

// ListSnapshots returns persisted snapshots for the period, newest first.
func (s *RankingService) ListSnapshots(period models.RankingPeriod, limit int) ([]models.Ranking, error) {
	if !models.ValidRankingPeriod(period) {
		return nil, ErrInvalidPeriod
	}
	return s.rankingRepo.ListByPeriod(period, limit)
}

// mergeDimensionUserIDs unions the user IDs of all dimensions, preserving
// first-appearance order and dropping duplicates and zero IDs.
func mergeDimensionUserIDs(dimensions ...[]repository.DimensionEntry) []uint64 {
	seen := make(map[uint64]struct{})
	var ids []uint64

	for _, dim := range dimensions {
		for _, entry := range dim {
			if entry.UserID == 0 {
				continue
			}
			if _, ok := seen[entry.UserID]; ok {
				continue
			}
			seen[entry.UserID] = struct{}{}
			ids = append(ids, entry.UserID)
		}
	}

	return ids
}
