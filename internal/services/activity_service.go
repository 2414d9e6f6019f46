package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/constants"
	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/repository"
)

// ActivityService awards presence-based points: a daily first-activity bonus
// and an hourly activity bonus, updated per request and re-evaluated by the
// scheduled sweeps.
type ActivityService struct {
	userRepo repository.UserRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(userRepo repository.UserRepository) *ActivityService {
	return &ActivityService{userRepo: userRepo}
}

// TouchUser records activity for an authenticated request: refreshes
// last-active, pays the daily bonus on the first activity of the day, and
// pays the hourly bonus.
//
// Whether the hourly bonus should land once per hour window or on every
// request is an unresolved product question; the window test the original
// behavior relies on is always satisfied by the request that triggers it, so
// today it pays per request. Kept as-is pending clarification.
func (s *ActivityService) TouchUser(userID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	now := time.Now()
	user.LastActiveAt = &now

	if !user.DailyLogin {
		user.Points += constants.DailyLoginPoints
		user.DailyLogin = true
	}

	user.Points += constants.HourlyActivityPoints

	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to save user activity: %w", err)
	}

	return nil
}

// HourlyActivitySweep pays the hourly bonus to every user active within the
// trailing hour. A failure for one user is logged and does not stop the
// sweep. Returns the number of users credited.
func (s *ActivityService) HourlyActivitySweep() (int, error) {
	cutoff := time.Now().Add(-time.Hour)

	users, err := s.userRepo.FindActiveSince(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list active users: %w", err)
	}

	credited := 0
	for i := range users {
		if err := s.userRepo.AddPoints(users[i].ID, constants.HourlyActivityPoints); err != nil {
			logger.Warning("hourly sweep: user %d: %v", users[i].ID, err)
			continue
		}
		credited++
	}

	return credited, nil
}

// DailyLoginSweep runs once per day: users active within the trailing 24
// hours who have not claimed the daily bonus get it now; everyone else has
// their flag cleared so tomorrow's first activity pays again. Per-user
// failures are logged and skipped.
func (s *ActivityService) DailyLoginSweep() (int, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	cutoff := time.Now().Add(-24 * time.Hour)

	credited := 0
	for i := range users {
		user := &users[i]

		awarded := false
		if user.LastActiveAt != nil && !user.LastActiveAt.Before(cutoff) && !user.DailyLogin {
			user.Points += constants.DailyLoginPoints
			user.DailyLogin = true
			awarded = true
		} else {
			user.DailyLogin = false
		}

		if err := s.userRepo.Save(user); err != nil {
			logger.Warning("daily sweep: user %d: %v", user.ID, err)
			continue
		}
		if awarded {
			credited++
		}
	}

	return credited, nil
}
