package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/rank"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs finds every user whose ID is in the given set
func (r *GormUserRepository) FindByIDs(ids []uint64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Save persists all fields of the user
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// AddPoints atomically increments the point total, then refreshes the rank
// label from the value the increment produced. The increment itself is a
// single UPDATE, so concurrent awards cannot lose each other; the follow-up
// rank write is idempotent.
func (r *GormUserRepository) AddPoints(userID uint64, delta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var points int
		if err := tx.Model(&models.User{}).
			Select("points").
			Where("id = ?", userID).
			Scan(&points).Error; err != nil {
			return fmt.Errorf("failed to read points back: %w", err)
		}

		if points < 0 {
			points = 0
			if err := tx.Model(&models.User{}).
				Where("id = ?", userID).
				UpdateColumn("points", 0).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("rank", rank.Calculate(points)).Error
	})
}

// FindActiveSince returns users whose last activity is at or after the cutoff
func (r *GormUserRepository) FindActiveSince(cutoff time.Time) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("last_active_at >= ?", cutoff).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindAll returns every user
func (r *GormUserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
