package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
)

func setupRankSyncDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	require.NoError(t, RegisterRankSync(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	return db
}

func createRankSyncUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        "test@uni.edu.tr",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRankSync_MapUpdateRecomputesRank(t *testing.T) {
	db := setupRankSyncDB(t)
	user := createRankSyncUser(t, db)

	err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"points": 150}).Error
	require.NoError(t, err)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, 150, updated.Points)
	require.Equal(t, "Yeni Üye 🎈", updated.Rank)
}

func TestRankSync_NegativePointsClampToZero(t *testing.T) {
	db := setupRankSyncDB(t)
	user := createRankSyncUser(t, db)

	err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"points": -40}).Error
	require.NoError(t, err)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, 0, updated.Points)
	require.Equal(t, "Başlangıç 🌱", updated.Rank)
}

func TestRankSync_UpdateWithoutPointsUntouched(t *testing.T) {
	db := setupRankSyncDB(t)
	user := createRankSyncUser(t, db)

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"points": 200}).Error)

	err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"bio": "hello"}).Error
	require.NoError(t, err)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, "Yeni Üye 🎈", updated.Rank)
}

func TestRankSync_StructSaveCoveredByHook(t *testing.T) {
	db := setupRankSyncDB(t)
	user := createRankSyncUser(t, db)

	user.Points = 6000
	require.NoError(t, db.Save(user).Error)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, "Deneyimli 🌟", updated.Rank)
}

func TestRankSync_OtherTablesIgnored(t *testing.T) {
	db := setupRankSyncDB(t)
	require.NoError(t, db.AutoMigrate(&models.Note{}))
	user := createRankSyncUser(t, db)

	note := &models.Note{Title: "Note", OwnerID: user.ID}
	require.NoError(t, db.Create(note).Error)

	// "points" on a non-user table must not trip the callback.
	err := db.Model(note).
		Updates(map[string]interface{}{"rate": 4}).Error
	require.NoError(t, err)
}
