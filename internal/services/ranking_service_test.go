package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/repository"
)

// RankingServiceTestSuite defines the test suite for RankingService
type RankingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *RankingService
}

// SetupTest runs before each test
func (suite *RankingServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.CommunityItem{},
		&models.Comment{},
		&models.Like{},
		&models.Ranking{},
		&models.RankingEntry{},
	)
	suite.Require().NoError(err)

	suite.service = NewRankingService(
		repository.NewLeaderboardRepository(suite.db),
		repository.NewRankingRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *RankingServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RankingServiceTestSuite) createTestUser(email string, points int) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Points:       points,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *RankingServiceTestSuite) createTestNote(ownerID uint64, rate int) *models.Note {
	note := &models.Note{
		Title:   "Test Note",
		OwnerID: ownerID,
		Rate:    rate,
	}
	suite.Require().NoError(suite.db.Create(note).Error)
	return note
}

// TestComputeLeaderboards_NoteDimensions tests the uploader count and summed
// rating dimensions
func (suite *RankingServiceTestSuite) TestComputeLeaderboards_NoteDimensions() {
	prolific := suite.createTestUser("prolific@uni.edu.tr", 0)
	rated := suite.createTestUser("rated@uni.edu.tr", 0)

	suite.createTestNote(prolific.ID, 1)
	suite.createTestNote(prolific.ID, 1)
	suite.createTestNote(prolific.ID, 0)
	suite.createTestNote(rated.ID, 25)

	boards, err := suite.service.ComputeLeaderboards(models.PeriodWeekly)
	assert.NoError(suite.T(), err)

	suite.Require().Len(boards.TopUploaders, 2)
	assert.Equal(suite.T(), prolific.ID, boards.TopUploaders[0].UserID)
	assert.Equal(suite.T(), int64(3), boards.TopUploaders[0].Value)

	suite.Require().Len(boards.TopRatedNoteOwners, 2)
	assert.Equal(suite.T(), rated.ID, boards.TopRatedNoteOwners[0].UserID)
	assert.Equal(suite.T(), int64(25), boards.TopRatedNoteOwners[0].Value)
}

// TestComputeLeaderboards_ExcludesOldActivity tests that content outside the
// trailing window does not count
func (suite *RankingServiceTestSuite) TestComputeLeaderboards_ExcludesOldActivity() {
	user := suite.createTestUser("test@uni.edu.tr", 0)
	note := suite.createTestNote(user.ID, 5)
	suite.Require().NoError(
		suite.db.Model(note).UpdateColumn("created_at", time.Now().AddDate(0, 0, -30)).Error,
	)

	boards, err := suite.service.ComputeLeaderboards(models.PeriodWeekly)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), boards.TopUploaders)

	// The same note still counts for the wider window.
	boards, err = suite.service.ComputeLeaderboards(models.PeriodYearly)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), boards.TopUploaders, 1)
}

// TestComputeLeaderboards_TopTenCap tests that a dimension never exceeds ten
// entries and orders them by value
func (suite *RankingServiceTestSuite) TestComputeLeaderboards_TopTenCap() {
	for i := 0; i < 12; i++ {
		user := suite.createTestUser(string(rune('a'+i))+"@uni.edu.tr", 0)
		for j := 0; j <= i; j++ {
			suite.createTestNote(user.ID, 0)
		}
	}

	boards, err := suite.service.ComputeLeaderboards(models.PeriodWeekly)
	assert.NoError(suite.T(), err)

	suite.Require().Len(boards.TopUploaders, 10)
	for i := 1; i < len(boards.TopUploaders); i++ {
		assert.GreaterOrEqual(suite.T(),
			boards.TopUploaders[i-1].Value, boards.TopUploaders[i].Value)
	}
}

// TestComputeLeaderboards_LikesCreditTheOwner tests that likes count for the
// liked item's owner, not the liker
func (suite *RankingServiceTestSuite) TestComputeLeaderboards_LikesCreditTheOwner() {
	owner := suite.createTestUser("owner@uni.edu.tr", 0)
	fan := suite.createTestUser("fan@uni.edu.tr", 0)

	item := &models.CommunityItem{Title: "Post", OwnerID: owner.ID}
	suite.Require().NoError(suite.db.Create(item).Error)
	suite.Require().NoError(suite.db.Create(&models.Like{ItemID: item.ID, UserID: fan.ID}).Error)

	boards, err := suite.service.ComputeLeaderboards(models.PeriodWeekly)
	assert.NoError(suite.T(), err)

	suite.Require().Len(boards.TopLikedOwners, 1)
	assert.Equal(suite.T(), owner.ID, boards.TopLikedOwners[0].UserID)
	assert.Equal(suite.T(), int64(1), boards.TopLikedOwners[0].Value)
}

// TestComputeLeaderboards_InvalidPeriod tests the sentinel for unknown periods
func (suite *RankingServiceTestSuite) TestComputeLeaderboards_InvalidPeriod() {
	_, err := suite.service.ComputeLeaderboards(models.RankingPeriod("hourly"))
	assert.ErrorIs(suite.T(), err, ErrInvalidPeriod)
}

// TestPublishSnapshot_MergesDimensionsWithLiveState tests that the snapshot is
// the union of the dimensions annotated with current points and rank
func (suite *RankingServiceTestSuite) TestPublishSnapshot_MergesDimensionsWithLiveState() {
	uploader := suite.createTestUser("uploader@uni.edu.tr", 120)
	commenter := suite.createTestUser("commenter@uni.edu.tr", 30)

	suite.createTestNote(uploader.ID, 4)
	item := &models.CommunityItem{Title: "Post", OwnerID: uploader.ID}
	suite.Require().NoError(suite.db.Create(item).Error)
	suite.Require().NoError(suite.db.Create(&models.Comment{
		ItemID: item.ID,
		UserID: commenter.ID,
		Text:   "nice",
	}).Error)

	snapshot, err := suite.service.PublishSnapshot(models.PeriodWeekly)
	assert.NoError(suite.T(), err)
	suite.Require().NotNil(snapshot)
	assert.NotZero(suite.T(), snapshot.ID)
	assert.Equal(suite.T(), models.PeriodWeekly, snapshot.Period)

	// Uploader appears in three dimensions but exactly once in the snapshot.
	suite.Require().Len(snapshot.TopUsers, 2)
	byUser := make(map[uint64]models.RankingEntry)
	for _, entry := range snapshot.TopUsers {
		byUser[entry.UserID] = entry
	}
	assert.Equal(suite.T(), 120, byUser[uploader.ID].Points)
	assert.Equal(suite.T(), "Yeni Üye 🎈", byUser[uploader.ID].Rank)
	assert.Equal(suite.T(), 30, byUser[commenter.ID].Points)
	assert.Equal(suite.T(), "Başlangıç 🌱", byUser[commenter.ID].Rank)
}

// TestPublishSnapshot_TwiceCreatesTwoRows tests that publishing never updates
// an earlier snapshot
func (suite *RankingServiceTestSuite) TestPublishSnapshot_TwiceCreatesTwoRows() {
	user := suite.createTestUser("test@uni.edu.tr", 10)
	suite.createTestNote(user.ID, 0)

	_, err := suite.service.PublishSnapshot(models.PeriodWeekly)
	suite.Require().NoError(err)
	_, err = suite.service.PublishSnapshot(models.PeriodWeekly)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Ranking{}).Where("period = ?", models.PeriodWeekly).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

// TestListSnapshots_NewestFirst tests the snapshot listing order and period
// filter
func (suite *RankingServiceTestSuite) TestListSnapshots_NewestFirst() {
	user := suite.createTestUser("test@uni.edu.tr", 10)
	suite.createTestNote(user.ID, 0)

	first, err := suite.service.PublishSnapshot(models.PeriodWeekly)
	suite.Require().NoError(err)
	second, err := suite.service.PublishSnapshot(models.PeriodWeekly)
	suite.Require().NoError(err)
	_, err = suite.service.PublishSnapshot(models.PeriodMonthly)
	suite.Require().NoError(err)

	snapshots, err := suite.service.ListSnapshots(models.PeriodWeekly, 20)
	assert.NoError(suite.T(), err)
	suite.Require().Len(snapshots, 2)
	assert.Equal(suite.T(), second.ID, snapshots[0].ID)
	assert.Equal(suite.T(), first.ID, snapshots[1].ID)
	suite.Require().Len(snapshots[0].TopUsers, 1)
	assert.Equal(suite.T(), user.ID, snapshots[0].TopUsers[0].UserID)
}

// TestListSnapshots_InvalidPeriod tests the sentinel for unknown periods
func (suite *RankingServiceTestSuite) TestListSnapshots_InvalidPeriod() {
	_, err := suite.service.ListSnapshots(models.RankingPeriod("daily"), 20)
	assert.ErrorIs(suite.T(), err, ErrInvalidPeriod)
}

// TestSuite runs the test suite
func TestRankingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RankingServiceTestSuite))
}
