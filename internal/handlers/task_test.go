package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/constants"
	"github.com/uniem/uniem-api/internal/database"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/repository"
	"github.com/uniem/uniem-api/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	service *services.GamificationService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskProgress{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	suite.service = services.NewGamificationService(
		repository.NewUserRepository(suite.db),
		taskRepo,
	)
	suite.handler = NewTaskHandler(suite.service, taskRepo)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, taskType models.TaskType) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Points:      10,
		Target:      1,
		Type:        taskType,
		IsActive:    true,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// TestListTasks_Success tests successful task listing
func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	user := suite.createTestUser("test@uni.edu.tr")
	task := suite.createTestTask("First Note", models.TaskTypeNote)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "tasks")
	assert.Equal(suite.T(), float64(1), response["results"])

	tasks := response["tasks"].([]interface{})
	firstTask := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), task.Title, firstTask["title"])
}

// TestListTasks_FilterByType tests the type query filter
func (suite *TaskHandlerTestSuite) TestListTasks_FilterByType() {
	user := suite.createTestUser("test@uni.edu.tr")
	suite.createTestTask("First Note", models.TaskTypeNote)
	suite.createTestTask("First Comment", models.TaskTypeComment)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)
	c.Request.URL.RawQuery = "type=note"

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(1), response["results"])
}

// TestListTasks_UnknownType tests the type filter with an invalid value
func (suite *TaskHandlerTestSuite) TestListTasks_UnknownType() {
	user := suite.createTestUser("test@uni.edu.tr")

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)
	c.Request.URL.RawQuery = "type=bogus"

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	admin := suite.createTestUser("admin@uni.edu.tr")

	requestBody := map[string]interface{}{
		"title":       "Ten Notes",
		"description": "Upload ten notes",
		"points":      100,
		"badge":       "Not Paylaşımcısı",
		"target":      10,
		"type":        "NOTE",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, admin.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ten Notes", response.Title)
	assert.Equal(suite.T(), models.TaskTypeNote, response.Type)
	assert.Equal(suite.T(), admin.ID, response.CreatedByID)
	assert.True(suite.T(), response.IsActive)
}

// TestCreateTask_InvalidRequest tests task creation with missing fields
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	admin := suite.createTestUser("admin@uni.edu.tr")

	// Missing required field: points
	requestBody := map[string]interface{}{
		"title":       "Broken Task",
		"description": "No points",
		"target":      1,
		"type":        "NOTE",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, admin.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_UnknownType tests task creation with an invalid type
func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownType() {
	admin := suite.createTestUser("admin@uni.edu.tr")

	requestBody := map[string]interface{}{
		"title":       "Broken Task",
		"description": "Bad type",
		"points":      10,
		"target":      1,
		"type":        "BOGUS",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, admin.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestGetUserProgress_Success tests reading own progress
func (suite *TaskHandlerTestSuite) TestGetUserProgress_Success() {
	user := suite.createTestUser("test@uni.edu.tr")
	suite.createTestTask("First Note", models.TaskTypeNote)
	suite.Require().NoError(suite.service.CompleteTask(user.ID, models.TaskTypeNote))

	c, w := suite.createAuthContext("GET", "/api/tasks/progress/1", nil, user.ID)
	c.Params = gin.Params{{Key: "userId", Value: "1"}}

	suite.handler.GetUserProgress(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(1), response["results"])

	progress := response["progress"].([]interface{})
	first := progress[0].(map[string]interface{})
	assert.Equal(suite.T(), "First Note", first["task_title"])
	assert.Equal(suite.T(), true, first["completed"])
}

// TestGetUserProgress_OtherUser tests that progress is self-only
func (suite *TaskHandlerTestSuite) TestGetUserProgress_OtherUser() {
	user := suite.createTestUser("test@uni.edu.tr")
	suite.createTestUser("other@uni.edu.tr")

	c, w := suite.createAuthContext("GET", "/api/tasks/progress/2", nil, user.ID)
	c.Params = gin.Params{{Key: "userId", Value: "2"}}

	suite.handler.GetUserProgress(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestGetUserProgress_InvalidID tests the user ID parsing
func (suite *TaskHandlerTestSuite) TestGetUserProgress_InvalidID() {
	user := suite.createTestUser("test@uni.edu.tr")

	c, w := suite.createAuthContext("GET", "/api/tasks/progress/abc", nil, user.ID)
	c.Params = gin.Params{{Key: "userId", Value: "abc"}}

	suite.handler.GetUserProgress(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
