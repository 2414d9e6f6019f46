package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/uniem/uniem-api/internal/errors"
	"github.com/uniem/uniem-api/internal/middleware"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/repository"
	"github.com/uniem/uniem-api/internal/services"
)

type TaskHandler struct {
	gamification *services.GamificationService
	taskRepo     repository.TaskRepository
}

func NewTaskHandler(gamification *services.GamificationService, taskRepo repository.TaskRepository) *TaskHandler {
	return &TaskHandler{
		gamification: gamification,
		taskRepo:     taskRepo,
	}
}

// ListTasks returns every task definition, optionally filtered by type.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter *models.TaskType
	if t := c.Query("type"); t != "" {
		taskType := models.TaskType(strings.ToUpper(t))
		if !models.ValidTaskType(taskType) {
			apierrors.BadRequest(c, "Unknown task type")
			return
		}
		filter = &taskType
	}

	tasks, err := h.taskRepo.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": len(tasks),
		"tasks":   tasks,
	})
}

// CreateTask defines a new achievement task. Admin only (enforced by route
// middleware).
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Points      int    `json:"points" binding:"required,min=1"`
		Badge       string `json:"badge"`
		Target      int    `json:"target" binding:"required,min=1"`
		Type        string `json:"type" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	taskType := models.TaskType(strings.ToUpper(req.Type))
	if !models.ValidTaskType(taskType) {
		apierrors.BadRequest(c, "Unknown task type")
		return
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Badge:       req.Badge,
		Target:      req.Target,
		Type:        taskType,
		IsActive:    true,
		CreatedByID: userID,
	}

	if err := h.taskRepo.Create(&task); err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetUserProgress returns a user's progress on every task they have touched.
// Users may only view their own progress.
func (h *TaskHandler) GetUserProgress(c *gin.Context) {
	currentUserID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	requestedID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if requestedID != currentUserID {
		apierrors.Forbidden(c, "You do not have permission to view this user's progress")
		return
	}

	progress, err := h.gamification.GetUserTaskProgress(requestedID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load task progress")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":  len(progress),
		"progress": progress,
	})
}
