package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uniem/uniem-api/internal/database"
	apierrors "github.com/uniem/uniem-api/internal/errors"
	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/middleware"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/services"
	"github.com/uniem/uniem-api/internal/utils"
)

type NoteHandler struct {
	gamification *services.GamificationService
}

func NewNoteHandler(gamification *services.GamificationService) *NoteHandler {
	return &NoteHandler{
		gamification: gamification,
	}
}

// ListNotes returns shared notes, newest first.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var total int64
	database.GetDB().Model(&models.Note{}).Count(&total)

	var notes []models.Note
	if err := database.GetDB().
		Preload("Owner").
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&notes).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch notes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": notes,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetNote returns a single note.
func (h *NoteHandler) GetNote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	var note models.Note
	if err := database.GetDB().Preload("Owner").First(&note, id).Error; err != nil {
		apierrors.NotFound(c, "Note not found")
		return
	}

	c.JSON(http.StatusOK, note)
}

// CreateNote uploads a note and counts it toward NOTE tasks.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateNoteRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		FileURL     string `json:"file_url"`
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note := models.Note{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		OwnerID:     userID,
	}

	if err := database.GetDB().Create(&note).Error; err != nil {
		apierrors.InternalError(c, "Failed to create note")
		return
	}

	// Best-effort follow-up: the upload stands even if progress tracking
	// fails.
	if err := h.gamification.CompleteTask(userID, models.TaskTypeNote); err != nil {
		logger.Warning("note task progress: user %d: %v", userID, err)
	}

	c.JSON(http.StatusCreated, note)
}

// RateNote adds a rating to a note and counts the vote toward the rater's
// VOTE tasks.
func (h *NoteHandler) RateNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	type RateRequest struct {
		Rating int `json:"rating" binding:"required,min=1,max=5"`
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Rating must be between 1 and 5")
		return
	}

	var note models.Note
	if err := database.GetDB().First(&note, id).Error; err != nil {
		apierrors.NotFound(c, "Note not found")
		return
	}

	if note.OwnerID == userID {
		apierrors.Forbidden(c, "You cannot rate your own note")
		return
	}

	if err := database.GetDB().Model(&note).
		UpdateColumn("rate", note.Rate+req.Rating).Error; err != nil {
		apierrors.InternalError(c, "Failed to rate note")
		return
	}

	if err := h.gamification.CompleteTask(userID, models.TaskTypeVote); err != nil {
		logger.Warning("vote task progress: user %d: %v", userID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note rated successfully",
		"rate":    note.Rate + req.Rating,
	})
}

// DeleteNote removes a note. Owners and moderators only.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid note ID")
		return
	}

	var note models.Note
	if err := database.GetDB().First(&note, id).Error; err != nil {
		apierrors.NotFound(c, "Note not found")
		return
	}

	if note.OwnerID != userID && !isModerator(userID) {
		apierrors.Forbidden(c, "You can only delete your own notes")
		return
	}

	if err := database.GetDB().Delete(&note).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete note")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// isModerator reports whether the user holds a moderation-capable role.
func isModerator(userID uint64) bool {
	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		return false
	}
	switch user.Role {
	case models.RoleModerator, models.RoleManager, models.RoleAdmin:
		return true
	}
	return false
}
