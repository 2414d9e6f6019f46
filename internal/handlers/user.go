package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/database"
	"github.com/uniem/uniem-api/internal/dto"
	apierrors "github.com/uniem/uniem-api/internal/errors"
	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/middleware"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/services"
)

type UserHandler struct {
	gamification *services.GamificationService
}

func NewUserHandler(gamification *services.GamificationService) *UserHandler {
	return &UserHandler{
		gamification: gamification,
	}
}

// GetProfile returns another user's profile. Private profiles only expose
// name, rank and title.
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	currentUserID, _ := middleware.GetUserID(c)
	if user.ID == currentUserID {
		c.JSON(http.StatusOK, dto.ToUserDTO(&user))
		return
	}

	if !user.IsPublic {
		c.JSON(http.StatusOK, gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"rank":  user.Rank,
			"title": user.Title,
		})
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicUserDTO(&user))
}

// Thanks sends a thank-you to another user and counts it toward the sender's
// USER tasks.
func (h *UserHandler) Thanks(c *gin.Context) {
	senderID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	receiverID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if receiverID == senderID {
		apierrors.BadRequest(c, "You cannot thank yourself")
		return
	}

	res := database.GetDB().Model(&models.User{}).
		Where("id = ?", receiverID).
		UpdateColumn("thanks", gorm.Expr("thanks + ?", 1))
	if res.Error != nil {
		apierrors.InternalError(c, "Failed to send thanks")
		return
	}
	if res.RowsAffected == 0 {
		apierrors.NotFound(c, "User not found")
		return
	}

	if err := h.gamification.CompleteTask(senderID, models.TaskTypeUser); err != nil {
		logger.Warning("thanks task progress: user %d: %v", senderID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thanks sent"})
}

// Follow makes the current user follow the target and counts it toward the
// follower's USER tasks.
func (h *UserHandler) Follow(c *gin.Context) {
	followerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if targetID == followerID {
		apierrors.BadRequest(c, "You cannot follow yourself")
		return
	}

	var target models.User
	if err := database.GetDB().First(&target, targetID).Error; err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	var existing models.Follow
	err = database.GetDB().
		Where("follower_id = ? AND followed_id = ?", followerID, targetID).
		First(&existing).Error
	if err == nil {
		apierrors.Conflict(c, "Already following this user")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		apierrors.InternalError(c, "Failed to follow user")
		return
	}

	follow := models.Follow{FollowerID: followerID, FollowedID: targetID}
	if err := database.GetDB().Create(&follow).Error; err != nil {
		apierrors.InternalError(c, "Failed to follow user")
		return
	}

	if err := h.gamification.CompleteTask(followerID, models.TaskTypeUser); err != nil {
		logger.Warning("follow task progress: user %d: %v", followerID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Now following"})
}

// Unfollow removes a follow relation. No task progress is recorded.
func (h *UserHandler) Unfollow(c *gin.Context) {
	followerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	res := database.GetDB().
		Where("follower_id = ? AND followed_id = ?", followerID, targetID).
		Delete(&models.Follow{})
	if res.Error != nil {
		apierrors.InternalError(c, "Failed to unfollow user")
		return
	}
	if res.RowsAffected == 0 {
		apierrors.NotFound(c, "You are not following this user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}
