package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/database"
	apierrors "github.com/uniem/uniem-api/internal/errors"
	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/middleware"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/services"
	"github.com/uniem/uniem-api/internal/utils"
)

type CommunityHandler struct {
	gamification *services.GamificationService
}

func NewCommunityHandler(gamification *services.GamificationService) *CommunityHandler {
	return &CommunityHandler{
		gamification: gamification,
	}
}

// ListItems returns community items, newest first.
func (h *CommunityHandler) ListItems(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.CommunityItem{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	query.Count(&total)

	var items []models.CommunityItem
	if err := query.
		Preload("Owner").
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&items).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch community items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetItem returns one community item with comments and likes.
func (h *CommunityHandler) GetItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var item models.CommunityItem
	if err := database.GetDB().
		Preload("Owner").
		Preload("Comments").
		Preload("Comments.User").
		Preload("Likes").
		First(&item, id).Error; err != nil {
		apierrors.NotFound(c, "Community item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem shares a post, event or competition and counts it toward
// COMMUNITY tasks.
func (h *CommunityHandler) CreateItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateItemRequest struct {
		Kind    string `json:"kind"`
		Title   string `json:"title" binding:"required"`
		Content string `json:"content"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	kind := models.CommunityItemKind(req.Kind)
	if req.Kind == "" {
		kind = models.CommunityKindPost
	} else if kind != models.CommunityKindPost && kind != models.CommunityKindEvent && kind != models.CommunityKindCompetition {
		apierrors.BadRequest(c, "Unknown item kind")
		return
	}

	item := models.CommunityItem{
		Kind:    kind,
		Title:   req.Title,
		Content: req.Content,
		OwnerID: userID,
	}

	if err := database.GetDB().Create(&item).Error; err != nil {
		apierrors.InternalError(c, "Failed to create community item")
		return
	}

	if err := h.gamification.CompleteTask(userID, models.TaskTypeCommunity); err != nil {
		logger.Warning("community task progress: user %d: %v", userID, err)
	}

	c.JSON(http.StatusCreated, item)
}

// WriteComment adds a comment and counts it toward COMMENT tasks.
func (h *CommunityHandler) WriteComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	type CommentRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Comment text is required")
		return
	}

	var item models.CommunityItem
	if err := database.GetDB().First(&item, itemID).Error; err != nil {
		apierrors.NotFound(c, "Community item not found")
		return
	}

	comment := models.Comment{
		ItemID: item.ID,
		UserID: userID,
		Text:   req.Text,
	}

	if err := database.GetDB().Create(&comment).Error; err != nil {
		apierrors.InternalError(c, "Failed to add comment")
		return
	}

	if err := h.gamification.CompleteTask(userID, models.TaskTypeComment); err != nil {
		logger.Warning("comment task progress: user %d: %v", userID, err)
	}

	c.JSON(http.StatusCreated, comment)
}

// ToggleLike likes an item, or removes the like if it already exists.
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var item models.CommunityItem
	if err := database.GetDB().First(&item, itemID).Error; err != nil {
		apierrors.NotFound(c, "Community item not found")
		return
	}

	var like models.Like
	err = database.GetDB().
		Where("item_id = ? AND user_id = ?", item.ID, userID).
		First(&like).Error

	switch {
	case err == nil:
		if err := database.GetDB().
			Where("item_id = ? AND user_id = ?", item.ID, userID).
			Delete(&models.Like{}).Error; err != nil {
			apierrors.InternalError(c, "Failed to remove like")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Like removed", "liked": false})

	case errors.Is(err, gorm.ErrRecordNotFound):
		like = models.Like{ItemID: item.ID, UserID: userID}
		if err := database.GetDB().Create(&like).Error; err != nil {
			apierrors.InternalError(c, "Failed to like item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item liked", "liked": true})

	default:
		apierrors.InternalError(c, "Failed to toggle like")
	}
}

// DeleteItem removes a community item. Owners and moderators only.
func (h *CommunityHandler) DeleteItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var item models.CommunityItem
	if err := database.GetDB().First(&item, id).Error; err != nil {
		apierrors.NotFound(c, "Community item not found")
		return
	}

	if item.OwnerID != userID && !isModerator(userID) {
		apierrors.Forbidden(c, "You can only delete your own posts")
		return
	}

	if err := database.GetDB().Delete(&item).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete item")
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
