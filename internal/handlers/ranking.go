package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/uniem/uniem-api/internal/errors"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/services"
	"github.com/uniem/uniem-api/internal/utils"
)

type RankingHandler struct {
	rankingService *services.RankingService
}

func NewRankingHandler(rankingService *services.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
	}
}

// GetLeaderboards computes the five live top-10 dimensions for the period.
func (h *RankingHandler) GetLeaderboards(c *gin.Context) {
	period := models.RankingPeriod(c.Param("period"))

	boards, err := h.rankingService.ComputeLeaderboards(period)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to compute leaderboards")
		return
	}

	c.JSON(http.StatusOK, boards)
}

// ListSnapshots returns persisted snapshots for a period, newest first.
func (h *RankingHandler) ListSnapshots(c *gin.Context) {
	period := models.RankingPeriod(c.Param("period"))
	params := utils.GetPaginationParams(c)

	snapshots, err := h.rankingService.ListSnapshots(period, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to list snapshots")
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// PublishSnapshot persists a new merged snapshot for the period. Admin only;
// the scheduler covers the regular weekly publication.
func (h *RankingHandler) PublishSnapshot(c *gin.Context) {
	period := models.RankingPeriod(c.Param("period"))

	ranking, err := h.rankingService.PublishSnapshot(period)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to publish snapshot")
		return
	}

	c.JSON(http.StatusCreated, ranking)
}
