package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/services"
)

// TrackActivity records presence-based point accrual for every authenticated
// request. Best-effort: a failed update is logged and never blocks the
// request. Must run after RequireAuth.
func TrackActivity(activity *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := GetUserID(c); ok {
			if err := activity.TouchUser(userID); err != nil {
				logger.Warning("activity tracking: user %d: %v", userID, err)
			}
		}
		c.Next()
	}
}
