package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goharvest/internal/api/middleware"
	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/stats"
)

// StatsHandler serves the statistics snapshot consumed by the dashboard.
type StatsHandler struct {
	aggregator *stats.Aggregator
	logger     logger.Interface
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(aggregator *stats.Aggregator, log logger.Interface) *StatsHandler {
	return &StatsHandler{
		aggregator: aggregator,
		logger:     log.WithComponent("api"),
	}
}

// GetStats handles GET /api/v1/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		respondUnauthorized(c)
		return
	}

	target := domain.TableTarget(c.DefaultQuery("table_target", string(domain.TableTargetV1)))

	snapshot, err := h.aggregator.ComputeSnapshot(c.Request.Context(), userID, target)
	if err != nil {
		h.logger.Error("Failed to compute stats snapshot", "user_id", userID, "error", err)
		respondInternalError(c)
		return
	}

	respondData(c, snapshot)
}
