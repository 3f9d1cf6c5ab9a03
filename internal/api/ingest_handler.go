package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/goharvest/internal/api/middleware"
	"github.com/jonesrussell/goharvest/internal/database"
	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/ingest"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/metrics"
)

// IngestRequest is the body accepted by the ingestion endpoint. UserID is
// optional: service callers may ingest on behalf of a user, otherwise the
// authenticated identity is used.
type IngestRequest struct {
	Records     []domain.ScrapedRecord `json:"records" binding:"required"`
	UserID      string                 `json:"user_id"`
	TableTarget domain.TableTarget     `json:"table_target"`
	MarginRate  float64                `json:"margin_rate"`
}

// IngestHandler serves the batch ingestion endpoint.
type IngestHandler struct {
	repo              database.ProductRepositoryInterface
	logger            logger.Interface
	metrics           *metrics.Metrics
	defaultMarginRate float64
}

// NewIngestHandler creates a new ingestion handler.
func NewIngestHandler(
	repo database.ProductRepositoryInterface,
	log logger.Interface,
	m *metrics.Metrics,
	defaultMarginRate float64,
) *IngestHandler {
	return &IngestHandler{
		repo:              repo,
		logger:            log.WithComponent("api"),
		metrics:           m,
		defaultMarginRate: defaultMarginRate,
	}
}

// IngestProducts handles POST /api/v1/products/ingest
func (h *IngestHandler) IngestProducts(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = middleware.UserID(c)
	}

	target := req.TableTarget
	if target == "" {
		target = domain.TableTargetV1
	}

	marginRate := h.defaultMarginRate
	if req.MarginRate > 0 {
		marginRate = req.MarginRate
	}

	pipeline := ingest.NewPipeline(h.repo, h.logger, h.metrics, ingest.WithMarginRate(marginRate))

	result, err := pipeline.Ingest(c.Request.Context(), req.Records, userID, target)
	if err != nil {
		if errors.Is(err, ingest.ErrUnauthenticated) {
			respondUnauthorized(c)
			return
		}
		h.logger.Error("Ingestion failed", "error", err)
		respondInternalError(c)
		return
	}

	respondData(c, result)
}
