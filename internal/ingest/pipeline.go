// Package ingest turns batches of raw scraped records into persisted product
// rows with computed pricing and per-record failure accounting.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/goharvest/internal/database"
	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/metrics"
	"github.com/jonesrussell/goharvest/internal/pricing"
)

// ErrUnauthenticated is returned when no user identity can be resolved for a
// batch. It is surfaced before any record is processed.
var ErrUnauthenticated = errors.New("unauthenticated: no user identity")

// Pipeline validates, prices, and upserts batches of scraped records.
//
// Records are processed one at a time so that a failing record never aborts
// the rest of the batch; each failure is recorded into the result and the
// loop moves on.
type Pipeline struct {
	repo       database.ProductRepositoryInterface
	logger     logger.Interface
	metrics    *metrics.Metrics
	marginRate float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMarginRate overrides the default margin rate percentage applied to
// ingested records.
func WithMarginRate(rate float64) Option {
	return func(p *Pipeline) {
		if rate > 0 {
			p.marginRate = rate
		}
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	repo database.ProductRepositoryInterface,
	log logger.Interface,
	m *metrics.Metrics,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		repo:       repo,
		logger:     log.WithComponent("ingest"),
		metrics:    m,
		marginRate: pricing.DefaultMarginRate,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MarginRate returns the margin rate percentage the pipeline applies.
func (p *Pipeline) MarginRate() float64 {
	return p.marginRate
}

// Ingest processes a batch of scraped records for the given user and table
// target. The user identity must be resolved by the caller; an empty userID
// fails the whole batch with ErrUnauthenticated before any record is
// touched.
//
// Individual record failures (invalid price, store rejection) are isolated:
// they are tallied into the result and processing continues with the next
// record. The returned result always satisfies Saved+Failed == Total.
func (p *Pipeline) Ingest(
	ctx context.Context,
	records []domain.ScrapedRecord,
	userID string,
	target domain.TableTarget,
) (*Result, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	result := &Result{Total: len(records)}
	p.metrics.IncBatch()

	for i := range records {
		record := records[i]

		if record.CostPrice <= 0 {
			reason := fmt.Sprintf("Invalid price: %v", record.CostPrice)
			result.addFailure(record.ExternalID, record.Title, reason)
			p.metrics.IncRecord(metrics.OutcomeFailed)
			p.logger.Warn("Rejected record with invalid price",
				"external_id", record.ExternalID,
				"cost_price", record.CostPrice)
			continue
		}

		product := p.buildProduct(record, userID)
		if err := p.repo.Upsert(ctx, target, product); err != nil {
			result.addFailure(record.ExternalID, record.Title, err.Error())
			p.metrics.IncRecord(metrics.OutcomeFailed)
			p.logger.Error("Failed to save record",
				"external_id", record.ExternalID,
				"error", err)
			continue
		}

		result.addSaved()
		p.metrics.IncRecord(metrics.OutcomeSaved)
	}

	p.logger.Info("Ingestion batch finished",
		"user_id", userID,
		"table", target.TableName(),
		"total", result.Total,
		"saved", result.Saved,
		"failed", result.Failed)

	return result, nil
}

// buildProduct maps a scraped record to a product row with derived pricing.
// New rows start life as drafts with no error message; on upsert conflicts
// the store overwrites the existing row with these values.
func (p *Pipeline) buildProduct(record domain.ScrapedRecord, userID string) *domain.Product {
	category := record.CategoryPath
	if category == "" {
		category = domain.DefaultCategory
	}

	return &domain.Product{
		UserID:       userID,
		ExternalID:   record.ExternalID,
		SourceURL:    record.SourceURL,
		Title:        record.Title,
		Description:  record.Description,
		Images:       domain.StringList(record.Images),
		Variants:     domain.VariantList(record.Variants),
		SourcingType: domain.SourcingTypeScraped,
		CostPrice:    record.CostPrice,
		MarginRate:   p.marginRate,
		SalePrice:    pricing.ComputeSalePrice(record.CostPrice, p.marginRate),
		Status:       domain.ProductStatusDraft,
		ErrorMessage: nil,
		Category:     category,
		ReviewCount:  record.ReviewCount,
		Rating:       record.Rating,
		Brand:        record.Brand,
		Weight:       record.Weight,
	}
}
