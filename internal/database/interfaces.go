package database

import (
	"context"
	"time"

	"github.com/jonesrussell/goharvest/internal/domain"
)

// ProductRepositoryInterface defines product table operations consumed by the
// ingestion pipeline and the stats aggregator.
type ProductRepositoryInterface interface {
	// Upsert inserts the product or updates the existing row keyed by
	// external_id.
	Upsert(ctx context.Context, target domain.TableTarget, product *domain.Product) error

	// CountByUser returns the number of product rows owned by the user.
	CountByUser(ctx context.Context, target domain.TableTarget, userID string) (int, error)

	// ListStatusesByUser returns the status column of every product row owned
	// by the user.
	ListStatusesByUser(ctx context.Context, target domain.TableTarget, userID string) ([]string, error)

	// ListCreatedSince returns creation timestamps of the user's product rows
	// created at or after the cutoff, ascending.
	ListCreatedSince(ctx context.Context, target domain.TableTarget, userID string, since time.Time) ([]time.Time, error)
}

// JobRepositoryInterface defines scraping job table reads consumed by the
// stats aggregator. Job rows are written by the scraper workers, not by this
// service.
type JobRepositoryInterface interface {
	// CountByUser returns the number of job rows owned by the user.
	CountByUser(ctx context.Context, userID string) (int, error)

	// ListRecentByUser returns the user's jobs created at or after the cutoff,
	// newest first, bounded by limit.
	ListRecentByUser(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.ScrapingJob, error)

	// ListCreatedBetween returns all users' jobs created in [from, to),
	// ascending by creation time.
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.ScrapingJob, error)
}
