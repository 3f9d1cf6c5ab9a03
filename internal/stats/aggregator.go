// Package stats produces time-bucketed operational statistics from persisted
// product and job rows.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/goharvest/internal/database"
	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
)

const (
	// dailyWindowDays is the length of the gap-filled daily series,
	// inclusive of today.
	dailyWindowDays = 30

	// recentJobsWindow bounds the recent-jobs lookback.
	recentJobsWindow = 7 * 24 * time.Hour

	// recentJobsLimit bounds the recent-jobs list length.
	recentJobsLimit = 10

	// dateLayout is the calendar-date format used in the daily series.
	dateLayout = "2006-01-02"
)

// TimeProvider is an interface for getting the current time.
type TimeProvider interface {
	Now() time.Time
}

// realTimeProvider is the default implementation of TimeProvider.
type realTimeProvider struct{}

func (r *realTimeProvider) Now() time.Time {
	return time.Now()
}

// StatusBreakdown tallies products into the three known lifecycle buckets.
// Rows with unrecognized status values are excluded from all three tallies.
type StatusBreakdown struct {
	Draft    int `json:"draft"`
	Uploaded int `json:"uploaded"`
	Error    int `json:"error"`
}

// ProductStats holds product totals for the snapshot.
type ProductStats struct {
	Total    int             `json:"total"`
	ByStatus StatusBreakdown `json:"byStatus"`
}

// DailyBucket is one calendar day of the gap-filled series.
type DailyBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// JobStats holds job totals for the snapshot.
type JobStats struct {
	Total  int                 `json:"total"`
	Recent []domain.JobSummary `json:"recent"`
}

// Snapshot is the full statistics payload served to the dashboard.
type Snapshot struct {
	Products        ProductStats  `json:"products"`
	DailyCollection []DailyBucket `json:"dailyCollection"`
	Jobs            JobStats      `json:"jobs"`
}

// Aggregator computes statistics snapshots and daily digests from the
// product and job repositories.
type Aggregator struct {
	products database.ProductRepositoryInterface
	jobs     database.JobRepositoryInterface
	logger   logger.Interface
	clock    TimeProvider
}

// NewAggregator creates a new stats aggregator.
func NewAggregator(
	products database.ProductRepositoryInterface,
	jobs database.JobRepositoryInterface,
	log logger.Interface,
) *Aggregator {
	return &Aggregator{
		products: products,
		jobs:     jobs,
		logger:   log.WithComponent("stats"),
		clock:    &realTimeProvider{},
	}
}

// SetClock overrides the time source. Used by tests to pin "today".
func (a *Aggregator) SetClock(clock TimeProvider) {
	a.clock = clock
}

// ComputeSnapshot builds the statistics snapshot for one user's rows in the
// given product table.
func (a *Aggregator) ComputeSnapshot(ctx context.Context, userID string, target domain.TableTarget) (*Snapshot, error) {
	now := a.clock.Now().UTC()

	total, err := a.products.CountByUser(ctx, target, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	statuses, err := a.products.ListStatusesByUser(ctx, target, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read product statuses: %w", err)
	}

	daily, err := a.computeDailySeries(ctx, userID, target, now)
	if err != nil {
		return nil, err
	}

	jobTotal, err := a.jobs.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	recent, err := a.jobs.ListRecentByUser(ctx, userID, now.Add(-recentJobsWindow), recentJobsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}

	summaries := make([]domain.JobSummary, 0, len(recent))
	for _, job := range recent {
		summaries = append(summaries, job.Summary())
	}

	return &Snapshot{
		Products: ProductStats{
			Total:    total,
			ByStatus: tallyStatuses(statuses),
		},
		DailyCollection: daily,
		Jobs: JobStats{
			Total:  jobTotal,
			Recent: summaries,
		},
	}, nil
}

// tallyStatuses counts statuses into the three known buckets. Anything else
// is dropped on purpose; see the package tests for the pinned behavior.
func tallyStatuses(statuses []string) StatusBreakdown {
	var breakdown StatusBreakdown
	for _, status := range statuses {
		switch status {
		case domain.ProductStatusDraft:
			breakdown.Draft++
		case domain.ProductStatusUploaded:
			breakdown.Uploaded++
		case domain.ProductStatusError:
			breakdown.Error++
		}
	}
	return breakdown
}

// computeDailySeries builds the trailing 30-day series ending today (UTC),
// with zero-count buckets for days without rows. The result always has
// exactly dailyWindowDays entries in ascending date order.
func (a *Aggregator) computeDailySeries(
	ctx context.Context,
	userID string,
	target domain.TableTarget,
	now time.Time,
) ([]DailyBucket, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := today.AddDate(0, 0, -(dailyWindowDays - 1))

	created, err := a.products.ListCreatedSince(ctx, target, userID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to read product creation times: %w", err)
	}

	counts := make(map[string]int, len(created))
	for _, ts := range created {
		counts[ts.UTC().Format(dateLayout)]++
	}

	series := make([]DailyBucket, 0, dailyWindowDays)
	for day := 0; day < dailyWindowDays; day++ {
		date := windowStart.AddDate(0, 0, day).Format(dateLayout)
		series = append(series, DailyBucket{
			Date:  date,
			Count: counts[date],
		})
	}

	return series, nil
}
