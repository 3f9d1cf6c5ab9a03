package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goharvest/internal/domain"
)

// jobColumns is the column list shared by job queries.
const jobColumns = `id, user_id, search_input, status, target_count, current_count,
	success_count, failed_count, error_message, created_at, started_at, completed_at`

// JobRepository handles database reads for scraping jobs.
type JobRepository struct {
	db *sqlx.DB
}

// Ensure JobRepository implements the interface.
var _ JobRepositoryInterface = (*JobRepository)(nil)

// NewJobRepository creates a new job repository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// CountByUser returns the total number of job rows owned by the user.
func (r *JobRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM scraping_jobs WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}

// ListRecentByUser returns the user's jobs created at or after the cutoff,
// newest first, bounded by limit.
func (r *JobRepository) ListRecentByUser(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.ScrapingJob, error) {
	var jobs []*domain.ScrapingJob
	query := fmt.Sprintf(`
		SELECT %s FROM scraping_jobs
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`, jobColumns)

	if err := r.db.SelectContext(ctx, &jobs, query, userID, since, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}

	if jobs == nil {
		jobs = []*domain.ScrapingJob{}
	}

	return jobs, nil
}

// ListCreatedBetween returns all users' jobs created in [from, to), ascending
// by creation time. Used by the daily digest, which is not scoped to a user.
func (r *JobRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.ScrapingJob, error) {
	var jobs []*domain.ScrapingJob
	query := fmt.Sprintf(`
		SELECT %s FROM scraping_jobs
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC
	`, jobColumns)

	if err := r.db.SelectContext(ctx, &jobs, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list jobs for window: %w", err)
	}

	if jobs == nil {
		jobs = []*domain.ScrapingJob{}
	}

	return jobs, nil
}
