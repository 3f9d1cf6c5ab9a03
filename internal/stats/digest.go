package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/goharvest/internal/domain"
)

// DigestSummary aggregates all users' jobs created within one UTC calendar
// day.
type DigestSummary struct {
	Date         string
	JobsTotal    int
	Running      int
	Completed    int
	Failed       int
	SuccessCount int
	FailedCount  int
}

// ComputeDailyDigest summarizes today's jobs across all users. Unlike the
// snapshot, the digest is not scoped to a user.
func (a *Aggregator) ComputeDailyDigest(ctx context.Context) (*DigestSummary, error) {
	now := a.clock.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	jobs, err := a.jobs.ListCreatedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's jobs: %w", err)
	}

	summary := &DigestSummary{
		Date:      dayStart.Format(dateLayout),
		JobsTotal: len(jobs),
	}

	for _, job := range jobs {
		switch job.Status {
		case domain.JobStatusRunning:
			summary.Running++
		case domain.JobStatusCompleted:
			summary.Completed++
		case domain.JobStatusFailed:
			summary.Failed++
		}
		if job.SuccessCount != nil {
			summary.SuccessCount += *job.SuccessCount
		}
		if job.FailedCount != nil {
			summary.FailedCount += *job.FailedCount
		}
	}

	return summary, nil
}

// Text renders the digest through the fixed notification template.
func (d *DigestSummary) Text() string {
	return fmt.Sprintf(
		"GoHarvest daily digest (%s UTC)\n"+
			"Jobs created today: %d (running %d / completed %d / failed %d)\n"+
			"Records saved: %d\n"+
			"Records failed: %d",
		d.Date, d.JobsTotal, d.Running, d.Completed, d.Failed,
		d.SuccessCount, d.FailedCount,
	)
}
