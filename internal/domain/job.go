package domain

import (
	"time"
)

// Scraping job statuses.
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// ScrapingJob represents a harvest job row. Jobs are written by the scraper
// workers; this service only reads them for reporting.
type ScrapingJob struct {
	ID           string     `db:"id"            json:"id"`
	UserID       string     `db:"user_id"       json:"user_id"`
	SearchInput  string     `db:"search_input"  json:"search_input"`
	Status       string     `db:"status"        json:"status"`
	TargetCount  int        `db:"target_count"  json:"target_count"`
	CurrentCount int        `db:"current_count" json:"current_count"`
	SuccessCount *int       `db:"success_count" json:"success_count,omitempty"`
	FailedCount  *int       `db:"failed_count"  json:"failed_count,omitempty"`
	ErrorMessage *string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time  `db:"created_at"    json:"created_at"`
	StartedAt    *time.Time `db:"started_at"    json:"started_at,omitempty"`
	CompletedAt  *time.Time `db:"completed_at"  json:"completed_at,omitempty"`
}

// JobSummary is the reduced job shape returned in the stats snapshot.
type JobSummary struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	SuccessCount int       `json:"successCount"`
	FailedCount  int       `json:"failedCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary reduces a job row to its snapshot shape. Missing numeric counts
// default to zero.
func (j *ScrapingJob) Summary() JobSummary {
	s := JobSummary{
		ID:        j.ID,
		Status:    j.Status,
		CreatedAt: j.CreatedAt,
	}
	if j.SuccessCount != nil {
		s.SuccessCount = *j.SuccessCount
	}
	if j.FailedCount != nil {
		s.FailedCount = *j.FailedCount
	}
	return s
}
