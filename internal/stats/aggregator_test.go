package stats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/stats"
)

// fixedClock pins "today" for deterministic windows.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// fakeProductRepo serves canned product-side query results.
type fakeProductRepo struct {
	count      int
	countErr   error
	statuses   []string
	created    []time.Time
	createdErr error
}

func (f *fakeProductRepo) Upsert(ctx context.Context, target domain.TableTarget, product *domain.Product) error {
	return nil
}

func (f *fakeProductRepo) CountByUser(ctx context.Context, target domain.TableTarget, userID string) (int, error) {
	return f.count, f.countErr
}

func (f *fakeProductRepo) ListStatusesByUser(ctx context.Context, target domain.TableTarget, userID string) ([]string, error) {
	return f.statuses, nil
}

func (f *fakeProductRepo) ListCreatedSince(ctx context.Context, target domain.TableTarget, userID string, since time.Time) ([]time.Time, error) {
	if f.createdErr != nil {
		return nil, f.createdErr
	}
	var out []time.Time
	for _, ts := range f.created {
		if !ts.Before(since) {
			out = append(out, ts)
		}
	}
	return out, nil
}

// fakeJobRepo serves canned job-side query results.
type fakeJobRepo struct {
	count    int
	recent   []*domain.ScrapingJob
	todays   []*domain.ScrapingJob
	listErr  error
	todayErr error
}

func (f *fakeJobRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return f.count, nil
}

func (f *fakeJobRepo) ListRecentByUser(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.ScrapingJob, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeJobRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.ScrapingJob, error) {
	if f.todayErr != nil {
		return nil, f.todayErr
	}
	return f.todays, nil
}

func newAggregator(products *fakeProductRepo, jobs *fakeJobRepo, now time.Time) *stats.Aggregator {
	a := stats.NewAggregator(products, jobs, logger.NewNoOp())
	a.SetClock(&fixedClock{now: now})
	return a
}

var testNow = time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)

func TestComputeSnapshot_EmptyDataStillFillsThirtyDays(t *testing.T) {
	a := newAggregator(&fakeProductRepo{}, &fakeJobRepo{}, testNow)

	snapshot, err := a.ComputeSnapshot(context.Background(), "user-1", domain.TableTargetV1)
	require.NoError(t, err)

	require.Len(t, snapshot.DailyCollection, 30)
	for _, bucket := range snapshot.DailyCollection {
		assert.Zero(t, bucket.Count)
	}
	assert.Equal(t, "2026-08-02", snapshot.DailyCollection[0].Date)
	assert.Equal(t, "2026-08-31", snapshot.DailyCollection[29].Date)
}

func TestComputeSnapshot_DatesContiguousAscending(t *testing.T) {
	a := newAggregator(&fakeProductRepo{}, &fakeJobRepo{}, testNow)

	snapshot, err := a.ComputeSnapshot(context.Background(), "user-1", domain.TableTargetV1)
	require.NoError(t, err)

	prev, err := time.Parse("2006-01-02", snapshot.DailyCollection[0].Date)
	require.NoError(t, err)
	for _, bucket := range snapshot.DailyCollection[1:] {
		cur, parseErr := time.Parse("2006-01-02", bucket.Date)
		require.NoError(t, parseErr)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur, "dates must advance by exactly one day")
		prev = cur
	}
}

func TestComputeSnapshot_GroupsSparseRowsByUTCDate(t *testing.T) {
	products := &fakeProductRepo{
		created: []time.Time{
			time.Date(2026, 8, 31, 0, 10, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 23, 50, 0, 0, time.UTC),
			time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC),
			// Outside the window, must be excluded.
			time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	a := newAggregator(products, &fakeJobRepo{}, testNow)

	snapshot, err := a.ComputeSnapshot(context.Background(), "user-1", domain.TableTargetV1)
	require.NoError(t, err)

	byDate := make(map[string]int)
	for _, bucket := range snapshot.DailyCollection {
		byDate[bucket.Date] = bucket.Count
	}
	assert.Equal(t, 2, byDate["2026-08-31"])
	assert.Equal(t, 1, byDate["2026-08-15"])
	assert.Zero(t, byDate["2026-08-14"])
	require.Len(t, snapshot.DailyCollection, 30)
}

func TestComputeSnapshot_StatusBreakdownDropsUnknown(t *testing.T) {
	products := &fakeProductRepo{
		count:    5,
		statuses: []string{"draft", "uploaded", "draft", "error", "archived"},
	}
	a := newAggregator(products, &fakeJobRepo{}, testNow)

	snapshot, err := a.ComputeSnapshot(context.Background(), "user-1", domain.TableTargetV1)
	require.NoError(t, err)

	assert.Equal(t, 5, snapshot.Products.Total)
	assert.Equal(t, 2, snapshot.Products.ByStatus.Draft)
	assert.Equal(t, 1, snapshot.Products.ByStatus.Uploaded)
	assert.Equal(t, 1, snapshot.Products.ByStatus.Error)

	tally := snapshot.Products.ByStatus.Draft +
		snapshot.Products.ByStatus.Uploaded +
		snapshot.Products.ByStatus.Error
	assert.Less(t, tally, snapshot.Products.Total,
		"unrecognized statuses are dropped from the breakdown")
}

func TestComputeSnapshot_RecentJobsBoundedAndSummarized(t *testing.T) {
	success := 7
	jobs := &fakeJobRepo{
		count: 42,
		recent: []*domain.ScrapingJob{
			{ID: "j1", Status: domain.JobStatusCompleted, SuccessCount: &success, CreatedAt: testNow.Add(-time.Hour)},
			{ID: "j2", Status: domain.JobStatusFailed, CreatedAt: testNow.Add(-2 * time.Hour)},
		},
	}
	a := newAggregator(&fakeProductRepo{}, jobs, testNow)

	snapshot, err := a.ComputeSnapshot(context.Background(), "user-1", domain.TableTargetV1)
	require.NoError(t, err)

	assert.Equal(t, 42, snapshot.Jobs.Total)
	require.Len(t, snapshot.Jobs.Recent, 2)
	assert.Equal(t, "j1", snapshot.Jobs.Recent[0].ID)
	assert.Equal(t, 7, snapshot.Jobs.Recent[0].SuccessCount)
	assert.Zero(t, snapshot.Jobs.Recent[1].SuccessCount, "missing counts default to zero")
}

func TestComputeSnapshot_PropagatesStoreError(t *testing.T) {
	products := &fakeProductRepo{countErr: errors.New("connection refused")}
	a := newAggregator(products, &fakeJobRepo{}, testNow)

	_, err := a.ComputeSnapshot(context.Background(), "user-1", domain.TableTargetV1)
	require.Error(t, err)
}

func intPtr(v int) *int { return &v }

func TestComputeDailyDigest_SumsAndTallies(t *testing.T) {
	jobs := &fakeJobRepo{
		todays: []*domain.ScrapingJob{
			{Status: domain.JobStatusRunning, SuccessCount: intPtr(5), FailedCount: intPtr(1)},
			{Status: domain.JobStatusCompleted, SuccessCount: intPtr(10), FailedCount: intPtr(0)},
			{Status: domain.JobStatusCompleted, SuccessCount: intPtr(8), FailedCount: intPtr(2)},
		},
	}
	a := newAggregator(&fakeProductRepo{}, jobs, testNow)

	digest, err := a.ComputeDailyDigest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", digest.Date)
	assert.Equal(t, 3, digest.JobsTotal)
	assert.Equal(t, 23, digest.SuccessCount)
	assert.Equal(t, 3, digest.FailedCount)
	assert.Equal(t, 1, digest.Running)
	assert.Equal(t, 2, digest.Completed)
	assert.Zero(t, digest.Failed)
}

func TestComputeDailyDigest_MissingCountsAreZero(t *testing.T) {
	jobs := &fakeJobRepo{
		todays: []*domain.ScrapingJob{
			{Status: domain.JobStatusPending},
		},
	}
	a := newAggregator(&fakeProductRepo{}, jobs, testNow)

	digest, err := a.ComputeDailyDigest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, digest.JobsTotal)
	assert.Zero(t, digest.SuccessCount)
	assert.Zero(t, digest.Running, "pending jobs are not tallied into the three buckets")
}

func TestDigestSummary_Text(t *testing.T) {
	digest := &stats.DigestSummary{
		Date:         "2026-08-31",
		JobsTotal:    3,
		Running:      1,
		Completed:    2,
		SuccessCount: 23,
		FailedCount:  3,
	}

	text := digest.Text()
	assert.Contains(t, text, "2026-08-31")
	assert.Contains(t, text, "Jobs created today: 3")
	assert.Contains(t, text, "running 1 / completed 2 / failed 0")
	assert.Contains(t, text, "Records saved: 23")
	assert.Contains(t, text, "Records failed: 3")
}
