package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goharvest/internal/database"
	"github.com/jonesrussell/goharvest/internal/domain"
)

// newMockDB returns an sqlx wrapper around a sqlmock connection.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestProductRepository_UpsertInsertsRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewProductRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO products \(`).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("00000000-0000-0000-0000-000000000001", now, now),
		)

	product := &domain.Product{
		UserID:     "user-1",
		ExternalID: "sku-1",
		Title:      "Widget",
		CostPrice:  10,
		MarginRate: 40,
		SalePrice:  14,
		Status:     domain.ProductStatusDraft,
		Category:   domain.DefaultCategory,
	}

	require.NoError(t, repo.Upsert(context.Background(), domain.TableTargetV1, product))
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", product.ID)
	assert.Equal(t, now, product.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpsertTargetsV2Table(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewProductRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO products_v2 \(`).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("00000000-0000-0000-0000-000000000002", now, now),
		)

	product := &domain.Product{ExternalID: "sku-2", CostPrice: 5, SalePrice: 7}
	require.NoError(t, repo.Upsert(context.Background(), domain.TableTargetV2, product))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpsertWrapsStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewProductRepository(db)

	mock.ExpectQuery(`INSERT INTO products \(`).
		WillReturnError(errors.New("deadlock detected"))

	err := repo.Upsert(context.Background(), domain.TableTargetV1, &domain.Product{ExternalID: "sku-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert product")
	assert.Contains(t, err.Error(), "deadlock detected")
}

func TestProductRepository_CountByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewProductRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByUser(context.Background(), domain.TableTargetV1, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestProductRepository_ListStatusesByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewProductRepository(db)

	mock.ExpectQuery(`SELECT status FROM products WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(
			sqlmock.NewRows([]string{"status"}).
				AddRow("draft").
				AddRow("uploaded"),
		)

	statuses, err := repo.ListStatusesByUser(context.Background(), domain.TableTargetV1, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"draft", "uploaded"}, statuses)
}

func TestProductRepository_ListCreatedSince(t *testing.T) {
	db, mock := newMockDB(t)
	repo := database.NewProductRepository(db)

	since := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	first := since.Add(3 * time.Hour)
	second := since.Add(30 * time.Hour)

	mock.ExpectQuery(`SELECT created_at FROM products`).
		WithArgs("user-1", since).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at"}).
				AddRow(first).
				AddRow(second),
		)

	created, err := repo.ListCreatedSince(context.Background(), domain.TableTargetV1, "user-1", since)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{first, second}, created)
}
