package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/goharvest/internal/domain"
)

// ProductRepository handles database operations for products.
type ProductRepository struct {
	db *sqlx.DB
}

// Ensure ProductRepository implements the interface.
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// NewProductRepository creates a new product repository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Upsert inserts a product row or updates the existing one keyed by
// external_id. On conflict every ingest-supplied field is overwritten
// (last write wins); updated_at is bumped while created_at is preserved.
func (r *ProductRepository) Upsert(ctx context.Context, target domain.TableTarget, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, user_id, external_id, source_url, title, description,
			images, variants, sourcing_type, cost_price, margin_rate,
			sale_price, status, error_message, category, review_count,
			rating, brand, weight
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (external_id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			source_url = EXCLUDED.source_url,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			images = EXCLUDED.images,
			variants = EXCLUDED.variants,
			sourcing_type = EXCLUDED.sourcing_type,
			cost_price = EXCLUDED.cost_price,
			margin_rate = EXCLUDED.margin_rate,
			sale_price = EXCLUDED.sale_price,
			status = EXCLUDED.status,
			error_message = EXCLUDED.error_message,
			category = EXCLUDED.category,
			review_count = EXCLUDED.review_count,
			rating = EXCLUDED.rating,
			brand = EXCLUDED.brand,
			weight = EXCLUDED.weight,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, target.TableName())

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.ID,
		product.UserID,
		product.ExternalID,
		product.SourceURL,
		product.Title,
		product.Description,
		product.Images,
		product.Variants,
		product.SourcingType,
		product.CostPrice,
		product.MarginRate,
		product.SalePrice,
		product.Status,
		product.ErrorMessage,
		product.Category,
		product.ReviewCount,
		product.Rating,
		product.Brand,
		product.Weight,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// CountByUser returns the number of product rows owned by the user.
func (r *ProductRepository) CountByUser(ctx context.Context, target domain.TableTarget, userID string) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, target.TableName())

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// ListStatusesByUser returns the status column of all the user's product rows.
func (r *ProductRepository) ListStatusesByUser(ctx context.Context, target domain.TableTarget, userID string) ([]string, error) {
	var statuses []string
	query := fmt.Sprintf(`SELECT status FROM %s WHERE user_id = $1`, target.TableName())

	if err := r.db.SelectContext(ctx, &statuses, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list product statuses: %w", err)
	}

	return statuses, nil
}

// ListCreatedSince returns creation timestamps of the user's product rows
// created at or after the cutoff, ascending.
func (r *ProductRepository) ListCreatedSince(ctx context.Context, target domain.TableTarget, userID string, since time.Time) ([]time.Time, error) {
	var created []time.Time
	query := fmt.Sprintf(`
		SELECT created_at FROM %s
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`, target.TableName())

	if err := r.db.SelectContext(ctx, &created, query, userID, since); err != nil {
		return nil, fmt.Errorf("failed to list product creation times: %w", err)
	}

	return created, nil
}
