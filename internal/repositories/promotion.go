package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"childrens-bookshop/internal/models"
)

// PromotionRepository handles promotion data operations
type PromotionRepository struct {
	db *sql.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *sql.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Create creates a new promotion
func (r *PromotionRepository) Create(req *models.PromotionCreateRequest) (*models.Promotion, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO promotions (kind, name, discount_percent, ends_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, kind, name, discount_percent, ends_at, created_at`

	promotion := &models.Promotion{}
	err := r.db.QueryRow(query, req.Kind, req.Name, req.DiscountPercent, req.EndsAt).Scan(
		&promotion.ID,
		&promotion.Kind,
		&promotion.Name,
		&promotion.DiscountPercent,
		&promotion.EndsAt,
		&promotion.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	return promotion, nil
}

// GetByID retrieves a promotion by ID
func (r *PromotionRepository) GetByID(id int) (*models.Promotion, error) {
	query := `
		SELECT id, kind, name, discount_percent, ends_at, created_at
		FROM promotions
		WHERE id = $1`

	promotion := &models.Promotion{}
	err := r.db.QueryRow(query, id).Scan(
		&promotion.ID,
		&promotion.Kind,
		&promotion.Name,
		&promotion.DiscountPercent,
		&promotion.EndsAt,
		&promotion.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	return promotion, nil
}

// GetActiveByKind retrieves the active promotion of the given kind with
// the nearest deadline. Promotions whose deadline has passed never match.
func (r *PromotionRepository) GetActiveByKind(kind models.PromotionKind, now time.Time) (*models.Promotion, error) {
	query := `
		SELECT id, kind, name, discount_percent, ends_at, created_at
		FROM promotions
		WHERE kind = $1 AND ends_at > $2
		ORDER BY ends_at ASC
		LIMIT 1`

	promotion := &models.Promotion{}
	err := r.db.QueryRow(query, kind, now).Scan(
		&promotion.ID,
		&promotion.Kind,
		&promotion.Name,
		&promotion.DiscountPercent,
		&promotion.EndsAt,
		&promotion.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get active promotion: %w", err)
	}

	return promotion, nil
}

// List retrieves all promotions, newest deadline first
func (r *PromotionRepository) List() ([]*models.Promotion, error) {
	query := `
		SELECT id, kind, name, discount_percent, ends_at, created_at
		FROM promotions
		ORDER BY ends_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*models.Promotion
	for rows.Next() {
		promotion := &models.Promotion{}
		err := rows.Scan(
			&promotion.ID,
			&promotion.Kind,
			&promotion.Name,
			&promotion.DiscountPercent,
			&promotion.EndsAt,
			&promotion.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promotions = append(promotions, promotion)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promotions, nil
}

// Delete deletes a promotion
func (r *PromotionRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM promotions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrPromotionNotFound
	}

	return nil
}
