package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"childrens-bookshop/internal/models"
)

// CartRepository handles cart data operations. Carts are keyed by the
// visitor token stored in the session cookie.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetByToken retrieves a cart with its lines by token
func (r *CartRepository) GetByToken(token string) (*models.Cart, error) {
	cart := &models.Cart{Token: token}

	err := r.db.QueryRow("SELECT updated_at FROM carts WHERE token = $1", token).Scan(&cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	query := `
		SELECT book_id, title, unit_price, image_url, quantity
		FROM cart_items
		WHERE cart_token = $1
		ORDER BY book_id ASC`

	rows, err := r.db.Query(query, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		line := models.CartLine{}
		err := rows.Scan(
			&line.BookID,
			&line.Title,
			&line.UnitPrice,
			&line.ImageURL,
			&line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		line.Subtotal = line.UnitPrice * line.Quantity
		cart.Lines = append(cart.Lines, line)
		cart.Total += line.Subtotal
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return cart, nil
}

// GetOrCreate retrieves the cart for the given token, creating an empty
// one if it does not exist yet
func (r *CartRepository) GetOrCreate(token string) (*models.Cart, error) {
	cart, err := r.GetByToken(token)
	if err == nil {
		return cart, nil
	}
	if err != models.ErrCartNotFound {
		return nil, err
	}

	_, err = r.db.Exec(
		"INSERT INTO carts (token, updated_at) VALUES ($1, $2) ON CONFLICT (token) DO NOTHING",
		token, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return &models.Cart{Token: token, UpdatedAt: time.Now()}, nil
}

// Save persists the full cart state in a single transaction, replacing
// any previously stored lines
func (r *CartRepository) Save(cart *models.Cart) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO carts (token, updated_at) VALUES ($1, $2)
		ON CONFLICT (token) DO UPDATE SET updated_at = $2`,
		cart.Token, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM cart_items WHERE cart_token = $1", cart.Token); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	for _, line := range cart.Lines {
		_, err := tx.Exec(`
			INSERT INTO cart_items (cart_token, book_id, title, unit_price, image_url, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			cart.Token, line.BookID, line.Title, line.UnitPrice, line.ImageURL, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart: %w", err)
	}

	cart.UpdatedAt = now
	return nil
}

// Delete removes a cart and its lines
func (r *CartRepository) Delete(token string) error {
	_, err := r.db.Exec("DELETE FROM carts WHERE token = $1", token)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
