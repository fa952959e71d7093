package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"childrens-bookshop/internal/models"

	"github.com/lib/pq"
)

// BookRepository handles book data operations
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// BookSearchFilters represents filters for book search
type BookSearchFilters struct {
	Query         string // Search in title and author
	CategorySlug  string // Filter by category slug
	MinPrice      int    // Minimum price in cents (0 = no minimum)
	MaxPrice      int    // Maximum price in cents (0 = no maximum)
	MinRating     int    // Minimum star rating (0 = no minimum)
	OnSaleOnly    bool   // Only books with a "was" price
	FeaturedOnly  bool   // Only featured books
	AvailableOnly bool   // Only available books
	SortBy        string // "title", "price", "rating", "created_at"
	SortDesc      bool   // Sort in descending order
	Limit         int    // Number of results to return
	Offset        int    // Number of results to skip
}

const bookSelectColumns = `
	b.id, b.category_id, b.title, b.author, b.slug, b.description,
	b.image_url, b.image_key, b.price, b.was_price, b.rating,
	b.available, b.featured, b.created_at, b.updated_at,
	c.id, c.name, c.slug, c.description, c.created_at`

// Create creates a new book
func (r *BookRepository) Create(req *models.BookCreateRequest) (*models.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO books (category_id, title, author, slug, description, image_url, image_key,
			price, was_price, rating, available, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		RETURNING id, category_id, title, author, slug, description, image_url, image_key,
			price, was_price, rating, available, featured, created_at, updated_at`

	book := &models.Book{}
	err := r.db.QueryRow(
		query,
		req.CategoryID,
		req.Title,
		req.Author,
		req.Slug,
		req.Description,
		req.ImageURL,
		req.ImageKey,
		req.Price,
		req.WasPrice,
		req.Rating,
		req.Available,
		req.Featured,
		time.Now(),
	).Scan(
		&book.ID,
		&book.CategoryID,
		&book.Title,
		&book.Author,
		&book.Slug,
		&book.Description,
		&book.ImageURL,
		&book.ImageKey,
		&book.Price,
		&book.WasPrice,
		&book.Rating,
		&book.Available,
		&book.Featured,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return nil, models.ErrDuplicateEntry
			case "23503":
				return nil, models.ErrCategoryNotFound
			}
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

// GetByID retrieves a book by ID with its category
func (r *BookRepository) GetByID(id int) (*models.Book, error) {
	query := `
		SELECT ` + bookSelectColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1`

	return r.scanBookRow(r.db.QueryRow(query, id))
}

// GetBySlug retrieves a book by slug with its category
func (r *BookRepository) GetBySlug(slug string) (*models.Book, error) {
	query := `
		SELECT ` + bookSelectColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.slug = $1`

	return r.scanBookRow(r.db.QueryRow(query, slug))
}

// Search retrieves books matching the given filters
func (r *BookRepository) Search(filters BookSearchFilters) ([]*models.Book, error) {
	conditions, args := buildBookConditions(filters)

	query := `
		SELECT ` + bookSelectColumns + `
		FROM books b
		JOIN categories c ON c.id = b.category_id`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY " + bookOrderClause(filters)

	argIndex := len(args) + 1
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book, err := r.scanBookRow(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// Count returns the number of books matching the given filters,
// ignoring pagination
func (r *BookRepository) Count(filters BookSearchFilters) (int, error) {
	conditions, args := buildBookConditions(filters)

	query := `
		SELECT COUNT(*)
		FROM books b
		JOIN categories c ON c.id = b.category_id`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}

	return count, nil
}

// GetFeatured retrieves up to limit featured available books, newest first
func (r *BookRepository) GetFeatured(limit int) ([]*models.Book, error) {
	return r.Search(BookSearchFilters{
		FeaturedOnly:  true,
		AvailableOnly: true,
		SortBy:        "created_at",
		SortDesc:      true,
		Limit:         limit,
	})
}

// Update updates a book
func (r *BookRepository) Update(id int, req *models.BookUpdateRequest) (*models.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE books
		SET category_id = $2, title = $3, author = $4, slug = $5, description = $6,
			image_url = $7, image_key = $8, price = $9, was_price = $10, rating = $11,
			available = $12, featured = $13, updated_at = $14
		WHERE id = $1
		RETURNING id`

	var bookID int
	err := r.db.QueryRow(
		query,
		id,
		req.CategoryID,
		req.Title,
		req.Author,
		req.Slug,
		req.Description,
		req.ImageURL,
		req.ImageKey,
		req.Price,
		req.WasPrice,
		req.Rating,
		req.Available,
		req.Featured,
		time.Now(),
	).Scan(&bookID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBookNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, models.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return r.GetByID(bookID)
}

// UpdateImage updates only the cover image fields of a book
func (r *BookRepository) UpdateImage(id int, imageURL, imageKey string) error {
	result, err := r.db.Exec(
		"UPDATE books SET image_url = $2, image_key = $3, updated_at = $4 WHERE id = $1",
		id, imageURL, imageKey, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update book image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrBookNotFound
	}

	return nil
}

// Delete deletes a book
func (r *BookRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrBookNotFound
	}

	return nil
}

// buildBookConditions builds the WHERE conditions and args for the
// given filters
func buildBookConditions(filters BookSearchFilters) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(b.title ILIKE $%d OR b.author ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filters.Query+"%")
		argIndex++
	}

	if filters.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argIndex))
		args = append(args, filters.CategorySlug)
		argIndex++
	}

	if filters.MinPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("b.price >= $%d", argIndex))
		args = append(args, filters.MinPrice)
		argIndex++
	}

	if filters.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("b.price <= $%d", argIndex))
		args = append(args, filters.MaxPrice)
		argIndex++
	}

	if filters.MinRating > 0 {
		conditions = append(conditions, fmt.Sprintf("b.rating >= $%d", argIndex))
		args = append(args, filters.MinRating)
		argIndex++
	}

	if filters.OnSaleOnly {
		conditions = append(conditions, "b.was_price IS NOT NULL AND b.was_price > b.price")
	}

	if filters.FeaturedOnly {
		conditions = append(conditions, "b.featured = TRUE")
	}

	if filters.AvailableOnly {
		conditions = append(conditions, "b.available = TRUE")
	}

	return conditions, args
}

// bookOrderClause maps the sort filters to a safe ORDER BY clause
func bookOrderClause(filters BookSearchFilters) string {
	column := "b.title"
	switch filters.SortBy {
	case "price":
		column = "b.price"
	case "rating":
		column = "b.rating"
	case "created_at":
		column = "b.created_at"
	}

	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}

	return column + " " + direction
}

// scanBookRow scans a book with its joined category from a row
func (r *BookRepository) scanBookRow(row interface{ Scan(...interface{}) error }) (*models.Book, error) {
	book := &models.Book{}
	category := &models.Category{}

	err := row.Scan(
		&book.ID,
		&book.CategoryID,
		&book.Title,
		&book.Author,
		&book.Slug,
		&book.Description,
		&book.ImageURL,
		&book.ImageKey,
		&book.Price,
		&book.WasPrice,
		&book.Rating,
		&book.Available,
		&book.Featured,
		&book.CreatedAt,
		&book.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}

	book.Category = category
	return book, nil
}
