package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Book represents a book in the catalog. Prices are stored in cents;
// WasPrice is the struck-through "was" price shown during promotions.
type Book struct {
	ID          int       `json:"id" db:"id"`
	CategoryID  int       `json:"category_id" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	ImageKey    string    `json:"image_key" db:"image_key"`
	Price       int       `json:"price" db:"price"` // in cents
	WasPrice    *int      `json:"was_price,omitempty" db:"was_price"`
	Rating      int       `json:"rating" db:"rating"` // 1-5
	Available   bool      `json:"available" db:"available"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Related data
	Category *Category `json:"category,omitempty"`
}

// BookCreateRequest represents the data needed to create a new book
type BookCreateRequest struct {
	CategoryID  int    `json:"category_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ImageKey    string `json:"image_key"`
	Price       int    `json:"price"`
	WasPrice    *int   `json:"was_price,omitempty"`
	Rating      int    `json:"rating"`
	Available   bool   `json:"available"`
	Featured    bool   `json:"featured"`
}

// BookUpdateRequest represents the data that can be updated for a book
type BookUpdateRequest struct {
	CategoryID  int    `json:"category_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ImageKey    string `json:"image_key"`
	Price       int    `json:"price"`
	WasPrice    *int   `json:"was_price,omitempty"`
	Rating      int    `json:"rating"`
	Available   bool   `json:"available"`
	Featured    bool   `json:"featured"`
}

// Validate validates the book data
func (b *Book) Validate() error {
	return validateBookFields(b.Title, b.Author, b.Slug, b.Description, b.Price, b.WasPrice, b.Rating)
}

// Validate validates book creation data
func (req *BookCreateRequest) Validate() error {
	return validateBookFields(req.Title, req.Author, req.Slug, req.Description, req.Price, req.WasPrice, req.Rating)
}

// Validate validates book update data
func (req *BookUpdateRequest) Validate() error {
	return validateBookFields(req.Title, req.Author, req.Slug, req.Description, req.Price, req.WasPrice, req.Rating)
}

func validateBookFields(title, author, slug, description string, price int, wasPrice *int, rating int) error {
	if err := validateBookTitle(title); err != nil {
		return err
	}

	if err := validateBookAuthor(author); err != nil {
		return err
	}

	if err := ValidateSlug(slug); err != nil {
		return err
	}

	if len(description) > 10000 {
		return errors.New("description must be less than 10000 characters")
	}

	if err := validateBookPrice(price, wasPrice); err != nil {
		return err
	}

	return validateBookRating(rating)
}

// validateBookTitle validates a book title
func validateBookTitle(title string) error {
	if title == "" {
		return errors.New("title is required")
	}

	if len(title) > 200 {
		return errors.New("title must be less than 200 characters")
	}

	if strings.TrimSpace(title) == "" {
		return errors.New("title cannot be only whitespace")
	}

	return nil
}

// validateBookAuthor validates a book author
func validateBookAuthor(author string) error {
	if author == "" {
		return errors.New("author is required")
	}

	if len(author) > 200 {
		return errors.New("author must be less than 200 characters")
	}

	return nil
}

// validateBookPrice validates a price and optional "was" price, both in cents
func validateBookPrice(price int, wasPrice *int) error {
	if price < 0 {
		return errors.New("price cannot be negative")
	}

	// Maximum book price of $1,000 (100,000 cents)
	if price > 100000 {
		return errors.New("price cannot exceed $1,000")
	}

	if wasPrice != nil && *wasPrice <= price {
		return errors.New("was price must be greater than the current price")
	}

	return nil
}

// validateBookRating validates a star rating
func validateBookRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}

	return nil
}

// IsOnSale returns true if the book carries a struck-through "was" price
func (b *Book) IsOnSale() bool {
	return b.WasPrice != nil && *b.WasPrice > b.Price
}

// DiscountPercent returns the whole-number discount derived from the
// "was" price, or 0 when the book is not on sale.
func (b *Book) DiscountPercent() int {
	if !b.IsOnSale() {
		return 0
	}
	return (*b.WasPrice - b.Price) * 100 / *b.WasPrice
}

// PriceInCurrency returns the price in the main currency unit as a float
func (b *Book) PriceInCurrency() float64 {
	return float64(b.Price) / 100.0
}

// URL returns the storefront path for the book's detail page
func (b *Book) URL() string {
	return fmt.Sprintf("/books/%s", b.Slug)
}

// HasImage returns true if the book has a cover image
func (b *Book) HasImage() bool {
	return b.ImageURL != ""
}
