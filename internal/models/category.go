package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Category represents a book category (picture books, early readers, ...)
type Category struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// BookCount is populated by listing queries, not stored
	BookCount int `json:"book_count,omitempty" db:"-"`
}

// CategoryCreateRequest represents the data needed to create a new category
type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CategoryUpdateRequest represents the data that can be updated for a category
type CategoryUpdateRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

var (
	// Slug validation regex: lowercase letters, numbers, and hyphens only
	slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Validate validates the category data
func (c *Category) Validate() error {
	if err := validateCategoryName(c.Name); err != nil {
		return err
	}

	if err := ValidateSlug(c.Slug); err != nil {
		return err
	}

	return validateCategoryDescription(c.Description)
}

// Validate validates category creation data
func (req *CategoryCreateRequest) Validate() error {
	if err := validateCategoryName(req.Name); err != nil {
		return err
	}

	if err := ValidateSlug(req.Slug); err != nil {
		return err
	}

	return validateCategoryDescription(req.Description)
}

// Validate validates category update data
func (req *CategoryUpdateRequest) Validate() error {
	if err := validateCategoryName(req.Name); err != nil {
		return err
	}

	if err := ValidateSlug(req.Slug); err != nil {
		return err
	}

	return validateCategoryDescription(req.Description)
}

// validateCategoryName validates a category name
func validateCategoryName(name string) error {
	if name == "" {
		return errors.New("category name is required")
	}

	if len(name) > 200 {
		return errors.New("category name must be less than 200 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("category name cannot be only whitespace")
	}

	return nil
}

// ValidateSlug validates a URL slug (categories and books share the same rules)
func ValidateSlug(slug string) error {
	if slug == "" {
		return errors.New("slug is required")
	}

	if len(slug) > 200 {
		return errors.New("slug must be less than 200 characters")
	}

	if !slugRegex.MatchString(slug) {
		return errors.New("slug can only contain lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return errors.New("slug cannot start or end with a hyphen")
	}

	if strings.Contains(slug, "--") {
		return errors.New("slug cannot contain consecutive hyphens")
	}

	return nil
}

// validateCategoryDescription validates a category description
func validateCategoryDescription(description string) error {
	// Description is optional, but if provided, it should not be too long
	if len(description) > 500 {
		return errors.New("category description must be less than 500 characters")
	}

	return nil
}

// GenerateSlug generates a URL-friendly slug from a name or title
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)

	// Replace spaces and special characters with hyphens
	reg := regexp.MustCompile(`[^a-z0-9]+`)
	slug = reg.ReplaceAllString(slug, "-")

	// Remove leading and trailing hyphens
	slug = strings.Trim(slug, "-")

	// Replace multiple consecutive hyphens with a single hyphen
	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	return slug
}

// HasDescription returns true if the category has a description
func (c *Category) HasDescription() bool {
	return strings.TrimSpace(c.Description) != ""
}

// URL returns the storefront path for the category's book listing
func (c *Category) URL() string {
	return "/books?category=" + c.Slug
}
