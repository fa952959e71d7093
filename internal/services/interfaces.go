package services

import (
	"context"
	"io"
	"time"

	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
)

// CatalogServiceInterface defines the interface for catalog services
type CatalogServiceInterface interface {
	SearchBooks(filters repositories.BookSearchFilters) ([]*models.Book, int, error)
	GetBookBySlug(slug string) (*models.Book, error)
	GetBookByID(id int) (*models.Book, error)
	GetFeaturedBooks(limit int) ([]*models.Book, error)
	CreateBook(req *models.BookCreateRequest) (*models.Book, error)
	UpdateBook(id int, req *models.BookUpdateRequest) (*models.Book, error)
	DeleteBook(id int) error
	GetCategories() ([]*models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	CreateCategory(req *models.CategoryCreateRequest) (*models.Category, error)
	UpdateCategory(id int, req *models.CategoryUpdateRequest) (*models.Category, error)
	DeleteCategory(id int) error
	SetBookCover(ctx context.Context, bookID int, reader io.Reader, filename string) (*models.Book, error)
}

// CartServiceInterface defines the interface for cart services
type CartServiceInterface interface {
	GetCart(token string) (*models.Cart, error)
	AddToCart(token string, bookID, quantity int) (*models.Cart, error)
	ChangeQuantity(token string, bookID, delta int) (*models.Cart, error)
	SetQuantity(token string, bookID, quantity int) (*models.Cart, error)
	RemoveFromCart(token string, bookID int) (*models.Cart, error)
	ClearCart(token string) error
}

// PromotionServiceInterface defines the interface for promotion services
type PromotionServiceInterface interface {
	GetActivePromotion(kind models.PromotionKind) (*models.Promotion, models.Countdown, error)
	ListPromotions() ([]*models.Promotion, error)
	CreatePromotion(req *models.PromotionCreateRequest) (*models.Promotion, error)
	DeletePromotion(id int) error
}

// OrderServiceInterface defines the interface for order services
type OrderServiceInterface interface {
	Checkout(req *models.OrderCreateRequest) (*models.Order, error)
	GetOrderByNumber(orderNumber string) (*models.Order, error)
	SearchOrders(filters repositories.OrderSearchFilters) ([]*models.Order, error)
	UpdateOrderStatus(id int, status models.OrderStatus) error
}

// ImageServiceInterface defines the interface for image processing and storage
type ImageServiceInterface interface {
	UploadImage(ctx context.Context, reader io.Reader, filename string) (*ImageUploadResult, error)
	DeleteImage(ctx context.Context, keyPrefix string) error
	ValidateImage(reader io.Reader, maxSize int64) error
	GetImageURL(keyPrefix, variant string) string
}

// StorageService defines the interface for file storage operations
type StorageService interface {
	// Upload uploads a file to storage and returns the public URL
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error)

	// Delete removes a file from storage
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a file
	GetURL(key string) string

	// GeneratePresignedURL generates a presigned URL for direct upload
	GeneratePresignedURL(ctx context.Context, key string, contentType string, expiration time.Duration) (string, error)

	// Exists checks if a file exists in storage
	Exists(ctx context.Context, key string) (bool, error)
}

// ImageMetadata contains metadata about uploaded images
type ImageMetadata struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ImageVariant represents different sizes of the same image
type ImageVariant struct {
	Name   string `json:"name"` // thumbnail, medium, large
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

// ImageUploadResult contains the result of an image upload operation
type ImageUploadResult struct {
	Original ImageMetadata  `json:"original"`
	Variants []ImageVariant `json:"variants"`
}
