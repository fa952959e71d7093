package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
)

// CatalogService handles book and category business logic
type CatalogService struct {
	bookRepo     BookRepositoryInterface
	categoryRepo CategoryRepositoryInterface
	imageService ImageServiceInterface
}

// NewCatalogService creates a new catalog service
func NewCatalogService(bookRepo BookRepositoryInterface, categoryRepo CategoryRepositoryInterface, imageService ImageServiceInterface) *CatalogService {
	return &CatalogService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		imageService: imageService,
	}
}

// BookRepositoryInterface defines the interface for book repository operations
type BookRepositoryInterface interface {
	Create(req *models.BookCreateRequest) (*models.Book, error)
	GetByID(id int) (*models.Book, error)
	GetBySlug(slug string) (*models.Book, error)
	Search(filters repositories.BookSearchFilters) ([]*models.Book, error)
	Count(filters repositories.BookSearchFilters) (int, error)
	GetFeatured(limit int) ([]*models.Book, error)
	Update(id int, req *models.BookUpdateRequest) (*models.Book, error)
	UpdateImage(id int, imageURL, imageKey string) error
	Delete(id int) error
}

// CategoryRepositoryInterface defines the interface for category repository operations
type CategoryRepositoryInterface interface {
	Create(req *models.CategoryCreateRequest) (*models.Category, error)
	GetByID(id int) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]*models.Category, error)
	Update(id int, req *models.CategoryUpdateRequest) (*models.Category, error)
	Delete(id int) error
}

// SearchBooks retrieves books matching the filters along with the total
// match count for pagination
func (s *CatalogService) SearchBooks(filters repositories.BookSearchFilters) ([]*models.Book, int, error) {
	books, err := s.bookRepo.Search(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search books: %w", err)
	}

	total, err := s.bookRepo.Count(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

// GetBookBySlug retrieves a book by its URL slug
func (s *CatalogService) GetBookBySlug(slug string) (*models.Book, error) {
	return s.bookRepo.GetBySlug(slug)
}

// GetBookByID retrieves a book by ID
func (s *CatalogService) GetBookByID(id int) (*models.Book, error) {
	return s.bookRepo.GetByID(id)
}

// GetFeaturedBooks retrieves up to limit featured available books
func (s *CatalogService) GetFeaturedBooks(limit int) ([]*models.Book, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.bookRepo.GetFeatured(limit)
}

// CreateBook creates a new book, generating a slug from the title when
// none is provided
func (s *CatalogService) CreateBook(req *models.BookCreateRequest) (*models.Book, error) {
	if req.Slug == "" {
		req.Slug = models.GenerateSlug(req.Title)
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, err
	}

	return s.bookRepo.Create(req)
}

// UpdateBook updates a book
func (s *CatalogService) UpdateBook(id int, req *models.BookUpdateRequest) (*models.Book, error) {
	if req.Slug == "" {
		req.Slug = models.GenerateSlug(req.Title)
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, err
	}

	return s.bookRepo.Update(id, req)
}

// DeleteBook deletes a book and its stored cover image
func (s *CatalogService) DeleteBook(id int) error {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.bookRepo.Delete(id); err != nil {
		return err
	}

	if book.ImageKey != "" && s.imageService != nil {
		// Cover cleanup is best effort, the book row is already gone
		if err := s.imageService.DeleteImage(context.Background(), book.ImageKey); err != nil {
			log.Printf("Failed to delete cover image for book %d: %v", id, err)
		}
	}

	return nil
}

// SetBookCover processes an uploaded cover image and attaches it to the
// book
func (s *CatalogService) SetBookCover(ctx context.Context, bookID int, reader io.Reader, filename string) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}

	result, err := s.imageService.UploadImage(ctx, reader, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cover image: %w", err)
	}

	// Replace any previous cover after the new one is stored
	oldKey := book.ImageKey

	keyPrefix := keyPrefixFromResult(result)
	if err := s.bookRepo.UpdateImage(bookID, s.imageService.GetImageURL(keyPrefix, "medium"), keyPrefix); err != nil {
		return nil, err
	}

	if oldKey != "" && oldKey != keyPrefix {
		if err := s.imageService.DeleteImage(ctx, oldKey); err != nil {
			log.Printf("Failed to delete old cover image %s: %v", oldKey, err)
		}
	}

	return s.bookRepo.GetByID(bookID)
}

// GetCategories retrieves all categories with their book counts
func (s *CatalogService) GetCategories() ([]*models.Category, error) {
	return s.categoryRepo.List()
}

// GetCategoryBySlug retrieves a category by its URL slug
func (s *CatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(slug)
}

// CreateCategory creates a new category, generating a slug from the
// name when none is provided
func (s *CatalogService) CreateCategory(req *models.CategoryCreateRequest) (*models.Category, error) {
	if req.Slug == "" {
		req.Slug = models.GenerateSlug(req.Name)
	}
	return s.categoryRepo.Create(req)
}

// UpdateCategory updates a category
func (s *CatalogService) UpdateCategory(id int, req *models.CategoryUpdateRequest) (*models.Category, error) {
	if req.Slug == "" {
		req.Slug = models.GenerateSlug(req.Name)
	}
	return s.categoryRepo.Update(id, req)
}

// DeleteCategory deletes a category
func (s *CatalogService) DeleteCategory(id int) error {
	return s.categoryRepo.Delete(id)
}

// keyPrefixFromResult derives the shared key prefix from an upload
// result ("covers/<uuid>/original.jpeg" -> "covers/<uuid>")
func keyPrefixFromResult(result *ImageUploadResult) string {
	key := result.Original.Key
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			return key[:i]
		}
	}
	return key
}
