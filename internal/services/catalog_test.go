package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
)

type mockCategoryRepository struct {
	categories map[int]*models.Category
	nextID     int
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[int]*models.Category),
		nextID:     1,
	}
}

func (m *mockCategoryRepository) Create(req *models.CategoryCreateRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	category := &models.Category{
		ID:          m.nextID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	m.categories[m.nextID] = category
	m.nextID++
	return category, nil
}

func (m *mockCategoryRepository) GetByID(id int) (*models.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, models.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	for _, category := range m.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *mockCategoryRepository) List() ([]*models.Category, error) {
	var result []*models.Category
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *mockCategoryRepository) Update(id int, req *models.CategoryUpdateRequest) (*models.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, models.ErrCategoryNotFound
	}
	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description
	return category, nil
}

func (m *mockCategoryRepository) Delete(id int) error {
	if _, exists := m.categories[id]; !exists {
		return models.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

type mockImageService struct {
	uploaded []string
	deleted  []string
}

func (m *mockImageService) UploadImage(ctx context.Context, reader io.Reader, filename string) (*ImageUploadResult, error) {
	key := "covers/" + filename
	m.uploaded = append(m.uploaded, key)
	return &ImageUploadResult{
		Original: ImageMetadata{Key: key + "/original.jpeg", URL: "https://cdn.example.com/" + key + "/original.jpeg"},
	}, nil
}

func (m *mockImageService) DeleteImage(ctx context.Context, keyPrefix string) error {
	m.deleted = append(m.deleted, keyPrefix)
	return nil
}

func (m *mockImageService) ValidateImage(reader io.Reader, maxSize int64) error {
	return nil
}

func (m *mockImageService) GetImageURL(keyPrefix, variant string) string {
	return "https://cdn.example.com/" + keyPrefix + "/" + variant + ".jpeg"
}

func setupCatalog(t *testing.T) (*CatalogService, *mockBookRepository, *mockCategoryRepository, *mockImageService) {
	t.Helper()

	bookRepo := newMockBookRepository()
	categoryRepo := newMockCategoryRepository()
	imageService := &mockImageService{}

	if _, err := categoryRepo.Create(&models.CategoryCreateRequest{
		Name: "Picture Books",
		Slug: "picture-books",
	}); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return NewCatalogService(bookRepo, categoryRepo, imageService), bookRepo, categoryRepo, imageService
}

func TestCatalogService_CreateBook(t *testing.T) {
	service, _, _, _ := setupCatalog(t)

	book, err := service.CreateBook(&models.BookCreateRequest{
		CategoryID: 1,
		Title:      "Where the Wild Things Are",
		Author:     "Maurice Sendak",
		Price:      1299,
		Rating:     5,
		Available:  true,
	})
	if err != nil {
		t.Fatalf("CreateBook() error = %v", err)
	}

	// The slug is generated from the title when not provided
	if book.Slug != "where-the-wild-things-are" {
		t.Errorf("book.Slug = %q", book.Slug)
	}
}

func TestCatalogService_CreateBook_UnknownCategory(t *testing.T) {
	service, _, _, _ := setupCatalog(t)

	_, err := service.CreateBook(&models.BookCreateRequest{
		CategoryID: 99,
		Title:      "Where the Wild Things Are",
		Author:     "Maurice Sendak",
		Price:      1299,
		Rating:     5,
	})
	if !errors.Is(err, models.ErrCategoryNotFound) {
		t.Errorf("CreateBook() error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCatalogService_SetBookCover(t *testing.T) {
	service, bookRepo, _, imageService := setupCatalog(t)
	book := bookRepo.addBook("The Very Hungry Caterpillar", 1200, true)

	updated, err := service.SetBookCover(context.Background(), book.ID, bytes.NewReader([]byte("image-bytes")), "caterpillar.jpg")
	if err != nil {
		t.Fatalf("SetBookCover() error = %v", err)
	}

	if updated.ImageKey == "" || updated.ImageURL == "" {
		t.Errorf("book cover not attached: key=%q url=%q", updated.ImageKey, updated.ImageURL)
	}
	if len(imageService.uploaded) != 1 {
		t.Errorf("uploads = %d, want 1", len(imageService.uploaded))
	}
}

func TestCatalogService_SetBookCover_ReplacesOldCover(t *testing.T) {
	service, bookRepo, _, imageService := setupCatalog(t)
	book := bookRepo.addBook("The Very Hungry Caterpillar", 1200, true)
	book.ImageKey = "covers/old-cover"

	if _, err := service.SetBookCover(context.Background(), book.ID, bytes.NewReader([]byte("image-bytes")), "new.jpg"); err != nil {
		t.Fatalf("SetBookCover() error = %v", err)
	}

	if len(imageService.deleted) != 1 || imageService.deleted[0] != "covers/old-cover" {
		t.Errorf("old cover not deleted: %v", imageService.deleted)
	}
}

func TestCatalogService_DeleteBook_RemovesCover(t *testing.T) {
	service, bookRepo, _, imageService := setupCatalog(t)
	book := bookRepo.addBook("The Very Hungry Caterpillar", 1200, true)
	book.ImageKey = "covers/caterpillar"

	if err := service.DeleteBook(book.ID); err != nil {
		t.Fatalf("DeleteBook() error = %v", err)
	}

	if len(imageService.deleted) != 1 {
		t.Errorf("cover not deleted with book: %v", imageService.deleted)
	}
	if _, err := bookRepo.GetByID(book.ID); !errors.Is(err, models.ErrBookNotFound) {
		t.Errorf("book still present after delete")
	}
}

func TestCatalogService_SearchBooks(t *testing.T) {
	service, bookRepo, _, _ := setupCatalog(t)
	bookRepo.addBook("The Very Hungry Caterpillar", 1200, true)
	bookRepo.addBook("Goodnight Moon", 750, true)

	books, total, err := service.SearchBooks(repositories.BookSearchFilters{})
	if err != nil {
		t.Fatalf("SearchBooks() error = %v", err)
	}
	if len(books) != 2 || total != 2 {
		t.Errorf("SearchBooks() = %d books, total %d, want 2 and 2", len(books), total)
	}
}
