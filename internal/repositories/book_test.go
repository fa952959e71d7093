package repositories

import (
	"database/sql"
	"strings"
	"testing"

	"childrens-bookshop/internal/models"

	_ "github.com/lib/pq"
)

func setupBookTestDB(t *testing.T) *sql.DB {
	// This would typically use a test database
	// For now, we'll skip actual database tests and focus on the structure
	t.Skip("Database tests require test database setup")
	return nil
}

func TestBookRepository_Create(t *testing.T) {
	db := setupBookTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewBookRepository(db)

	tests := []struct {
		name    string
		req     *models.BookCreateRequest
		wantErr bool
	}{
		{
			name: "valid book",
			req: &models.BookCreateRequest{
				CategoryID: 1,
				Title:      "Goodnight Moon",
				Author:     "Margaret Wise Brown",
				Slug:       "goodnight-moon",
				Price:      899,
				Rating:     5,
				Available:  true,
			},
			wantErr: false,
		},
		{
			name: "negative price",
			req: &models.BookCreateRequest{
				CategoryID: 1,
				Title:      "Goodnight Moon",
				Author:     "Margaret Wise Brown",
				Slug:       "goodnight-moon",
				Price:      -100,
				Rating:     5,
			},
			wantErr: true,
		},
		{
			name: "invalid rating",
			req: &models.BookCreateRequest{
				CategoryID: 1,
				Title:      "Goodnight Moon",
				Author:     "Margaret Wise Brown",
				Slug:       "goodnight-moon",
				Price:      899,
				Rating:     0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := repo.Create(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && book.ID == 0 {
				t.Error("Create() returned book without ID")
			}
		})
	}
}

func TestBookRepository_Delete_RemovesCartLines(t *testing.T) {
	db := setupBookTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	repo := NewBookRepository(db)
	cartRepo := NewCartRepository(db)

	book, err := repo.Create(&models.BookCreateRequest{
		CategoryID: 1,
		Title:      "Goodnight Moon",
		Author:     "Margaret Wise Brown",
		Slug:       "goodnight-moon",
		Price:      899,
		Rating:     5,
		Available:  true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cart, err := cartRepo.GetOrCreate("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if err := cart.ChangeQuantity(book, 2); err != nil {
		t.Fatalf("ChangeQuantity() error = %v", err)
	}
	if err := cartRepo.Save(cart); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// The cart line must never block deletion; it drops with the book
	if err := repo.Delete(book.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	reloaded, err := cartRepo.GetByToken(cart.Token)
	if err != nil {
		t.Fatalf("GetByToken() error = %v", err)
	}
	if len(reloaded.Lines) != 0 {
		t.Errorf("cart still holds %d lines after book deletion", len(reloaded.Lines))
	}
}

func TestBuildBookConditions(t *testing.T) {
	tests := []struct {
		name           string
		filters        BookSearchFilters
		wantConditions int
		wantArgs       int
	}{
		{
			name:           "no filters",
			filters:        BookSearchFilters{},
			wantConditions: 0,
			wantArgs:       0,
		},
		{
			name: "query only",
			filters: BookSearchFilters{
				Query: "caterpillar",
			},
			wantConditions: 1,
			wantArgs:       1,
		},
		{
			name: "flag filters take no args",
			filters: BookSearchFilters{
				OnSaleOnly:    true,
				FeaturedOnly:  true,
				AvailableOnly: true,
			},
			wantConditions: 3,
			wantArgs:       0,
		},
		{
			name: "all filters",
			filters: BookSearchFilters{
				Query:         "moon",
				CategorySlug:  "picture-books",
				MinPrice:      500,
				MaxPrice:      2000,
				MinRating:     4,
				OnSaleOnly:    true,
				AvailableOnly: true,
			},
			wantConditions: 7,
			wantArgs:       5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conditions, args := buildBookConditions(tt.filters)
			if len(conditions) != tt.wantConditions {
				t.Errorf("buildBookConditions() conditions = %d, want %d", len(conditions), tt.wantConditions)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("buildBookConditions() args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestBookOrderClause(t *testing.T) {
	tests := []struct {
		name    string
		filters BookSearchFilters
		want    string
	}{
		{"default sorts by title", BookSearchFilters{}, "b.title ASC"},
		{"price descending", BookSearchFilters{SortBy: "price", SortDesc: true}, "b.price DESC"},
		{"rating", BookSearchFilters{SortBy: "rating"}, "b.rating ASC"},
		{"unknown column falls back to title", BookSearchFilters{SortBy: "id; DROP TABLE books"}, "b.title ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bookOrderClause(tt.filters)
			if got != tt.want {
				t.Errorf("bookOrderClause() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, ";") {
				t.Errorf("bookOrderClause() produced unsafe clause %q", got)
			}
		})
	}
}
