package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
	"childrens-bookshop/internal/services"
	"childrens-bookshop/web/templates/pages"

	"github.com/go-chi/chi/v5"
)

const booksPerPage = 12

// PublicHandler handles the public storefront pages
type PublicHandler struct {
	catalogService   services.CatalogServiceInterface
	promotionService services.PromotionServiceInterface
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(catalogService services.CatalogServiceInterface, promotionService services.PromotionServiceInterface) *PublicHandler {
	return &PublicHandler{
		catalogService:   catalogService,
		promotionService: promotionService,
	}
}

// HomePage renders the homepage with featured books and the active
// flash sale banner
func (h *PublicHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	featured, err := h.catalogService.GetFeaturedBooks(8)
	if err != nil {
		http.Error(w, "Failed to load featured books", http.StatusInternalServerError)
		return
	}

	// A missing promotion just means no banner
	promotion, countdown, err := h.promotionService.GetActivePromotion(models.FlashSale)
	if err != nil && !errors.Is(err, models.ErrPromotionNotFound) {
		http.Error(w, "Failed to load promotions", http.StatusInternalServerError)
		return
	}

	component := pages.HomePage(featured, promotion, countdown)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
}

// BooksPage renders the book listing with search and filtering
func (h *PublicHandler) BooksPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	categorySlug := r.URL.Query().Get("category")

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	filters := repositories.BookSearchFilters{
		Query:         query,
		CategorySlug:  categorySlug,
		OnSaleOnly:    r.URL.Query().Get("on_sale") == "true",
		AvailableOnly: true,
		SortBy:        r.URL.Query().Get("sort_by"),
		SortDesc:      r.URL.Query().Get("sort_order") == "desc",
		Limit:         booksPerPage,
		Offset:        (page - 1) * booksPerPage,
	}

	if minRatingStr := r.URL.Query().Get("min_rating"); minRatingStr != "" {
		if minRating, err := strconv.Atoi(minRatingStr); err == nil && minRating >= 1 && minRating <= 5 {
			filters.MinRating = minRating
		}
	}
	if minPriceStr := r.URL.Query().Get("min_price"); minPriceStr != "" {
		if minPrice, err := strconv.Atoi(minPriceStr); err == nil && minPrice > 0 {
			filters.MinPrice = minPrice
		}
	}
	if maxPriceStr := r.URL.Query().Get("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.Atoi(maxPriceStr); err == nil && maxPrice > 0 {
			filters.MaxPrice = maxPrice
		}
	}

	books, total, err := h.catalogService.SearchBooks(filters)
	if err != nil {
		http.Error(w, "Failed to search books", http.StatusInternalServerError)
		return
	}

	categories, err := h.catalogService.GetCategories()
	if err != nil {
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	component := pages.BookListPage(books, categories, query, categorySlug, total)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
}

// BookDetailPage renders a single book by slug
func (h *PublicHandler) BookDetailPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	book, err := h.catalogService.GetBookBySlug(slug)
	if err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			http.Error(w, "Book not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load book", http.StatusInternalServerError)
		return
	}

	component := pages.BookDetailPage(book)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
}

// CategoriesPage renders the category directory
func (h *PublicHandler) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	component := pages.CategoriesPage(categories)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
}

// PromotionCountdown renders the countdown fragment polled by HTMX
func (h *PublicHandler) PromotionCountdown(w http.ResponseWriter, r *http.Request) {
	kind := models.PromotionKind(chi.URLParam(r, "kind"))
	if kind != models.FlashSale && kind != models.DealOfTheWeek {
		http.Error(w, "Unknown promotion kind", http.StatusNotFound)
		return
	}

	promotion, countdown, err := h.promotionService.GetActivePromotion(kind)
	if err != nil {
		if errors.Is(err, models.ErrPromotionNotFound) {
			http.Error(w, "No active promotion", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load promotion", http.StatusInternalServerError)
		return
	}

	component := pages.CountdownPartial(promotion, countdown)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render countdown", http.StatusInternalServerError)
		return
	}
}

// HealthCheck reports service liveness
func (h *PublicHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
