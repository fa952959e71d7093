package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"childrens-bookshop/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func setupPublicHandler() (*PublicHandler, *mockCatalogService, *mockPromotionService) {
	catalog := newMockCatalogService()
	promotions := &mockPromotionService{}
	return NewPublicHandler(catalog, promotions), catalog, promotions
}

func TestPublicHandler_HomePage(t *testing.T) {
	handler, catalog, promotions := setupPublicHandler()
	catalog.addBook("Where the Wild Things Are", "where-the-wild-things-are", 1299, true)
	promotions.promotion = &models.Promotion{
		ID:              1,
		Kind:            models.FlashSale,
		Name:            "Summer Flash Sale",
		DiscountPercent: 20,
		EndsAt:          time.Now().Add(48 * time.Hour),
	}
	promotions.countdown = models.Countdown{Days: 2, Hours: 0, Minutes: 0}

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.HomePage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Featured Books")
	assert.Contains(t, body, "Where the Wild Things Are")
	assert.Contains(t, body, "Summer Flash Sale")
	assert.Contains(t, body, "20% off")
}

func TestPublicHandler_HomePage_NoPromotion(t *testing.T) {
	handler, catalog, _ := setupPublicHandler()
	catalog.addBook("Where the Wild Things Are", "where-the-wild-things-are", 1299, true)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.HomePage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "promo-banner")
}

func TestPublicHandler_BooksPage(t *testing.T) {
	handler, catalog, _ := setupPublicHandler()
	catalog.addBook("Goodnight Moon", "goodnight-moon", 750, true)
	catalog.addBook("The Very Hungry Caterpillar", "the-very-hungry-caterpillar", 1200, true)

	req := httptest.NewRequest("GET", "/books?q=moon&page=1", nil)
	w := httptest.NewRecorder()
	handler.BooksPage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "books found")
}

func TestPublicHandler_BooksPage_PriceFilters(t *testing.T) {
	handler, catalog, _ := setupPublicHandler()
	catalog.addBook("Goodnight Moon", "goodnight-moon", 750, true)

	req := httptest.NewRequest("GET", "/books?min_price=500&max_price=2000", nil)
	w := httptest.NewRecorder()
	handler.BooksPage(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 500, catalog.lastFilters.MinPrice)
	assert.Equal(t, 2000, catalog.lastFilters.MaxPrice)
}

func TestPublicHandler_BookDetailPage(t *testing.T) {
	handler, catalog, _ := setupPublicHandler()
	catalog.addBook("Goodnight Moon", "goodnight-moon", 750, true)

	router := chi.NewRouter()
	router.Get("/books/{slug}", handler.BookDetailPage)

	req := httptest.NewRequest("GET", "/books/goodnight-moon", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Goodnight Moon")
	assert.Contains(t, w.Body.String(), "Add to Cart")
}

func TestPublicHandler_BookDetailPage_NotFound(t *testing.T) {
	handler, _, _ := setupPublicHandler()

	router := chi.NewRouter()
	router.Get("/books/{slug}", handler.BookDetailPage)

	req := httptest.NewRequest("GET", "/books/no-such-book", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicHandler_BookDetailPage_Unavailable(t *testing.T) {
	handler, catalog, _ := setupPublicHandler()
	catalog.addBook("Out of Print", "out-of-print", 900, false)

	router := chi.NewRouter()
	router.Get("/books/{slug}", handler.BookDetailPage)

	req := httptest.NewRequest("GET", "/books/out-of-print", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Currently unavailable")
	assert.NotContains(t, w.Body.String(), "Add to Cart")
}

func TestPublicHandler_PromotionCountdown(t *testing.T) {
	handler, _, promotions := setupPublicHandler()
	promotions.promotion = &models.Promotion{
		ID:              1,
		Kind:            models.DealOfTheWeek,
		Name:            "Picture Book Week",
		DiscountPercent: 15,
		EndsAt:          time.Now().Add(3 * 24 * time.Hour),
	}
	promotions.countdown = models.Countdown{Days: 3, Hours: 1, Minutes: 30}

	router := chi.NewRouter()
	router.Get("/promotions/{kind}/countdown", handler.PromotionCountdown)

	req := httptest.NewRequest("GET", "/promotions/deal_of_the_week/countdown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Picture Book Week")
	assert.Contains(t, body, "Days")
	assert.Contains(t, body, "Minutes")
}

func TestPublicHandler_PromotionCountdown_UnknownKind(t *testing.T) {
	handler, _, _ := setupPublicHandler()

	router := chi.NewRouter()
	router.Get("/promotions/{kind}/countdown", handler.PromotionCountdown)

	req := httptest.NewRequest("GET", "/promotions/mystery_sale/countdown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicHandler_PromotionCountdown_NoActivePromotion(t *testing.T) {
	handler, _, _ := setupPublicHandler()

	router := chi.NewRouter()
	router.Get("/promotions/{kind}/countdown", handler.PromotionCountdown)

	req := httptest.NewRequest("GET", "/promotions/flash_sale/countdown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicHandler_HealthCheck(t *testing.T) {
	handler, _, _ := setupPublicHandler()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.HealthCheck(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
