package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
	"childrens-bookshop/internal/services"

	"github.com/go-chi/chi/v5"
)

// Cover uploads are capped at 10MB
const maxCoverUploadSize = 10 << 20

// AdminHandler exposes the token-guarded management API as JSON
type AdminHandler struct {
	catalogService   services.CatalogServiceInterface
	promotionService services.PromotionServiceInterface
	orderService     services.OrderServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	catalogService services.CatalogServiceInterface,
	promotionService services.PromotionServiceInterface,
	orderService services.OrderServiceInterface,
) *AdminHandler {
	return &AdminHandler{
		catalogService:   catalogService,
		promotionService: promotionService,
		orderService:     orderService,
	}
}

// CreateCategory creates a new category
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory updates an existing category
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req models.CategoryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.catalogService.UpdateCategory(id, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory deletes a category that has no books
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateBook creates a new book
func (h *AdminHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req models.BookCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	book, err := h.catalogService.CreateBook(&req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// UpdateBook updates an existing book
func (h *AdminHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var req models.BookUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	book, err := h.catalogService.UpdateBook(id, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// DeleteBook deletes a book and its cover image
func (h *AdminHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := h.catalogService.DeleteBook(id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadBookCover attaches a cover image to a book from a multipart upload
func (h *AdminHandler) UploadBookCover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := r.ParseMultipartForm(maxCoverUploadSize); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse upload, covers are limited to 10MB")
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing cover file")
		return
	}
	defer file.Close()

	book, err := h.catalogService.SetBookCover(r.Context(), id, file, header.Filename)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// ListPromotions lists all promotions, past and future
func (h *AdminHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.ListPromotions()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, promotions)
}

// CreatePromotion creates a new promotion deadline
func (h *AdminHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req models.PromotionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	promotion, err := h.promotionService.CreatePromotion(&req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, promotion)
}

// DeletePromotion deletes a promotion
func (h *AdminHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid promotion ID")
		return
	}

	if err := h.promotionService.DeletePromotion(id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders searches placed orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filters := repositories.OrderSearchFilters{
		Status:   models.OrderStatus(r.URL.Query().Get("status")),
		Search:   r.URL.Query().Get("q"),
		SortBy:   r.URL.Query().Get("sort_by"),
		SortDesc: r.URL.Query().Get("sort_order") != "asc",
		Limit:    50,
	}

	if fromStr := r.URL.Query().Get("date_from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filters.DateFrom = &from
		}
	}
	if toStr := r.URL.Query().Get("date_to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			filters.DateTo = &to
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 200 {
			filters.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	orders, err := h.orderService.SearchOrders(filters)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus transitions an order to a new status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.orderService.UpdateOrderStatus(id, body.Status); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps service errors to JSON error responses
func (h *AdminHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrBookNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrPromotionNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateEntry):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
