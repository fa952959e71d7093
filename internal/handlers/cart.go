package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"childrens-bookshop/internal/middleware"
	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/services"
	"childrens-bookshop/web/templates/pages"

	"github.com/go-chi/chi/v5"
)

// CartHandler handles shopping cart and checkout requests
type CartHandler struct {
	cartService  services.CartServiceInterface
	orderService services.OrderServiceInterface
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService services.CartServiceInterface, orderService services.OrderServiceInterface) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
	}
}

// ViewCart displays the shopping cart
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	cart, err := h.cartService.GetCart(token)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	component := pages.CartPage(cart)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render cart page", http.StatusInternalServerError)
		return
	}
}

// AddToCart adds copies of a book to the cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	bookID, err := strconv.Atoi(r.FormValue("book_id"))
	if err != nil {
		http.Error(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	// Quantity defaults to one copy when the form omits it
	quantity := 1
	if quantityStr := r.FormValue("quantity"); quantityStr != "" {
		quantity, err = strconv.Atoi(quantityStr)
		if err != nil {
			http.Error(w, "Invalid quantity", http.StatusBadRequest)
			return
		}
	}

	cart, err := h.cartService.AddToCart(token, bookID, quantity)
	if err != nil {
		h.handleCartError(w, r, err)
		return
	}

	h.renderCartResponse(w, r, cart)
}

// ChangeQuantity applies a signed delta to a cart line
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	bookID, err := strconv.Atoi(r.FormValue("book_id"))
	if err != nil {
		http.Error(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	delta, err := strconv.Atoi(r.FormValue("delta"))
	if err != nil {
		http.Error(w, "Invalid delta", http.StatusBadRequest)
		return
	}

	cart, err := h.cartService.ChangeQuantity(token, bookID, delta)
	if err != nil {
		h.handleCartError(w, r, err)
		return
	}

	h.renderCartResponse(w, r, cart)
}

// UpdateCartItem sets the absolute quantity of a cart line
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	bookID, err := strconv.Atoi(r.FormValue("book_id"))
	if err != nil {
		http.Error(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	cart, err := h.cartService.SetQuantity(token, bookID, quantity)
	if err != nil {
		h.handleCartError(w, r, err)
		return
	}

	h.renderCartResponse(w, r, cart)
}

// RemoveFromCart removes a book's line from the cart
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	bookID, err := strconv.Atoi(r.FormValue("book_id"))
	if err != nil {
		http.Error(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	cart, err := h.cartService.RemoveFromCart(token, bookID)
	if err != nil {
		h.handleCartError(w, r, err)
		return
	}

	h.renderCartResponse(w, r, cart)
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	if err := h.cartService.ClearCart(token); err != nil {
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	h.handleRedirect(w, r, "/cart", http.StatusSeeOther)
}

// CheckoutPage displays the checkout form
func (h *CartHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	cart, err := h.cartService.GetCart(token)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	if cart.IsEmpty() {
		h.handleRedirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	component := pages.CheckoutPage(cart, nil, make(map[string]string))
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render checkout page", http.StatusInternalServerError)
		return
	}
}

// ProcessCheckout places the order for the visitor's cart
func (h *CartHandler) ProcessCheckout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetCartToken(r.Context())
	if token == "" {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	billingEmail := strings.TrimSpace(r.FormValue("billing_email"))
	billingName := strings.TrimSpace(r.FormValue("billing_name"))

	formData := map[string]string{
		"billing_email": billingEmail,
		"billing_name":  billingName,
	}

	order, err := h.orderService.Checkout(&models.OrderCreateRequest{
		CartToken:    token,
		BillingEmail: billingEmail,
		BillingName:  billingName,
	})
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			h.handleRedirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
		h.handleCheckoutError(w, r, err, formData, token)
		return
	}

	confirmationURL := "/orders/" + order.OrderNumber + "/confirmation"
	h.handleRedirect(w, r, confirmationURL, http.StatusSeeOther)
}

// OrderConfirmation displays the confirmation page for a placed order
func (h *CartHandler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "number")

	order, err := h.orderService.GetOrderByNumber(orderNumber)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	component := pages.OrderConfirmationPage(order)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render confirmation page", http.StatusInternalServerError)
		return
	}
}

// Helper methods

// renderCartResponse returns the cart items partial for HTMX requests
// and redirects to the cart page otherwise
func (h *CartHandler) renderCartResponse(w http.ResponseWriter, r *http.Request, cart *models.Cart) {
	if middleware.IsHTMXRequest(r) {
		component := pages.CartItemsPartial(cart)
		if err := component.Render(r.Context(), w); err != nil {
			http.Error(w, "Failed to render cart items", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// handleCartError maps cart service errors to HTTP status codes
func (h *CartHandler) handleCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrBookNotFound), errors.Is(err, models.ErrUnknownItem):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidQuantity), errors.Is(err, models.ErrBookUnavailable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
	}
}

// handleCheckoutError re-renders the checkout form with the validation
// error attached to the right field
func (h *CartHandler) handleCheckoutError(w http.ResponseWriter, r *http.Request, err error, formData map[string]string, token string) {
	formErrors := make(map[string][]string)
	message := err.Error()
	switch {
	case strings.Contains(message, "billing email"):
		formErrors["billing_email"] = []string{message}
	case strings.Contains(message, "billing name"):
		formErrors["billing_name"] = []string{message}
	default:
		formErrors["general"] = []string{message}
	}

	cart, cartErr := h.cartService.GetCart(token)
	if cartErr != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	component := pages.CheckoutPage(cart, formErrors, formData)
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Failed to render checkout page", http.StatusInternalServerError)
	}
}

// handleRedirect handles redirects appropriately for HTMX vs regular requests
func (h *CartHandler) handleRedirect(w http.ResponseWriter, r *http.Request, url string, statusCode int) {
	if middleware.IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, url, statusCode)
	}
}
