package handlers

import (
	"context"
	"io"
	"time"

	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
)

// mockCatalogService is an in-memory catalog for handler tests
type mockCatalogService struct {
	books       map[int]*models.Book
	categories  map[int]*models.Category
	nextID      int
	failSearch  error
	lastFilters repositories.BookSearchFilters
}

func newMockCatalogService() *mockCatalogService {
	return &mockCatalogService{
		books:      make(map[int]*models.Book),
		categories: make(map[int]*models.Category),
		nextID:     1,
	}
}

func (m *mockCatalogService) addBook(title, slug string, price int, available bool) *models.Book {
	book := &models.Book{
		ID:        m.nextID,
		Title:     title,
		Author:    "Test Author",
		Slug:      slug,
		Price:     price,
		Rating:    4,
		Available: available,
		Featured:  true,
	}
	m.books[m.nextID] = book
	m.nextID++
	return book
}

func (m *mockCatalogService) SearchBooks(filters repositories.BookSearchFilters) ([]*models.Book, int, error) {
	m.lastFilters = filters
	if m.failSearch != nil {
		return nil, 0, m.failSearch
	}
	var result []*models.Book
	for _, book := range m.books {
		result = append(result, book)
	}
	return result, len(result), nil
}

func (m *mockCatalogService) GetBookBySlug(slug string) (*models.Book, error) {
	for _, book := range m.books {
		if book.Slug == slug {
			return book, nil
		}
	}
	return nil, models.ErrBookNotFound
}

func (m *mockCatalogService) GetBookByID(id int) (*models.Book, error) {
	book, exists := m.books[id]
	if !exists {
		return nil, models.ErrBookNotFound
	}
	return book, nil
}

func (m *mockCatalogService) GetFeaturedBooks(limit int) ([]*models.Book, error) {
	var result []*models.Book
	for _, book := range m.books {
		if book.Featured && len(result) < limit {
			result = append(result, book)
		}
	}
	return result, nil
}

func (m *mockCatalogService) CreateBook(req *models.BookCreateRequest) (*models.Book, error) {
	if req.Slug == "" {
		req.Slug = models.GenerateSlug(req.Title)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	book := m.addBook(req.Title, req.Slug, req.Price, req.Available)
	book.Author = req.Author
	book.Rating = req.Rating
	return book, nil
}

func (m *mockCatalogService) UpdateBook(id int, req *models.BookUpdateRequest) (*models.Book, error) {
	book, exists := m.books[id]
	if !exists {
		return nil, models.ErrBookNotFound
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	book.Title = req.Title
	book.Price = req.Price
	return book, nil
}

func (m *mockCatalogService) DeleteBook(id int) error {
	if _, exists := m.books[id]; !exists {
		return models.ErrBookNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *mockCatalogService) GetCategories() ([]*models.Category, error) {
	var result []*models.Category
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *mockCatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	for _, category := range m.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *mockCatalogService) CreateCategory(req *models.CategoryCreateRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	category := &models.Category{
		ID:   m.nextID,
		Name: req.Name,
		Slug: req.Slug,
	}
	m.categories[m.nextID] = category
	m.nextID++
	return category, nil
}

func (m *mockCatalogService) UpdateCategory(id int, req *models.CategoryUpdateRequest) (*models.Category, error) {
	category, exists := m.categories[id]
	if !exists {
		return nil, models.ErrCategoryNotFound
	}
	category.Name = req.Name
	category.Slug = req.Slug
	return category, nil
}

func (m *mockCatalogService) DeleteCategory(id int) error {
	if _, exists := m.categories[id]; !exists {
		return models.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCatalogService) SetBookCover(ctx context.Context, bookID int, reader io.Reader, filename string) (*models.Book, error) {
	book, exists := m.books[bookID]
	if !exists {
		return nil, models.ErrBookNotFound
	}
	book.ImageKey = "covers/" + book.Slug
	book.ImageURL = "https://cdn.example.com/covers/" + book.Slug + "/medium.jpeg"
	return book, nil
}

// mockCartService keeps carts in memory and reuses the cart model's
// own quantity rules
type mockCartService struct {
	catalog *mockCatalogService
	carts   map[string]*models.Cart
}

func newMockCartService(catalog *mockCatalogService) *mockCartService {
	return &mockCartService{
		catalog: catalog,
		carts:   make(map[string]*models.Cart),
	}
}

func (m *mockCartService) cart(token string) *models.Cart {
	cart, exists := m.carts[token]
	if !exists {
		cart = &models.Cart{Token: token}
		m.carts[token] = cart
	}
	return cart
}

func (m *mockCartService) GetCart(token string) (*models.Cart, error) {
	return m.cart(token), nil
}

func (m *mockCartService) AddToCart(token string, bookID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}
	return m.ChangeQuantity(token, bookID, quantity)
}

func (m *mockCartService) ChangeQuantity(token string, bookID, delta int) (*models.Cart, error) {
	book, err := m.catalog.GetBookByID(bookID)
	if err != nil {
		return nil, err
	}
	if delta > 0 && !book.Available {
		return nil, models.ErrBookUnavailable
	}
	cart := m.cart(token)
	if err := cart.ChangeQuantity(book, delta); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mockCartService) SetQuantity(token string, bookID, quantity int) (*models.Cart, error) {
	cart := m.cart(token)
	if err := cart.SetQuantity(bookID, quantity); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mockCartService) RemoveFromCart(token string, bookID int) (*models.Cart, error) {
	cart := m.cart(token)
	if err := cart.RemoveLine(bookID); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mockCartService) ClearCart(token string) error {
	delete(m.carts, token)
	return nil
}

// mockPromotionService serves one configured promotion
type mockPromotionService struct {
	promotion *models.Promotion
	countdown models.Countdown
}

func (m *mockPromotionService) GetActivePromotion(kind models.PromotionKind) (*models.Promotion, models.Countdown, error) {
	if m.promotion == nil || m.promotion.Kind != kind {
		return nil, models.Countdown{}, models.ErrPromotionNotFound
	}
	return m.promotion, m.countdown, nil
}

func (m *mockPromotionService) ListPromotions() ([]*models.Promotion, error) {
	if m.promotion == nil {
		return nil, nil
	}
	return []*models.Promotion{m.promotion}, nil
}

func (m *mockPromotionService) CreatePromotion(req *models.PromotionCreateRequest) (*models.Promotion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m.promotion = &models.Promotion{
		ID:              1,
		Kind:            req.Kind,
		Name:            req.Name,
		DiscountPercent: req.DiscountPercent,
		EndsAt:          req.EndsAt,
	}
	return m.promotion, nil
}

func (m *mockPromotionService) DeletePromotion(id int) error {
	if m.promotion == nil || m.promotion.ID != id {
		return models.ErrPromotionNotFound
	}
	m.promotion = nil
	return nil
}

// mockOrderService places orders against the mock cart service
type mockOrderService struct {
	carts  *mockCartService
	orders map[string]*models.Order
	nextID int
}

func newMockOrderService(carts *mockCartService) *mockOrderService {
	return &mockOrderService{
		carts:  carts,
		orders: make(map[string]*models.Order),
		nextID: 1,
	}
}

func (m *mockOrderService) Checkout(req *models.OrderCreateRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, exists := m.carts.carts[req.CartToken]
	if !exists || cart.IsEmpty() {
		return nil, models.ErrCartNotFound
	}

	order := &models.Order{
		ID:           m.nextID,
		OrderNumber:  models.GenerateOrderNumber(),
		CartToken:    req.CartToken,
		Status:       models.OrderPending,
		BillingEmail: req.BillingEmail,
		BillingName:  req.BillingName,
		TotalAmount:  cart.Total,
		CreatedAt:    time.Now(),
	}
	for _, line := range cart.Lines {
		order.Items = append(order.Items, models.OrderItem{
			BookID:    line.BookID,
			Title:     line.Title,
			Author:    "Test Author",
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Total:     line.Subtotal,
		})
	}

	m.orders[order.OrderNumber] = order
	m.nextID++
	delete(m.carts.carts, req.CartToken)
	return order, nil
}

func (m *mockOrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	order, exists := m.orders[orderNumber]
	if !exists {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderService) SearchOrders(filters repositories.OrderSearchFilters) ([]*models.Order, error) {
	var result []*models.Order
	for _, order := range m.orders {
		if filters.Status != "" && order.Status != filters.Status {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}

func (m *mockOrderService) UpdateOrderStatus(id int, status models.OrderStatus) error {
	for _, order := range m.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return models.ErrOrderNotFound
}
