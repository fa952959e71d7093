package services

import (
	"fmt"
	"log"

	"childrens-bookshop/internal/models"
	"childrens-bookshop/internal/repositories"
)

// OrderService handles order business logic
type OrderService struct {
	orderRepo OrderRepositoryInterface
	cartRepo  CartRepositoryInterface
	bookRepo  BookRepositoryInterface
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepositoryInterface, cartRepo CartRepositoryInterface, bookRepo BookRepositoryInterface) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
	}
}

// OrderRepositoryInterface defines the interface for order repository operations
type OrderRepositoryInterface interface {
	Create(order *models.Order) (*models.Order, error)
	GetByID(id int) (*models.Order, error)
	GetByNumber(orderNumber string) (*models.Order, error)
	Search(filters repositories.OrderSearchFilters) ([]*models.Order, error)
	UpdateStatus(id int, status models.OrderStatus) error
}

// Checkout places an order for the cart named in the request. The cart
// lines are snapshotted into order items and the cart is emptied once
// the order is stored.
func (s *OrderService) Checkout(req *models.OrderCreateRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByToken(req.CartToken)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, fmt.Errorf("cannot checkout an empty cart")
	}

	order := &models.Order{
		OrderNumber:  models.GenerateOrderNumber(),
		CartToken:    cart.Token,
		Status:       models.OrderPending,
		BillingEmail: req.BillingEmail,
		BillingName:  req.BillingName,
		TotalAmount:  cart.Total,
	}

	for _, line := range cart.Lines {
		// The cart line carries the title and price snapshot; the
		// author still comes from the catalog at checkout time
		author := ""
		if book, err := s.bookRepo.GetByID(line.BookID); err == nil {
			author = book.Author
		}

		order.Items = append(order.Items, models.OrderItem{
			BookID:    line.BookID,
			Title:     line.Title,
			Author:    author,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Total:     line.Subtotal,
		})
	}

	created, err := s.orderRepo.Create(order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order is safely stored; cart cleanup is best effort
	if err := s.cartRepo.Delete(cart.Token); err != nil {
		log.Printf("Failed to clear cart %s after checkout: %v", cart.Token, err)
	}

	return created, nil
}

// GetOrderByNumber retrieves an order by its order number
func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByNumber(orderNumber)
}

// SearchOrders retrieves orders matching the given filters
func (s *OrderService) SearchOrders(filters repositories.OrderSearchFilters) ([]*models.Order, error) {
	return s.orderRepo.Search(filters)
}

// UpdateOrderStatus updates an order's status
func (s *OrderService) UpdateOrderStatus(id int, status models.OrderStatus) error {
	return s.orderRepo.UpdateStatus(id, status)
}
