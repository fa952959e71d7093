package services

import (
	"fmt"

	"childrens-bookshop/internal/models"
)

// CartService handles cart business logic. Every mutation loads the
// stored cart, applies the change in memory and persists the whole
// cart, so a failed change never leaves a partial write.
type CartService struct {
	cartRepo CartRepositoryInterface
	bookRepo BookRepositoryInterface
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepositoryInterface, bookRepo BookRepositoryInterface) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// CartRepositoryInterface defines the interface for cart repository operations
type CartRepositoryInterface interface {
	GetByToken(token string) (*models.Cart, error)
	GetOrCreate(token string) (*models.Cart, error)
	Save(cart *models.Cart) error
	Delete(token string) error
}

// GetCart retrieves the cart for the given token, returning an empty
// cart when none has been stored yet
func (s *CartService) GetCart(token string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByToken(token)
	if err == models.ErrCartNotFound {
		return &models.Cart{Token: token}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddToCart adds the given number of copies of a book to the cart.
// Books marked unavailable cannot be added.
func (s *CartService) AddToCart(token string, bookID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}
	return s.ChangeQuantity(token, bookID, quantity)
}

// ChangeQuantity applies a signed quantity delta to the book's cart
// line and persists the result
func (s *CartService) ChangeQuantity(token string, bookID, delta int) (*models.Cart, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	// Adding copies requires an available book; removals are always
	// allowed so a delisted book never gets stuck in a cart
	if delta > 0 && !book.Available {
		return nil, models.ErrBookUnavailable
	}

	if err := cart.ChangeQuantity(book, delta); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// SetQuantity sets the absolute quantity for the book's cart line and
// persists the result
func (s *CartService) SetQuantity(token string, bookID, quantity int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	if err := cart.SetQuantity(bookID, quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveFromCart removes the book's line from the cart
func (s *CartService) RemoveFromCart(token string, bookID int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveLine(bookID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// ClearCart removes the cart and all its lines
func (s *CartService) ClearCart(token string) error {
	return s.cartRepo.Delete(token)
}
