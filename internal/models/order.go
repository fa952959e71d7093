package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// Order represents a placed order. Amounts are in cents.
type Order struct {
	ID           int         `json:"id" db:"id"`
	OrderNumber  string      `json:"order_number" db:"order_number"`
	CartToken    string      `json:"cart_token" db:"cart_token"`
	Status       OrderStatus `json:"status" db:"status"`
	BillingEmail string      `json:"billing_email" db:"billing_email"`
	BillingName  string      `json:"billing_name" db:"billing_name"`
	TotalAmount  int         `json:"total_amount" db:"total_amount"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`

	// Related data
	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a snapshot of one cart line at the time the order was
// placed, so later catalog edits never rewrite order history
type OrderItem struct {
	ID        int    `json:"id" db:"id"`
	OrderID   int    `json:"order_id" db:"order_id"`
	BookID    int    `json:"book_id" db:"book_id"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	UnitPrice int    `json:"unit_price" db:"unit_price"` // in cents
	Quantity  int    `json:"quantity" db:"quantity"`
	Total     int    `json:"total" db:"total"` // in cents
}

// OrderCreateRequest represents the data needed to place a new order
type OrderCreateRequest struct {
	CartToken    string `json:"cart_token"`
	BillingEmail string `json:"billing_email"`
	BillingName  string `json:"billing_name"`
}

var (
	// Order number format: ORD-YYYYMMDD-XXXXXX (e.g., ORD-20260101-123456)
	orderNumberRegex = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)
	// Email validation regex for billing addresses
	billingEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Validate validates the order data
func (o *Order) Validate() error {
	if err := o.validateOrderNumber(); err != nil {
		return err
	}

	if err := validateOrderTotalAmount(o.TotalAmount); err != nil {
		return err
	}

	if err := validateOrderStatus(o.Status); err != nil {
		return err
	}

	return ValidateBillingInfo(o.BillingEmail, o.BillingName)
}

// Validate validates order creation data
func (req *OrderCreateRequest) Validate() error {
	if req.CartToken == "" {
		return errors.New("cart token is required")
	}

	return ValidateBillingInfo(req.BillingEmail, req.BillingName)
}

// validateOrderNumber validates the order number
func (o *Order) validateOrderNumber() error {
	if o.OrderNumber == "" {
		return errors.New("order number is required")
	}

	if !orderNumberRegex.MatchString(o.OrderNumber) {
		return errors.New("order number format is invalid")
	}

	return nil
}

// validateOrderTotalAmount validates an order total amount
func validateOrderTotalAmount(totalAmount int) error {
	if totalAmount < 0 {
		return errors.New("total amount cannot be negative")
	}

	// Maximum order amount of $100,000 (10,000,000 cents)
	if totalAmount > 10000000 {
		return errors.New("total amount cannot exceed $100,000")
	}

	return nil
}

// validateOrderStatus validates an order status
func validateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderPending, OrderCompleted, OrderCancelled, OrderRefunded:
		return nil
	default:
		return errors.New("invalid order status")
	}
}

// ValidateBillingInfo validates billing contact details
func ValidateBillingInfo(billingEmail, billingName string) error {
	if billingEmail == "" {
		return errors.New("billing email is required")
	}

	if billingName == "" {
		return errors.New("billing name is required")
	}

	if len(billingEmail) > 255 {
		return errors.New("billing email must be less than 255 characters")
	}

	if len(billingName) > 255 {
		return errors.New("billing name must be less than 255 characters")
	}

	if !billingEmailRegex.MatchString(billingEmail) {
		return errors.New("billing email format is invalid")
	}

	if strings.TrimSpace(billingName) == "" {
		return errors.New("billing name cannot be only whitespace")
	}

	return nil
}

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	// 6-digit random suffix from crypto/rand for uniqueness
	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		return fmt.Sprintf("ORD-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}

// IsPending returns true if the order is pending
func (o *Order) IsPending() bool {
	return o.Status == OrderPending
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderCompleted
}

// CanBeCancelled returns true if the order can be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderPending
}

// CanBeRefunded returns true if the order can be refunded
func (o *Order) CanBeRefunded() bool {
	return o.Status == OrderCompleted
}

// CanBeCompleted returns true if the order can be marked as completed
func (o *Order) CanBeCompleted() bool {
	return o.Status == OrderPending
}

// TotalAmountInCurrency returns the total amount in the main currency as a float
func (o *Order) TotalAmountInCurrency() float64 {
	return float64(o.TotalAmount) / 100.0
}

// GetStatusDisplayName returns a human-readable status name
func (o *Order) GetStatusDisplayName() string {
	switch o.Status {
	case OrderPending:
		return "Pending"
	case OrderCompleted:
		return "Completed"
	case OrderCancelled:
		return "Cancelled"
	case OrderRefunded:
		return "Refunded"
	default:
		return string(o.Status)
	}
}
