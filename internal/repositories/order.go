package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"childrens-bookshop/internal/models"
)

// OrderRepository handles order data operations
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderSearchFilters represents filters for order search
type OrderSearchFilters struct {
	Status   models.OrderStatus // Filter by status
	Search   string             // Search in order number, billing email and name
	DateFrom *time.Time         // Orders created after this date
	DateTo   *time.Time         // Orders created before this date
	Limit    int                // Number of results to return
	Offset   int                // Number of results to skip
	SortBy   string             // "created_at", "total_amount", "status"
	SortDesc bool               // Sort in descending order
}

// Create creates a new order with its item snapshots in a single
// transaction
func (r *OrderRepository) Create(order *models.Order) (*models.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (order_number, cart_token, status, billing_email, billing_name, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(
		query,
		order.OrderNumber,
		order.CartToken,
		order.Status,
		order.BillingEmail,
		order.BillingName,
		order.TotalAmount,
		time.Now(),
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := tx.QueryRow(`
			INSERT INTO order_items (order_id, book_id, title, author, unit_price, quantity, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			item.OrderID, item.BookID, item.Title, item.Author, item.UnitPrice, item.Quantity, item.Total,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// GetByID retrieves an order by ID with its items
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	query := `
		SELECT id, order_number, cart_token, status, billing_email, billing_name, total_amount, created_at, updated_at
		FROM orders
		WHERE id = $1`

	return r.getOrder(query, id)
}

// GetByNumber retrieves an order by its order number with its items
func (r *OrderRepository) GetByNumber(orderNumber string) (*models.Order, error) {
	query := `
		SELECT id, order_number, cart_token, status, billing_email, billing_name, total_amount, created_at, updated_at
		FROM orders
		WHERE order_number = $1`

	return r.getOrder(query, orderNumber)
}

func (r *OrderRepository) getOrder(query string, arg interface{}) (*models.Order, error) {
	order := &models.Order{}
	err := r.db.QueryRow(query, arg).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CartToken,
		&order.Status,
		&order.BillingEmail,
		&order.BillingName,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *OrderRepository) getOrderItems(orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, book_id, title, author, unit_price, quantity, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		item := models.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.BookID,
			&item.Title,
			&item.Author,
			&item.UnitPrice,
			&item.Quantity,
			&item.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// Search retrieves orders matching the given filters, without items
func (r *OrderRepository) Search(filters OrderSearchFilters) ([]*models.Order, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(order_number ILIKE $%d OR billing_email ILIKE $%d OR billing_name ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, *filters.DateFrom)
		argIndex++
	}

	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIndex))
		args = append(args, *filters.DateTo)
		argIndex++
	}

	query := `
		SELECT id, order_number, cart_token, status, billing_email, billing_name, total_amount, created_at, updated_at
		FROM orders`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	column := "created_at"
	switch filters.SortBy {
	case "total_amount":
		column = "total_amount"
	case "status":
		column = "status"
	}

	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", column, direction)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.CartToken,
			&order.Status,
			&order.BillingEmail,
			&order.BillingName,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus updates an order's status, enforcing the allowed
// transitions
func (r *OrderRepository) UpdateStatus(id int, status models.OrderStatus) error {
	order, err := r.GetByID(id)
	if err != nil {
		return err
	}

	allowed := false
	switch status {
	case models.OrderCompleted:
		allowed = order.CanBeCompleted()
	case models.OrderCancelled:
		allowed = order.CanBeCancelled()
	case models.OrderRefunded:
		allowed = order.CanBeRefunded()
	}

	if !allowed {
		return fmt.Errorf("cannot transition order from %s to %s", order.Status, status)
	}

	_, err = r.db.Exec(
		"UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1",
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}
