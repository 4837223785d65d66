package repositories

import (
	"database/sql"
	"errors"
	"time"

	"printstore/internal/models"
)

type OrderRepository interface {
	// Create inserts the order and all of its items in one transaction.
	Create(o *models.Order) error
	// GetByID returns the order with its items, (nil, nil) when absent.
	GetByID(id int) (*models.Order, error)
	// ListByUser returns order summaries; Items are not loaded.
	ListByUser(userID int) ([]*models.Order, error)
	UpdateStatus(id int, status string) error
	GetShippingMethod(id int) (*models.ShippingMethod, error)
	ListShippingMethods() ([]*models.ShippingMethod, error)

	// report queries
	CountAndRevenueBetween(from, to time.Time) (int, float64, error)
	CountByStatusBetween(from, to time.Time) (map[string]int, error)
	TopProductsBetween(from, to time.Time, limit int) ([]models.ProductSalesLine, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) Create(o *models.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const oq = `
		INSERT INTO orders (user_id, status, shipping_method_id, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := tx.QueryRow(oq, o.UserID, o.Status, o.ShippingMethodID, o.Total).Scan(&o.ID, &o.CreatedAt); err != nil {
		return err
	}

	const iq = `
		INSERT INTO order_items (order_id, product_id, material_option_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		var optID sql.NullInt64
		if it.MaterialOptionID != nil {
			optID = sql.NullInt64{Int64: int64(*it.MaterialOptionID), Valid: true}
		}
		if err := tx.QueryRow(iq, o.ID, it.ProductID, optID, it.Quantity, it.UnitPrice).Scan(&it.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *orderRepository) GetByID(id int) (*models.Order, error) {
	const q = `
		SELECT id, user_id, status, shipping_method_id, total, created_at
		FROM orders
		WHERE id = $1
	`
	o := &models.Order{}
	err := r.DB.QueryRow(q, id).Scan(&o.ID, &o.UserID, &o.Status, &o.ShippingMethodID, &o.Total, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	items, err := r.listItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *orderRepository) listItems(orderID int) ([]models.OrderItem, error) {
	const q = `
		SELECT id, order_id, product_id, material_option_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.DB.Query(q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		var optID sql.NullInt64
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &optID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		if optID.Valid {
			v := int(optID.Int64)
			it.MaterialOptionID = &v
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *orderRepository) ListByUser(userID int) ([]*models.Order, error) {
	const q = `
		SELECT id, user_id, status, shipping_method_id, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Order
	for rows.Next() {
		o := &models.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.ShippingMethodID, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *orderRepository) UpdateStatus(id int, status string) error {
	const q = `UPDATE orders SET status = $1 WHERE id = $2`
	_, err := r.DB.Exec(q, status, id)
	return err
}

func (r *orderRepository) GetShippingMethod(id int) (*models.ShippingMethod, error) {
	const q = `SELECT id, name, price FROM shipping_methods WHERE id = $1`
	m := &models.ShippingMethod{}
	err := r.DB.QueryRow(q, id).Scan(&m.ID, &m.Name, &m.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *orderRepository) ListShippingMethods() ([]*models.ShippingMethod, error) {
	const q = `SELECT id, name, price FROM shipping_methods ORDER BY price`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ShippingMethod
	for rows.Next() {
		m := &models.ShippingMethod{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Price); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *orderRepository) CountAndRevenueBetween(from, to time.Time) (int, float64, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> $3
	`
	var n int
	var sum float64
	if err := r.DB.QueryRow(q, from, to, models.OrderStatusCancelled).Scan(&n, &sum); err != nil {
		return 0, 0, err
	}
	return n, sum, nil
}

func (r *orderRepository) CountByStatusBetween(from, to time.Time) (map[string]int, error) {
	const q = `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status
	`
	rows, err := r.DB.Query(q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *orderRepository) TopProductsBetween(from, to time.Time, limit int) ([]models.ProductSalesLine, error) {
	const q = `
		SELECT p.id, p.name, SUM(i.quantity), SUM(i.quantity * i.unit_price)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN products p ON p.id = i.product_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> $3
		GROUP BY p.id, p.name
		ORDER BY SUM(i.quantity * i.unit_price) DESC
		LIMIT $4
	`
	rows, err := r.DB.Query(q, from, to, models.OrderStatusCancelled, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ProductSalesLine
	for rows.Next() {
		var l models.ProductSalesLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.Revenue); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
