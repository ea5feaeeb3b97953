package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fleximart/internal/model"
)

// Store wraps the shared connection pool and the backend dialect. All insert
// methods run inside a caller-managed transaction so that each entity batch
// commits as a whole.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// DB exposes the underlying pool, mainly for verification queries in tests.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Begin starts the transaction covering one entity batch.
func (s *Store) Begin(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// EnsureSchema creates the four destination tables if they do not exist,
// using the dialect's DDL.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.dialect.Schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
	}
	return nil
}

// InsertCustomer persists one customer and returns its surrogate key.
func (s *Store) InsertCustomer(ctx context.Context, tx *sql.Tx, c model.Customer) (int64, error) {
	return s.insert(ctx, tx, "customers", "customer_id",
		[]string{"first_name", "last_name", "email", "phone", "city", "registration_date"},
		c.FirstName, c.LastName, c.Email, nullable(c.Phone), c.City, nullable(c.RegistrationDate),
	)
}

// InsertProduct persists one product and returns its surrogate key.
func (s *Store) InsertProduct(ctx context.Context, tx *sql.Tx, p model.Product) (int64, error) {
	return s.insert(ctx, tx, "products", "product_id",
		[]string{"product_name", "category", "price", "stock_quantity"},
		p.Name, p.Category, p.Price, p.Stock,
	)
}

// InsertOrder persists one order and returns its surrogate key.
func (s *Store) InsertOrder(ctx context.Context, tx *sql.Tx, o model.Order) (int64, error) {
	return s.insert(ctx, tx, "orders", "order_id",
		[]string{"customer_id", "order_date", "total_amount", "status"},
		o.CustomerID, nullable(o.Date), o.Total, o.Status,
	)
}

// InsertOrderItem persists one order line item and returns its surrogate key.
func (s *Store) InsertOrderItem(ctx context.Context, tx *sql.Tx, it model.OrderItem) (int64, error) {
	return s.insert(ctx, tx, "order_items", "order_item_id",
		[]string{"order_id", "product_id", "quantity", "unit_price", "subtotal"},
		it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
	)
}

// insert builds and executes a single-row INSERT, returning the generated
// surrogate key via RETURNING or LastInsertId depending on the dialect.
func (s *Store) insert(ctx context.Context, tx *sql.Tx, table, idCol string, columns []string, args ...any) (int64, error) {
	ph := make([]string, len(columns))
	for i := range columns {
		ph[i] = s.dialect.Placeholder(i + 1)
	}
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(ph, ", "),
	)

	if s.dialect.ReturningID() {
		var id int64
		if err := tx.QueryRowContext(ctx, q+" RETURNING "+idCol, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
