// Package sqlite wires a SQLite backend into the storage dialect registry.
// It exists for local runs and tests; the driver is pure Go, so the test
// suite can exercise the full load path without external services.
package sqlite

import (
	"fmt"

	_ "modernc.org/sqlite"

	"fleximart/internal/storage"
)

func init() {
	storage.Register("sqlite", dialect{})
}

type dialect struct{}

func (dialect) DriverName() string { return "sqlite" }

// DSN treats Config.Database as the database file path. Foreign key
// enforcement is requested per connection via the DSN so every pooled
// connection gets it.
func (dialect) DSN(cfg storage.Config) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", cfg.Database)
}

func (dialect) Placeholder(int) string { return "?" }

func (dialect) ReturningID() bool { return false }

func (dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT,
			last_name TEXT,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			city TEXT,
			registration_date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_name TEXT NOT NULL,
			category TEXT,
			price REAL NOT NULL,
			stock_quantity INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id INTEGER NOT NULL REFERENCES customers(customer_id),
			order_date TEXT,
			total_amount REAL,
			status TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL REFERENCES orders(order_id),
			product_id INTEGER NOT NULL REFERENCES products(product_id),
			quantity INTEGER,
			unit_price REAL,
			subtotal REAL
		)`,
	}
}
