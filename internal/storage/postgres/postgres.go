// Package postgres wires the Postgres backend into the storage dialect
// registry, using the pgx driver through database/sql. Generated keys are
// obtained with RETURNING since the postgres protocol has no LastInsertId.
package postgres

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fleximart/internal/storage"
)

func init() {
	storage.Register("postgres", dialect{})
}

type dialect struct{}

func (dialect) DriverName() string { return "pgx" }

func (dialect) DSN(cfg storage.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, host, port, cfg.Database)
}

func (dialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (dialect) ReturningID() bool { return true }

func (dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			first_name VARCHAR(50),
			last_name VARCHAR(50),
			email VARCHAR(100) NOT NULL UNIQUE,
			phone VARCHAR(20),
			city VARCHAR(50),
			registration_date DATE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			product_name VARCHAR(100) NOT NULL,
			category VARCHAR(50),
			price NUMERIC(10,2) NOT NULL,
			stock_quantity INT DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			customer_id INT NOT NULL REFERENCES customers(customer_id),
			order_date DATE,
			total_amount NUMERIC(10,2),
			status VARCHAR(20)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(order_id),
			product_id INT NOT NULL REFERENCES products(product_id),
			quantity INT,
			unit_price NUMERIC(10,2),
			subtotal NUMERIC(10,2)
		)`,
	}
}
