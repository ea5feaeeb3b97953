// Package mysql wires the MySQL backend into the storage dialect registry.
// This is the production backend; connection parameters come from the config,
// never from ambient state.
package mysql

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"fleximart/internal/storage"
)

func init() {
	storage.Register("mysql", dialect{})
}

type dialect struct{}

func (dialect) DriverName() string { return "mysql" }

func (dialect) DSN(cfg storage.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	// parseTime makes DATE columns scan as time.Time on reads.
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		cfg.User, cfg.Password, host, port, cfg.Database)
}

func (dialect) Placeholder(int) string { return "?" }

func (dialect) ReturningID() bool { return false }

func (dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id INT AUTO_INCREMENT PRIMARY KEY,
			first_name VARCHAR(50),
			last_name VARCHAR(50),
			email VARCHAR(100) NOT NULL UNIQUE,
			phone VARCHAR(20),
			city VARCHAR(50),
			registration_date DATE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id INT AUTO_INCREMENT PRIMARY KEY,
			product_name VARCHAR(100) NOT NULL,
			category VARCHAR(50),
			price DECIMAL(10,2) NOT NULL,
			stock_quantity INT DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id INT AUTO_INCREMENT PRIMARY KEY,
			customer_id INT NOT NULL,
			order_date DATE,
			total_amount DECIMAL(10,2),
			status VARCHAR(20),
			FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT,
			unit_price DECIMAL(10,2),
			subtotal DECIMAL(10,2),
			FOREIGN KEY (order_id) REFERENCES orders(order_id),
			FOREIGN KEY (product_id) REFERENCES products(product_id)
		)`,
	}
}
