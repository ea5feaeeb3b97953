package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fleximart/internal/config"
)

// writeFile writes a test fixture and fails the test on error.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// fixtureConfig lays out the three raw extracts in dir and returns a config
// pointing the pipeline at them with a sqlite database in the same dir.
//
// The data exercises every cleaning rule at once: an exact duplicate
// customer, a customer without an email, a product without a price, and two
// sales rows referencing rows that the transform drops.
func fixtureConfig(t *testing.T, dir string) config.Config {
	t.Helper()

	writeFile(t, filepath.Join(dir, "customers_raw.csv"), strings.Join([]string{
		"customer_id,first_name,last_name,email,phone,city,registration_date",
		"C001,Asha,Rao,asha@example.com,9876543210,mumbai,15/01/2023",
		"C001,Asha,Rao,asha@example.com,9876543210,mumbai,15/01/2023",
		"C003,Ravi,Iyer,,9123456780,delhi,2023-02-20",
		"",
	}, "\n"))

	writeFile(t, filepath.Join(dir, "products_raw.csv"), strings.Join([]string{
		"product_id,product_name,category,price,stock_quantity",
		"P001, Wireless Mouse ,electronics,599.00,25",
		"P002,USB Cable,accessories,,100",
		"",
	}, "\n"))

	writeFile(t, filepath.Join(dir, "sales_raw.csv"), strings.Join([]string{
		"transaction_id,customer_id,product_id,transaction_date,unit_price,quantity,status",
		"T001,C001,P001,01/03/2023,599.00,2,Completed",
		"T002,C001,P001,2023-03-05,599.00,1,Completed",
		"T003,C003,P001,2023-03-07,599.00,1,Completed",
		"T004,C001,P002,2023-03-09,120.00,3,Completed",
		"",
	}, "\n"))

	return config.Config{
		Job: "fleximart_etl_test",
		Sources: config.Sources{
			Customers: filepath.Join(dir, "customers_raw.csv"),
			Products:  filepath.Join(dir, "products_raw.csv"),
			Sales:     filepath.Join(dir, "sales_raw.csv"),
		},
		Storage: config.Storage{
			Kind:            "sqlite",
			Database:        filepath.Join(dir, "fleximart.db"),
			AutoCreateTable: true,
		},
		Report: config.Report{
			Path: filepath.Join(dir, "data_quality_report.txt"),
		},
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := fixtureConfig(t, dir)

	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "fleximart.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if got := countRows(t, db, "customers"); got != 1 {
		t.Errorf("customers = %d, want 1", got)
	}
	if got := countRows(t, db, "products"); got != 1 {
		t.Errorf("products = %d, want 1", got)
	}
	if got := countRows(t, db, "orders"); got != 2 {
		t.Errorf("orders = %d, want 2", got)
	}
	if got := countRows(t, db, "order_items"); got != 2 {
		t.Errorf("order_items = %d, want 2", got)
	}

	// Every order item must reference an existing order and product.
	var orphans int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM order_items oi
		LEFT JOIN orders o ON o.order_id = oi.order_id
		LEFT JOIN products p ON p.product_id = oi.product_id
		WHERE o.order_id IS NULL OR p.product_id IS NULL`).Scan(&orphans)
	if err != nil {
		t.Fatalf("orphan check: %v", err)
	}
	if orphans != 0 {
		t.Errorf("found %d order items with dangling references", orphans)
	}

	// Cleaned values made it through intact.
	var phone, city, regDate string
	err = db.QueryRow("SELECT phone, city, registration_date FROM customers").Scan(&phone, &city, &regDate)
	if err != nil {
		t.Fatalf("read customer: %v", err)
	}
	if phone != "+91-9876543210" {
		t.Errorf("phone = %q, want +91-9876543210", phone)
	}
	if city != "Mumbai" {
		t.Errorf("city = %q, want Mumbai", city)
	}
	if regDate != "2023-01-15" {
		t.Errorf("registration_date = %q, want 2023-01-15", regDate)
	}

	var name, category string
	err = db.QueryRow("SELECT product_name, category FROM products").Scan(&name, &category)
	if err != nil {
		t.Fatalf("read product: %v", err)
	}
	if name != "Wireless Mouse" {
		t.Errorf("product_name = %q, want Wireless Mouse", name)
	}
	if category != "Electronics" {
		t.Errorf("category = %q, want Electronics", category)
	}
}

func TestRunWritesQualityReport(t *testing.T) {
	dir := t.TempDir()
	cfg := fixtureConfig(t, dir)

	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	b, err := os.ReadFile(cfg.Report.Path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(b)

	for _, want := range []string{
		"DATA QUALITY REPORT",
		"CUSTOMERS",
		"PRODUCTS",
		"SALES",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}

	custSection := sectionOf(t, text, "CUSTOMERS")
	for _, want := range []string{
		"Number of records processed per file: 3",
		"Number of duplicates removed: 1",
		"Number of missing values handled: 1",
		"Number of records loaded successfully: 1",
	} {
		if !strings.Contains(custSection, want) {
			t.Errorf("customers section missing %q:\n%s", want, custSection)
		}
	}

	prodSection := sectionOf(t, text, "PRODUCTS")
	for _, want := range []string{
		"Number of records processed per file: 2",
		"Number of duplicates removed: 0",
		"Number of missing values handled: 1",
		"Number of records loaded successfully: 1",
	} {
		if !strings.Contains(prodSection, want) {
			t.Errorf("products section missing %q:\n%s", want, prodSection)
		}
	}

	salesSection := sectionOf(t, text, "SALES")
	for _, want := range []string{
		"Number of records processed per file: 4",
		"Number of duplicates removed: 0",
		"Number of missing values handled: 0",
		"Number of records loaded successfully: 2",
	} {
		if !strings.Contains(salesSection, want) {
			t.Errorf("sales section missing %q:\n%s", want, salesSection)
		}
	}
}

// sectionOf slices one entity section out of the report text.
func sectionOf(t *testing.T, text, name string) string {
	t.Helper()
	i := strings.Index(text, name+"\n")
	if i < 0 {
		t.Fatalf("report has no %s section", name)
	}
	rest := text[i:]
	if j := strings.Index(rest, "\n\n"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func TestRunAbortsWhenSourceMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := fixtureConfig(t, dir)
	cfg.Sources.Products = filepath.Join(dir, "nope.csv")

	if err := run(context.Background(), cfg); err == nil {
		t.Fatal("run must fail when a source file is missing")
	}
	if _, err := os.Stat(cfg.Report.Path); !os.IsNotExist(err) {
		t.Fatal("no report may be written for a failed extract")
	}
}

func TestRunAbortsWhenStorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	cfg := fixtureConfig(t, dir)
	cfg.Storage.Kind = "nosuchdb"

	if err := run(context.Background(), cfg); err == nil {
		t.Fatal("run must fail when the storage backend is unknown")
	}
}
