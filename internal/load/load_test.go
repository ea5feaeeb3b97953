package load_test

import (
	"context"
	"path/filepath"
	"testing"

	"fleximart/internal/load"
	"fleximart/internal/storage"
	_ "fleximart/internal/storage/all"
	"fleximart/pkg/records"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	ctx := context.Background()
	st, err := storage.Open(ctx, storage.Config{
		Kind:     "sqlite",
		Database: filepath.Join(t.TempDir(), "load_test.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return st
}

func customerRec(id, email string) records.Record {
	return records.Record{
		"customer_id":       id,
		"first_name":        "Asha",
		"last_name":         "Rao",
		"email":             email,
		"phone":             "+91-9876543210",
		"city":              "Mumbai",
		"registration_date": "2023-01-15",
	}
}

func productRec(id, name string, price any) records.Record {
	return records.Record{
		"product_id":     id,
		"product_name":   name,
		"category":       "Electronics",
		"price":          price,
		"stock_quantity": 25,
	}
}

func saleRec(custID, prodID string) records.Record {
	return records.Record{
		"customer_id":      custID,
		"product_id":       prodID,
		"transaction_date": "2023-06-01",
		"quantity":         2,
		"unit_price":       499.5,
	}
}

func TestCustomersBuildsKeyMap(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	recs := []records.Record{
		customerRec("C001", "asha@example.com"),
		customerRec("C002", "ravi@example.com"),
	}
	loaded, ids, err := load.Customers(ctx, st, recs)
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if loaded != 2 {
		t.Fatalf("loaded = %d, want 2", loaded)
	}
	if len(ids) != 2 {
		t.Fatalf("key map size = %d, want 2", len(ids))
	}
	if ids["C001"] == 0 || ids["C002"] == 0 || ids["C001"] == ids["C002"] {
		t.Fatalf("surrogate keys not distinct and nonzero: %v", ids)
	}
}

func TestCustomersSkipsFailedInsert(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	// Duplicate email violates the unique constraint; the first row wins
	// and the batch still commits.
	recs := []records.Record{
		customerRec("C001", "same@example.com"),
		customerRec("C002", "same@example.com"),
		customerRec("C003", "other@example.com"),
	}
	loaded, ids, err := load.Customers(ctx, st, recs)
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if loaded != 2 {
		t.Fatalf("loaded = %d, want 2", loaded)
	}
	if _, ok := ids["C002"]; ok {
		t.Fatalf("skipped row must not appear in the key map")
	}
}

func TestProductsSkipsUnparsablePrice(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	recs := []records.Record{
		productRec("P001", "Wireless Mouse", 599.0),
		productRec("P002", "Broken Row", "not-a-price"),
	}
	loaded, ids, err := load.Products(ctx, st, recs)
	if err != nil {
		t.Fatalf("load products: %v", err)
	}
	if loaded != 1 {
		t.Fatalf("loaded = %d, want 1", loaded)
	}
	if _, ok := ids["P002"]; ok {
		t.Fatalf("unparsable row must not appear in the key map")
	}
}

func TestSalesResolvesReferencesAndSkipsUnmapped(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	_, custIDs, err := load.Customers(ctx, st, []records.Record{
		customerRec("C001", "asha@example.com"),
	})
	if err != nil {
		t.Fatalf("load customers: %v", err)
	}
	_, prodIDs, err := load.Products(ctx, st, []records.Record{
		productRec("P001", "Wireless Mouse", 599.0),
	})
	if err != nil {
		t.Fatalf("load products: %v", err)
	}

	recs := []records.Record{
		saleRec("C001", "P001"),
		saleRec("C999", "P001"), // customer never loaded
		saleRec("C001", "P999"), // product never loaded
	}
	loaded, err := load.Sales(ctx, st, recs, custIDs, prodIDs)
	if err != nil {
		t.Fatalf("load sales: %v", err)
	}
	if loaded != 1 {
		t.Fatalf("loaded = %d, want 1", loaded)
	}

	var orders, items int
	if err := st.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&orders); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if err := st.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM order_items").Scan(&items); err != nil {
		t.Fatalf("count order_items: %v", err)
	}
	if orders != 1 || items != 1 {
		t.Fatalf("orders = %d, items = %d, want 1 and 1", orders, items)
	}

	var total float64
	var status string
	if err := st.DB().QueryRowContext(ctx, "SELECT total_amount, status FROM orders").Scan(&total, &status); err != nil {
		t.Fatalf("read order: %v", err)
	}
	if total != 999.0 {
		t.Fatalf("total_amount = %v, want 999", total)
	}
	if status != "Completed" {
		t.Fatalf("status = %q, want Completed", status)
	}
}
