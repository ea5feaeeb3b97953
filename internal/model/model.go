// Package model defines the persisted entities and their construction from
// cleaned records. Natural keys identify rows in the source extracts;
// surrogate keys are assigned by storage at insert time.
package model

import (
	"fmt"

	"fleximart/pkg/records"
)

// Customer is a cleaned customer row ready for insertion. Phone and
// RegistrationDate may be empty, which storage persists as NULL.
type Customer struct {
	NaturalID        string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	City             string
	RegistrationDate string
}

// CustomerFromRecord builds a Customer from a cleaned record.
func CustomerFromRecord(r records.Record) Customer {
	return Customer{
		NaturalID:        r.String("customer_id"),
		FirstName:        r.String("first_name"),
		LastName:         r.String("last_name"),
		Email:            r.String("email"),
		Phone:            r.String("phone"),
		City:             r.String("city"),
		RegistrationDate: r.String("registration_date"),
	}
}

// Product is a cleaned product row ready for insertion.
type Product struct {
	NaturalID string
	Name      string
	Category  string
	Price     float64
	Stock     int
}

// ProductFromRecord builds a Product from a cleaned record. Price survives
// the transform as a required field but can still fail numeric parsing; that
// surfaces here so the loader can skip the row.
func ProductFromRecord(r records.Record) (Product, error) {
	price, err := r.Float("price")
	if err != nil {
		return Product{}, fmt.Errorf("product %s: %w", r.String("product_name"), err)
	}
	stock, err := r.Int("stock_quantity")
	if err != nil {
		return Product{}, fmt.Errorf("product %s: %w", r.String("product_name"), err)
	}
	return Product{
		NaturalID: r.String("product_id"),
		Name:      r.String("product_name"),
		Category:  r.String("category"),
		Price:     price,
		Stock:     stock,
	}, nil
}

// Sale is a cleaned sales row. It is never persisted directly; the loader
// decomposes it into an Order and an OrderItem once both natural references
// resolve to surrogate keys.
type Sale struct {
	CustomerRef string // natural customer key
	ProductRef  string // natural product key
	Date        string
	UnitPrice   float64
	Quantity    int
	Status      string // empty means not supplied; defaulted at load
}

// SaleFromRecord builds a Sale from a cleaned record.
func SaleFromRecord(r records.Record) (Sale, error) {
	price, err := r.Float("unit_price")
	if err != nil {
		return Sale{}, fmt.Errorf("sale for customer %s: %w", r.String("customer_id"), err)
	}
	qty, err := r.Int("quantity")
	if err != nil {
		return Sale{}, fmt.Errorf("sale for customer %s: %w", r.String("customer_id"), err)
	}
	return Sale{
		CustomerRef: r.String("customer_id"),
		ProductRef:  r.String("product_id"),
		Date:        r.String("transaction_date"),
		UnitPrice:   price,
		Quantity:    qty,
		Status:      r.String("status"),
	}, nil
}

// Order is one persisted order, derived from a Sale.
type Order struct {
	CustomerID int64 // customer surrogate key
	Date       string
	Total      float64
	Status     string
}

// OrderItem is the single line item of an Order.
type OrderItem struct {
	OrderID   int64 // order surrogate key
	ProductID int64 // product surrogate key
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}
