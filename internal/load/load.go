// Package load writes cleaned records into storage one row at a time,
// capturing the surrogate key each insert assigns. The natural→surrogate
// maps built here live only for the duration of one run; the sales loader
// consumes them to resolve foreign keys and they are discarded afterwards.
//
// Failure semantics are row-granular: an insert failure is logged with
// identifying context and the row is skipped, while the batch transaction
// carries on and commits the surviving rows at the end. A sales row whose
// natural reference never made it into a map is skipped without a log line;
// the lower loaded count is its only trace.
package load

import (
	"context"
	"fmt"
	"log"

	"fleximart/internal/model"
	"fleximart/internal/storage"
	"fleximart/pkg/records"
)

// defaultOrderStatus is applied when a sale carries no status.
const defaultOrderStatus = "Completed"

// Customers persists the cleaned customer batch in one transaction and
// returns the loaded count plus the natural→surrogate key map. Only rows
// that actually inserted appear in the map.
func Customers(ctx context.Context, st *storage.Store, recs []records.Record) (int, map[string]int64, error) {
	tx, err := st.Begin(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("begin customers batch: %w", err)
	}

	idMap := make(map[string]int64, len(recs))
	loaded := 0
	for _, rec := range recs {
		c := model.CustomerFromRecord(rec)
		id, err := st.InsertCustomer(ctx, tx, c)
		if err != nil {
			log.Printf("insert customer %s: %v", c.Email, err)
			continue
		}
		idMap[c.NaturalID] = id
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("commit customers batch: %w", err)
	}
	fmt.Printf("  Loaded %d customers into database\n", loaded)
	return loaded, idMap, nil
}

// Products persists the cleaned product batch in one transaction and returns
// the loaded count plus the natural→surrogate key map.
func Products(ctx context.Context, st *storage.Store, recs []records.Record) (int, map[string]int64, error) {
	tx, err := st.Begin(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("begin products batch: %w", err)
	}

	idMap := make(map[string]int64, len(recs))
	loaded := 0
	for _, rec := range recs {
		p, err := model.ProductFromRecord(rec)
		if err != nil {
			log.Printf("insert product: %v", err)
			continue
		}
		id, err := st.InsertProduct(ctx, tx, p)
		if err != nil {
			log.Printf("insert product %s: %v", p.Name, err)
			continue
		}
		idMap[p.NaturalID] = id
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("commit products batch: %w", err)
	}
	fmt.Printf("  Loaded %d products into database\n", loaded)
	return loaded, idMap, nil
}

// Sales decomposes each cleaned sale into an order and its single order item,
// resolving the natural customer and product references through the supplied
// maps. A sale whose reference is absent from either map was dropped upstream
// and is skipped silently. The whole batch commits in one transaction.
//
// The order and its item are not atomic with each other: if the item insert
// fails after the order inserted, the order row stays in the batch.
func Sales(ctx context.Context, st *storage.Store, recs []records.Record, customerIDs, productIDs map[string]int64) (int, error) {
	tx, err := st.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin sales batch: %w", err)
	}

	loaded := 0
	for _, rec := range recs {
		s, err := model.SaleFromRecord(rec)
		if err != nil {
			log.Printf("insert order: %v", err)
			continue
		}

		customerID, ok := customerIDs[s.CustomerRef]
		if !ok {
			continue
		}
		productID, ok := productIDs[s.ProductRef]
		if !ok {
			continue
		}

		status := s.Status
		if status == "" {
			status = defaultOrderStatus
		}
		total := s.UnitPrice * float64(s.Quantity)

		orderID, err := st.InsertOrder(ctx, tx, model.Order{
			CustomerID: customerID,
			Date:       s.Date,
			Total:      total,
			Status:     status,
		})
		if err != nil {
			log.Printf("insert order for customer %s: %v", s.CustomerRef, err)
			continue
		}

		if _, err := st.InsertOrderItem(ctx, tx, model.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			Subtotal:  total,
		}); err != nil {
			log.Printf("insert order item for product %s: %v", s.ProductRef, err)
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sales batch: %w", err)
	}
	fmt.Printf("  Loaded %d orders into database\n", loaded)
	return loaded, nil
}
