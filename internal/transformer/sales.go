package transformer

import (
	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// SalesColumns is the canonical column order of the sales extract. The legacy
// transaction_id participates in duplicate detection but is discarded after.
var SalesColumns = []string{
	"transaction_id", "customer_id", "product_id",
	"transaction_date", "unit_price", "quantity", "status",
}

// salesCritical are the fields a sale cannot be loaded without. Drops are
// counted as one combined number, not broken out per field.
var salesCritical = []string{"customer_id", "product_id", "transaction_date", "unit_price"}

// SalesStats accounts for every sales row:
// Initial = DuplicatesRemoved + MissingDropped + Final.
type SalesStats struct {
	Initial           int
	DuplicatesRemoved int
	MissingDropped    int
	Final             int
}

// Sales cleans the raw sales extract: exact duplicates are removed, the
// transaction date is normalized, rows missing any critical field (customer
// reference, product reference, date, unit price) are dropped, absent
// quantities default to 1, and the legacy transaction identifier is
// discarded.
//
// Date normalization runs before the critical-field check so that an
// unparseable date counts as a missing-field drop.
func Sales(in []records.Record) ([]records.Record, SalesStats) {
	st := SalesStats{Initial: len(in)}

	deduped := builtin.DeDup{Columns: SalesColumns}.Apply(in)
	st.DuplicatesRemoved = st.Initial - len(deduped)

	dated := builtin.Field{Name: "transaction_date", Func: builtin.NormalizeDate}.Apply(deduped)

	kept := builtin.Require{Fields: salesCritical}.Apply(dated)
	st.MissingDropped = len(dated) - len(kept)

	out := Chain{
		builtin.Default{Field: "quantity", Value: 1},
		builtin.Coerce{Types: map[string]string{"quantity": "int"}},
		builtin.Drop{Fields: []string{"transaction_id"}},
	}.Apply(kept)

	st.Final = len(out)
	return out, st
}
