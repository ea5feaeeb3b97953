package transformer

import (
	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// ProductColumns is the canonical column order of the products extract.
var ProductColumns = []string{
	"product_id", "product_name", "category", "price", "stock_quantity",
}

// ProductStats accounts for every product row:
// Initial = DuplicatesRemoved + MissingPrices + Final.
// MissingStock counts defaulted values, not drops.
type ProductStats struct {
	Initial           int
	DuplicatesRemoved int
	MissingPrices     int
	MissingStock      int
	Final             int
}

// Products cleans the raw product extract: exact duplicates are removed,
// product names are trimmed, categories are normalized (defaulting to
// "Uncategorized"), rows without the required price are dropped, and absent
// stock quantities default to 0 before integer coercion.
func Products(in []records.Record) ([]records.Record, ProductStats) {
	st := ProductStats{Initial: len(in)}

	deduped := builtin.DeDup{Columns: ProductColumns}.Apply(in)
	st.DuplicatesRemoved = st.Initial - len(deduped)

	cleaned := Chain{
		builtin.Field{Name: "product_name", Func: builtin.Trim},
		builtin.Field{Name: "category", Func: builtin.NormalizeCategory},
	}.Apply(deduped)

	kept := builtin.Require{Fields: []string{"price"}}.Apply(cleaned)
	st.MissingPrices = len(cleaned) - len(kept)

	for _, rec := range kept {
		if !rec.Has("stock_quantity") {
			st.MissingStock++
		}
	}

	out := Chain{
		builtin.Default{Field: "stock_quantity", Value: 0},
		builtin.Coerce{Types: map[string]string{"stock_quantity": "int"}},
	}.Apply(kept)

	st.Final = len(out)
	return out, st
}
