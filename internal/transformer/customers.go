package transformer

import (
	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// CustomerColumns is the canonical column order of the customers extract. It
// fixes the field order for duplicate detection.
var CustomerColumns = []string{
	"customer_id", "first_name", "last_name", "email",
	"phone", "city", "registration_date",
}

// CustomerStats accounts for every customer row:
// Initial = DuplicatesRemoved + MissingEmails + Final.
type CustomerStats struct {
	Initial           int
	DuplicatesRemoved int
	MissingEmails     int
	Final             int
}

// Customers cleans the raw customer extract: exact duplicates are removed,
// rows without the required email are dropped, phone and registration date
// are normalized, and absent cities default to "Unknown" before title-casing.
//
// The input slice is consumed; only the returned slice is valid afterwards.
// Progress reporting is the caller's job.
func Customers(in []records.Record) ([]records.Record, CustomerStats) {
	st := CustomerStats{Initial: len(in)}

	deduped := builtin.DeDup{Columns: CustomerColumns}.Apply(in)
	st.DuplicatesRemoved = st.Initial - len(deduped)

	kept := builtin.Require{Fields: []string{"email"}}.Apply(deduped)
	st.MissingEmails = len(deduped) - len(kept)

	out := Chain{
		builtin.Field{Name: "phone", Func: builtin.NormalizePhone},
		builtin.Field{Name: "registration_date", Func: builtin.NormalizeDate},
		builtin.Default{Field: "city", Value: "Unknown"},
		builtin.Field{Name: "city", Func: builtin.TitleCase},
	}.Apply(kept)

	st.Final = len(out)
	return out, st
}
