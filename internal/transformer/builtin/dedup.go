package builtin

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"fleximart/pkg/records"
)

// DeDup removes exact-duplicate records, keeping the first occurrence.
//
// A record's identity is the xxh3 hash of its values for Columns, joined in
// column order. Two records are duplicates only when every listed column
// matches, including nil-vs-nil, so this is pandas drop_duplicates semantics
// rather than business-key dedup. Run DeDup before field normalization so
// near-duplicates that normalize to the same value are not collapsed.
type DeDup struct {
	// Columns fixes the field order the identity hash is computed over.
	Columns []string
}

// Apply filters in place, reusing the input slice's backing array, and
// returns the surviving records in their original order.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Columns) == 0 {
		return in
	}

	seen := make(map[uint64]struct{}, len(in))
	out := in[:0]
	for _, rec := range in {
		h := xxh3.HashString(identityKey(rec, d.Columns))
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// identityKey concatenates the record's column values with unambiguous
// separators: \x00 marks nil, \x1f separates fields.
func identityKey(rec records.Record, columns []string) string {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		switch v := rec[col].(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(v)
		default:
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}
