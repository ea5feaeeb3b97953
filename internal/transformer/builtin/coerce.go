package builtin

import (
	"strconv"

	"fleximart/pkg/records"
)

// Coerce converts string field values to typed ones in place. Values that are
// already typed, absent, or unconvertible are left untouched; required-field
// validation and load-time parsing deal with the leftovers.
type Coerce struct {
	// Types maps field name to one of: "int", "float", "string".
	Types map[string]string
}

// Apply mutates records in place.
func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Types) == 0 {
		return in
	}
	for _, rec := range in {
		for field, typ := range c.Types {
			v, ok := rec[field]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			switch typ {
			case "int":
				if i, err := strconv.Atoi(s); err == nil {
					rec[field] = i
				} else if f, err := strconv.ParseFloat(s, 64); err == nil {
					// Float-formatted integers ("20.0") truncate toward zero.
					rec[field] = int(f)
				}
			case "float":
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					rec[field] = f
				}
			case "string":
				// already string
			}
		}
	}
	return in
}
