package builtin

import "fleximart/pkg/records"

// Require removes any record missing a value for one of the specified fields.
type Require struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that have all
// required fields present and non-empty. The input backing array is reused.
func (r Require) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			if !rec.Has(f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

// Field applies a normalization function to one field of every record,
// mutating records in place.
type Field struct {
	Name string
	Func func(any) any
}

// Apply rewrites rec[Name] with Func for every record.
func (f Field) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		rec[f.Name] = f.Func(rec[f.Name])
	}
	return in
}

// Default fills a field with Value when it is absent, nil, or empty.
type Default struct {
	Field string
	Value any
}

// Apply mutates records in place.
func (d Default) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		if !rec.Has(d.Field) {
			rec[d.Field] = d.Value
		}
	}
	return in
}

// Drop removes the named fields from every record. Used to discard legacy
// source columns that have no destination.
type Drop struct {
	Fields []string
}

// Apply mutates records in place.
func (d Drop) Apply(in []records.Record) []records.Record {
	for _, rec := range in {
		for _, f := range d.Fields {
			delete(rec, f)
		}
	}
	return in
}
