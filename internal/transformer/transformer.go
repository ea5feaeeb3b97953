// Package transformer cleans the raw extracts. Field-level rules live in the
// builtin subpackage; this package assembles them into the three entity
// transforms and accounts for every dropped row.
package transformer

import "fleximart/pkg/records"

// Transformer rewrites or filters a batch of records.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order over the batch.
func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		if t == nil {
			continue
		}
		out = t.Apply(out)
	}
	return out
}
