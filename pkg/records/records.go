// Package records defines the row representation shared by the parser,
// transformer, and loader stages.
package records

import (
	"fmt"
	"strconv"
)

// Record is a single parsed row keyed by canonical column name. Parsers store
// nil for empty cells so that "missing" and "empty" are indistinguishable
// downstream, mirroring SQL NULL semantics.
type Record map[string]any

// Has reports whether key holds a usable value: present, non-nil, and not an
// empty string.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}

// String returns the value for key rendered as a string, or "" when the value
// is absent or nil. Non-string values are formatted with fmt.Sprint.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value for key as an int. Float values (including float
// strings such as "20.0") are truncated toward zero.
func (r Record) Int(key string) (int, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("field %q is empty", key)
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		if i, err := strconv.Atoi(t); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %q is not an integer", key, t)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("field %q: unsupported type %T", key, v)
	}
}

// Float returns the value for key as a float64.
func (r Record) Float(key string) (float64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("field %q is empty", key)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %q is not a number", key, t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q: unsupported type %T", key, v)
	}
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
