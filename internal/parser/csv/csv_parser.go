// Package csv parses a delimited extract into records keyed by canonical
// header names. Malformed rows are soft-skipped and counted rather than
// aborting the whole file.
package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jfyne/csvd"

	"fleximart/pkg/records"
)

// Options configures the parser. All fields are optional; sensible defaults
// are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero the delimiter is
	// auto-detected from a sample of the input.
	Comma rune

	// TrimSpace trims leading/trailing whitespace from each field value.
	TrimSpace bool

	// ExpectedFields, when > 0, fixes the field count. With HasHeader it is
	// checked against the header width and a mismatch fails the whole parse;
	// without a header it synthesizes col_N keys.
	ExpectedFields int

	// HeaderMap maps source header names to canonical keys. Only applies when
	// HasHeader is true.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps per-row skip logging so a corrupt file cannot flood logs.
const skipLogLimit = 20

// Parse consumes CSV records from r and returns the parsed rows along with
// the number of rows skipped due to parse errors or field-count mismatches.
// Empty cells become nil so downstream stages can treat them as missing.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	var cr *stdcsv.Reader
	if p.opt.Comma != 0 {
		cr = stdcsv.NewReader(r)
		cr.Comma = p.opt.Comma
	} else {
		// Delimiter sniffing from a sample of the stream.
		cr = csvd.NewReader(r)
	}
	cr.FieldsPerRecord = -1 // width is enforced below, against the header

	var headers []string
	var out []records.Record
	var skipped int

	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = normalizeHeaders(h, p.opt)
		if p.opt.ExpectedFields > 0 && len(headers) != p.opt.ExpectedFields {
			return nil, 0, fmt.Errorf("csv header has %d columns, expected %d", len(headers), p.opt.ExpectedFields)
		}
	} else if p.opt.ExpectedFields > 0 {
		headers = make([]string, p.opt.ExpectedFields)
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i)
		}
	}

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if len(headers) > 0 && len(row) != len(headers) {
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil; other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys using HeaderMap (when
// provided) and simple normalization (lowercase, spaces to underscores). It
// also strips a UTF-8 BOM from the first cell if present.
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if opt.HeaderMap != nil {
			if m, ok := opt.HeaderMap[c]; ok {
				res[i] = m
				continue
			}
		}
		res[i] = strings.ReplaceAll(strings.ToLower(c), " ", "_")
	}
	return res
}
