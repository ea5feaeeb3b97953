// Package report renders the per-run data quality summary. The layout is
// fixed: downstream tooling diffs successive report files, so Render must
// produce byte-identical output for identical inputs.
package report

import (
	"fmt"
	"os"
	"strings"
)

const ruleWidth = 70

// Section summarizes one entity's pass through the pipeline.
type Section struct {
	Processed         int // rows parsed from the extract
	DuplicatesRemoved int
	MissingHandled    int // rows dropped or defaulted for missing critical fields
	Loaded            int // rows that reached storage
}

// Report aggregates the three entity sections for one run.
type Report struct {
	Customers Section
	Products  Section
	Sales     Section
}

// Render produces the full report text, trailing newline included.
func (r Report) Render() string {
	lines := []string{
		"DATA QUALITY REPORT",
		strings.Repeat("=", ruleWidth),
		"",
	}
	lines = append(lines, sectionLines("CUSTOMERS", r.Customers)...)
	lines = append(lines, sectionLines("PRODUCTS", r.Products)...)
	lines = append(lines, sectionLines("SALES", r.Sales)...)
	return strings.Join(lines, "\n")
}

func sectionLines(name string, s Section) []string {
	return []string{
		name,
		strings.Repeat("-", ruleWidth),
		fmt.Sprintf("Number of records processed per file: %d", s.Processed),
		fmt.Sprintf("Number of duplicates removed: %d", s.DuplicatesRemoved),
		fmt.Sprintf("Number of missing values handled: %d", s.MissingHandled),
		fmt.Sprintf("Number of records loaded successfully: %d", s.Loaded),
		"",
	}
}

// WriteFile renders the report, overwrites path with it, then echoes the same
// text to stdout so a console run shows the summary without opening the file.
func (r Report) WriteFile(path string) error {
	text := r.Render()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Print("\n" + text)
	fmt.Printf("✓ Report saved to %s\n", path)
	return nil
}
