// This file adds a lightweight linter for Config values. It performs static
// checks over a decoded Config and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users but
	// does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "storage.kind", "sources.customers").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownKinds lists the storage backends compiled into the binary via
// internal/storage/all. Unknown kinds are warnings for forward compatibility;
// the storage factory is the authority at open time.
var knownKinds = map[string]bool{
	"mysql":    true,
	"postgres": true,
	"sqlite":   true,
}

// Validate performs static validation of a Config. It does not mutate the
// config; callers decide whether warnings are fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	issues = append(issues, validateSources(c.Sources)...)
	issues = append(issues, validateStorage(c.Storage)...)

	if strings.TrimSpace(c.Report.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "report.path",
			Message:  fmt.Sprintf("report.path is empty; defaulting to %q", DefaultReportPath),
		})
	}

	return issues
}

func validateSources(s Sources) []Issue {
	var issues []Issue

	paths := []struct {
		path, value string
	}{
		{"sources.customers", s.Customers},
		{"sources.products", s.Products},
		{"sources.sales", s.Sales},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     p.path,
				Message:  "source file path must not be empty",
			})
		}
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	kind := strings.TrimSpace(s.Kind)
	if kind == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
		return issues
	}
	if !knownKinds[kind] {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage.kind %q; the storage factory may still support it", kind),
		})
	}

	if s.DSN != "" {
		// A verbatim DSN overrides the individual connection fields.
		return issues
	}

	if strings.TrimSpace(s.Database) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.database",
			Message:  "either storage.dsn or storage.database must be set",
		})
	}
	if kind != "sqlite" && strings.TrimSpace(s.Host) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.host",
			Message:  "storage.host is empty; the dialect default will be used",
		})
	}
	return issues
}

// HasErrors reports whether any issue in the slice is of error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
