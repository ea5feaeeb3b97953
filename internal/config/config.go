// Package config defines the typed configuration model for the FlexiMart
// batch ETL. A config file names the three source extracts, the storage
// backend, and the report destination; it is decoded from JSON or YAML
// (chosen by file extension) and threaded explicitly from main into the
// pipeline. Nothing in this package is ambient state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultReportPath is where the data quality report is written when the
// config does not name a path. The file is overwritten on each run.
const DefaultReportPath = "data_quality_report.txt"

// Config is the top-level object decoded from a config file.
type Config struct {
	// Job names the pipeline run for logging and metrics labeling.
	Job string `json:"job" yaml:"job"`

	// Sources names the three CSV extracts the pipeline ingests.
	Sources Sources `json:"sources" yaml:"sources"`

	// Storage selects and configures the relational backend.
	Storage Storage `json:"storage" yaml:"storage"`

	// Report configures the data quality report output.
	Report Report `json:"report" yaml:"report"`
}

// Sources holds the paths of the raw CSV extracts.
type Sources struct {
	Customers string `json:"customers" yaml:"customers"`
	Products  string `json:"products" yaml:"products"`
	Sales     string `json:"sales" yaml:"sales"`
}

// Storage configures the database sink. Either DSN is given verbatim, or the
// host/user/password/database fields are combined into one by the selected
// backend dialect.
type Storage struct {
	// Kind selects the storage backend: "mysql", "postgres", or "sqlite".
	Kind string `json:"kind" yaml:"kind"`

	// DSN, when non-empty, is passed to the driver as-is and the individual
	// connection fields below are ignored.
	DSN string `json:"dsn" yaml:"dsn"`

	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`

	// Database is the database name; for sqlite it is the file path.
	Database string `json:"database" yaml:"database"`

	// AutoCreateTable creates the four destination tables before loading.
	AutoCreateTable bool `json:"auto_create_table" yaml:"auto_create_table"`
}

// Report configures the quality report sink.
type Report struct {
	// Path is the report file path; DefaultReportPath when empty.
	Path string `json:"path" yaml:"path"`
}

// Load reads and decodes the config file at path. Files ending in .yaml or
// .yml are decoded as YAML; everything else is decoded as JSON. Defaults are
// applied after decoding.
func Load(path string) (Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Job) == "" {
		c.Job = "fleximart_etl"
	}
	if strings.TrimSpace(c.Report.Path) == "" {
		c.Report.Path = DefaultReportPath
	}
}
