// This file wires the batch pipeline end-to-end: extract the three CSV
// sources, clean them, load them into storage in foreign-key order, and
// render the data quality report. The CLI layer stays thin: everything here
// depends on storage-agnostic interfaces and never imports database drivers
// or backend-specific packages directly.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleximart/internal/config"
	"fleximart/internal/datasource/file"
	"fleximart/internal/load"
	"fleximart/internal/metrics"
	csvparser "fleximart/internal/parser/csv"
	"fleximart/internal/report"
	"fleximart/internal/storage"
	"fleximart/internal/transformer"
	"fleximart/pkg/records"
)

const consoleRule = 70

// extract reads one CSV extract into memory. The expected column set pins
// the header width so short rows are skipped rather than misaligned.
func extract(ctx context.Context, path string, columns []string) ([]records.Record, error) {
	src := file.NewLocal(path)
	r, err := src.Open(ctx)
	if err != nil {
		fmt.Printf("✗ Error: cannot read %s\n", path)
		return nil, err
	}
	defer r.Close()

	p := csvparser.NewParser(csvparser.Options{
		HasHeader:      true,
		TrimSpace:      true,
		ExpectedFields: len(columns),
	})
	recs, skipped, err := p.Parse(r)
	if err != nil {
		fmt.Printf("✗ Error reading %s: %v\n", path, err)
		return nil, err
	}
	if skipped > 0 {
		fmt.Printf("  Skipped %d malformed rows in %s\n", skipped, path)
	}
	fmt.Printf("✓ Loaded %d records from %s\n", len(recs), path)
	return recs, nil
}

// run executes the full batch pipeline described by cfg.
//
// Phase order is fixed: all three extracts are read (and their counts
// recorded) before the pipeline decides whether to abort, so a connection
// failure later still leaves accurate extract counts behind. Quality drops
// are counters, never errors; only a missing source or a failed storage
// connection aborts the run.
func run(ctx context.Context, cfg config.Config) error {
	fmt.Println("\n" + strings.Repeat("=", consoleRule))
	fmt.Println("FLEXIMART ETL PIPELINE - STARTED")
	fmt.Println(strings.Repeat("=", consoleRule))

	var rep report.Report

	// ---- extract ----
	fmt.Println("\n[PHASE 1: EXTRACT]")
	fmt.Println(strings.Repeat("-", consoleRule))

	phaseStart := time.Now()
	customersRaw, custErr := extract(ctx, cfg.Sources.Customers, transformer.CustomerColumns)
	productsRaw, prodErr := extract(ctx, cfg.Sources.Products, transformer.ProductColumns)
	salesRaw, salesErr := extract(ctx, cfg.Sources.Sales, transformer.SalesColumns)

	rep.Customers.Processed = len(customersRaw)
	rep.Products.Processed = len(productsRaw)
	rep.Sales.Processed = len(salesRaw)

	extractErr := firstErr(custErr, prodErr, salesErr)
	metrics.RecordPhase(cfg.Job, "extract", extractErr, time.Since(phaseStart))
	if extractErr != nil {
		return fmt.Errorf("unable to extract all required data: %w", extractErr)
	}
	metrics.RecordRows(cfg.Job, "customers", "processed", rep.Customers.Processed)
	metrics.RecordRows(cfg.Job, "products", "processed", rep.Products.Processed)
	metrics.RecordRows(cfg.Job, "sales", "processed", rep.Sales.Processed)

	// ---- transform ----
	fmt.Println("\n[PHASE 2: TRANSFORM]")
	fmt.Println(strings.Repeat("-", consoleRule))

	phaseStart = time.Now()

	fmt.Println("\n--- Transforming Customer Data ---")
	customersClean, custStats := transformer.Customers(customersRaw)
	fmt.Printf("  Removed %d duplicate records\n", custStats.DuplicatesRemoved)
	fmt.Printf("  Dropped %d records with missing emails\n", custStats.MissingEmails)
	fmt.Println("  Standardized phone numbers")
	fmt.Println("  Standardized registration dates")
	fmt.Printf("  Final count: %d clean records\n", custStats.Final)

	fmt.Println("\n--- Transforming Product Data ---")
	productsClean, prodStats := transformer.Products(productsRaw)
	fmt.Printf("  Removed %d duplicate records\n", prodStats.DuplicatesRemoved)
	fmt.Println("  Cleaned product names")
	fmt.Println("  Standardized category names")
	fmt.Printf("  Dropped %d products with missing prices\n", prodStats.MissingPrices)
	fmt.Printf("  Filled %d missing stock values with 0\n", prodStats.MissingStock)
	fmt.Printf("  Final count: %d clean records\n", prodStats.Final)

	fmt.Println("\n--- Transforming Sales Data ---")
	salesClean, salesStats := transformer.Sales(salesRaw)
	fmt.Printf("  Removed %d duplicate records\n", salesStats.DuplicatesRemoved)
	fmt.Println("  Standardized transaction dates")
	fmt.Printf("  Dropped %d records with missing critical fields\n", salesStats.MissingDropped)
	fmt.Printf("  Final count: %d clean records\n", salesStats.Final)

	rep.Customers.DuplicatesRemoved = custStats.DuplicatesRemoved
	rep.Customers.MissingHandled = custStats.MissingEmails
	rep.Products.DuplicatesRemoved = prodStats.DuplicatesRemoved
	rep.Products.MissingHandled = prodStats.MissingPrices + prodStats.MissingStock
	rep.Sales.DuplicatesRemoved = salesStats.DuplicatesRemoved
	rep.Sales.MissingHandled = salesStats.MissingDropped

	metrics.RecordPhase(cfg.Job, "transform", nil, time.Since(phaseStart))
	metrics.RecordRows(cfg.Job, "customers", "duplicates_removed", custStats.DuplicatesRemoved)
	metrics.RecordRows(cfg.Job, "customers", "missing_handled", custStats.MissingEmails)
	metrics.RecordRows(cfg.Job, "products", "duplicates_removed", prodStats.DuplicatesRemoved)
	metrics.RecordRows(cfg.Job, "products", "missing_handled", rep.Products.MissingHandled)
	metrics.RecordRows(cfg.Job, "sales", "duplicates_removed", salesStats.DuplicatesRemoved)
	metrics.RecordRows(cfg.Job, "sales", "missing_handled", salesStats.MissingDropped)

	// ---- load ----
	fmt.Println("\n[PHASE 3: LOAD]")
	fmt.Println(strings.Repeat("-", consoleRule))

	phaseStart = time.Now()
	st, err := storage.Open(ctx, storage.Config{
		Kind:     cfg.Storage.Kind,
		DSN:      cfg.Storage.DSN,
		Host:     cfg.Storage.Host,
		Port:     cfg.Storage.Port,
		User:     cfg.Storage.User,
		Password: cfg.Storage.Password,
		Database: cfg.Storage.Database,
	})
	if err != nil {
		metrics.RecordPhase(cfg.Job, "load", err, time.Since(phaseStart))
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer st.Close()
	fmt.Println("✓ Successfully connected to database")

	if cfg.Storage.AutoCreateTable {
		if err := st.EnsureSchema(ctx); err != nil {
			metrics.RecordPhase(cfg.Job, "load", err, time.Since(phaseStart))
			return fmt.Errorf("create schema: %w", err)
		}
	}

	// Load in foreign-key order: customers and products first, then sales.
	fmt.Println("\nLoading customers...")
	customersLoaded, customerIDs, err := load.Customers(ctx, st, customersClean)
	if err != nil {
		metrics.RecordPhase(cfg.Job, "load", err, time.Since(phaseStart))
		return err
	}
	metrics.RecordBatch(cfg.Job)

	fmt.Println("\nLoading products...")
	productsLoaded, productIDs, err := load.Products(ctx, st, productsClean)
	if err != nil {
		metrics.RecordPhase(cfg.Job, "load", err, time.Since(phaseStart))
		return err
	}
	metrics.RecordBatch(cfg.Job)

	fmt.Println("\nLoading sales (orders)...")
	ordersLoaded, err := load.Sales(ctx, st, salesClean, customerIDs, productIDs)
	if err != nil {
		metrics.RecordPhase(cfg.Job, "load", err, time.Since(phaseStart))
		return err
	}
	metrics.RecordBatch(cfg.Job)

	fmt.Println("\n✓ All data loaded successfully!")

	rep.Customers.Loaded = customersLoaded
	rep.Products.Loaded = productsLoaded
	rep.Sales.Loaded = ordersLoaded

	metrics.RecordPhase(cfg.Job, "load", nil, time.Since(phaseStart))
	metrics.RecordRows(cfg.Job, "customers", "loaded", customersLoaded)
	metrics.RecordRows(cfg.Job, "products", "loaded", productsLoaded)
	metrics.RecordRows(cfg.Job, "sales", "loaded", ordersLoaded)

	// ---- report ----
	fmt.Println("\n[PHASE 4: REPORTING]")
	fmt.Println(strings.Repeat("-", consoleRule))

	phaseStart = time.Now()
	err = rep.WriteFile(cfg.Report.Path)
	metrics.RecordPhase(cfg.Job, "report", err, time.Since(phaseStart))
	if err != nil {
		return err
	}

	fmt.Println("\n" + strings.Repeat("=", consoleRule))
	fmt.Println("FLEXIMART ETL PIPELINE - COMPLETED")
	fmt.Println(strings.Repeat("=", consoleRule))
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
