// Package main provides a standalone import script that reads a family tree
// from a flat JSON file and writes it to the kingraph PostgreSQL registry.
//
// Usage:
//
//	TREE_FILE=/path/to/tree.json DATABASE_URL=postgres://... go run ./scripts/import
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kinviz/kingraph/internal/memgraph"
)

// config holds environment-driven import settings.
type config struct {
	TreeFile    string
	DatabaseURL string
	DryRun      bool
}

// report holds the final import summary.
type report struct {
	Source           string
	Target           string
	PersonsRead      int
	PersonsInserted  int
	PersonsVerified  int
	FamiliesRead     int
	FamiliesInserted int
	FamiliesVerified int
	ChildrenInserted int
	Duration         time.Duration
	DryRun           bool
	Err              error
}

func main() {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	slog.Info("starting import",
		"tree_file", cfg.TreeFile,
		"dry_run", cfg.DryRun,
	)

	start := time.Now()
	r, err := runImport(context.Background(), cfg)
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = err
		slog.Error("import failed", "error", err)
	}
	printReport(&r)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables.
func loadConfig() config {
	return config{
		TreeFile:    envOr("TREE_FILE", "tree.json"),
		DatabaseURL: envOr("DATABASE_URL", ""),
		DryRun:      os.Getenv("DRY_RUN") == "true" || os.Getenv("DRY_RUN") == "1",
	}
}

// runImport executes the full import pipeline.
func runImport(ctx context.Context, cfg config) (report, error) {
	r := report{
		Source: cfg.TreeFile,
		Target: sanitizeURL(cfg.DatabaseURL),
		DryRun: cfg.DryRun,
	}

	tree, err := readTree(cfg.TreeFile)
	if err != nil {
		return r, fmt.Errorf("read tree file: %w", err)
	}
	r.PersonsRead = len(tree.Persons)
	r.FamiliesRead = len(tree.Families)
	slog.Info("read tree file", "persons", r.PersonsRead, "families", r.FamiliesRead)

	// Validate the tree before touching the database; memgraph.New catches
	// missing and duplicate person IDs.
	if _, err := memgraph.New(tree); err != nil {
		return r, fmt.Errorf("validate tree: %w", err)
	}

	if cfg.DryRun {
		slog.Info("dry run, skipping PostgreSQL writes")
		r.PersonsInserted = r.PersonsRead
		r.FamiliesInserted = r.FamiliesRead
		return r, nil
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return r, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return r, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if err := insertPersons(ctx, tx, tree.Persons); err != nil {
		return r, fmt.Errorf("insert persons: %w", err)
	}
	r.PersonsInserted = len(tree.Persons)
	slog.Info("inserted persons", "count", r.PersonsInserted)

	children, err := insertFamilies(ctx, tx, tree.Families)
	if err != nil {
		return r, fmt.Errorf("insert families: %w", err)
	}
	r.FamiliesInserted = len(tree.Families)
	r.ChildrenInserted = children
	slog.Info("inserted families", "count", r.FamiliesInserted, "children", children)

	r.PersonsVerified, err = countRows(ctx, tx, "persons")
	if err != nil {
		return r, fmt.Errorf("verify person count: %w", err)
	}
	r.FamiliesVerified, err = countRows(ctx, tx, "families")
	if err != nil {
		return r, fmt.Errorf("verify family count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return r, fmt.Errorf("commit: %w", err)
	}
	slog.Info("transaction committed")
	return r, nil
}
