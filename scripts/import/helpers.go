package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/kinviz/kingraph/internal/memgraph"
)

// readTree loads and parses the tree JSON file.
func readTree(path string) (*memgraph.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tree memgraph.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &tree, nil
}

// insertPersons writes all person rows. Existing rows with the same ID are
// replaced, so re-running the import converges on the tree file's state.
func insertPersons(ctx context.Context, tx pgx.Tx, persons []memgraph.Person) error {
	for _, p := range persons {
		sex := normalizeSex(p.Sex)
		_, err := tx.Exec(ctx,
			`INSERT INTO persons (id, name, sex, birth_year, death_year, private, living)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   sex = EXCLUDED.sex,
			   birth_year = EXCLUDED.birth_year,
			   death_year = EXCLUDED.death_year,
			   private = EXCLUDED.private,
			   living = EXCLUDED.living`,
			p.ID, p.Name, sex, p.BirthYear, p.DeathYear, p.Private, p.Living)
		if err != nil {
			return fmt.Errorf("person %s: %w", p.ID, err)
		}
	}
	return nil
}

// insertFamilies writes family and family_children rows, returning the number
// of child links inserted. Child IDs are written as-is; the schema allows
// references to persons missing from the registry.
func insertFamilies(ctx context.Context, tx pgx.Tx, families []memgraph.Family) (int, error) {
	children := 0

	for _, f := range families {
		_, err := tx.Exec(ctx,
			`INSERT INTO families (id, father_id, mother_id)
			 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
			 ON CONFLICT (id) DO UPDATE SET
			   father_id = EXCLUDED.father_id,
			   mother_id = EXCLUDED.mother_id`,
			f.ID, f.Father, f.Mother)
		if err != nil {
			return children, fmt.Errorf("family %s: %w", f.ID, err)
		}

		// Reset child links so removed children do not linger.
		if _, err := tx.Exec(ctx,
			`DELETE FROM family_children WHERE family_id = $1`, f.ID); err != nil {
			return children, fmt.Errorf("family %s children: %w", f.ID, err)
		}

		for _, child := range f.Children {
			if child == "" {
				continue
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO family_children (family_id, child_id) VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`,
				f.ID, child)
			if err != nil {
				return children, fmt.Errorf("family %s child %s: %w", f.ID, child, err)
			}
			children++
		}
	}
	return children, nil
}

// normalizeSex maps tree-file sex values onto the schema's M/F/U set.
func normalizeSex(s string) string {
	switch s {
	case "M", "m":
		return "M"
	case "F", "f":
		return "F"
	default:
		return "U"
	}
}

// sanitizeURL removes credentials from a database URL for display.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable URL]"
	}
	u.User = nil
	return u.String()
}

// envOr returns the environment variable value or a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// allowedTables is the set of table names that countRows may query.
var allowedTables = map[string]bool{
	"persons":  true,
	"families": true,
}

// countRows counts rows in a table.
func countRows(ctx context.Context, tx pgx.Tx, table string) (int, error) {
	if !allowedTables[table] {
		return 0, fmt.Errorf("disallowed table name: %s", table)
	}

	var count int
	sanitized := pgx.Identifier{table}.Sanitize()
	err := tx.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM %s", sanitized),
	).Scan(&count)
	return count, err
}

// printReport outputs the final import summary.
func printReport(r *report) {
	fmt.Println()
	fmt.Println("=== kingraph Import Report ===")
	if r.DryRun {
		fmt.Println("MODE: DRY RUN (no changes made)")
	}
	fmt.Printf("Source: %s\n", r.Source)
	fmt.Printf("Target: %s\n", r.Target)
	fmt.Println()
	fmt.Printf("Persons:  %d read → %d inserted → %d verified %s\n",
		r.PersonsRead, r.PersonsInserted, r.PersonsVerified, statusIcon(r.PersonsRead, r.PersonsInserted, r.PersonsVerified))
	fmt.Printf("Families: %d read → %d inserted → %d verified %s\n",
		r.FamiliesRead, r.FamiliesInserted, r.FamiliesVerified, statusIcon(r.FamiliesRead, r.FamiliesInserted, r.FamiliesVerified))
	if r.ChildrenInserted > 0 {
		fmt.Printf("Child links: %d inserted\n", r.ChildrenInserted)
	}

	fmt.Printf("\nDuration: %.1fs\n", r.Duration.Seconds())
	if r.Err != nil {
		fmt.Printf("Status: FAILED — %v\n", r.Err)
	} else {
		fmt.Println("Status: SUCCESS")
	}
}

// statusIcon returns a check or X based on count match.
func statusIcon(expected, inserted, verified int) string {
	if verified == 0 && inserted > 0 {
		return "⏳"
	}
	if expected == inserted && inserted == verified {
		return "✅"
	}
	if inserted == verified {
		return "✅"
	}
	return "❌"
}
