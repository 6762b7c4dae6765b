package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kinviz/kingraph/internal/domain"
	"github.com/kinviz/kingraph/internal/models"
)

// Compile-time check: *GraphStore must satisfy domain.GraphSource.
var _ domain.GraphSource = (*GraphStore)(nil)

// GraphStore implements the relationship graph adapter against Postgres.
// All queries are pure reads; relative lists are ordered by person ID so
// traversals are deterministic across runs.
type GraphStore struct {
	Base
}

// NewGraphStore creates a new GraphStore.
func NewGraphStore(base Base) *GraphStore {
	return &GraphStore{Base: base}
}

const personColumns = `id, name, sex, birth_year, death_year, private, living`

// GetPerson looks up one person by ID.
func (s *GraphStore) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.Person

	err := s.Pool.QueryRow(ctx,
		`SELECT `+personColumns+` FROM persons WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Sex, &p.BirthYear, &p.DeathYear, &p.Private, &p.Living)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPersonNotFound
		}

		return nil, fmt.Errorf("querying person %s: %w", id, err)
	}

	return &p, nil
}

// Parents returns the parents of a person: the father and mother of every
// family in which the person is recorded as a child.
func (s *GraphStore) Parents(ctx context.Context, id string) ([]string, error) {
	return s.relatives(ctx, id, `
		SELECT DISTINCT p.parent_id FROM (
			SELECT f.father_id AS parent_id
			FROM families f JOIN family_children fc ON fc.family_id = f.id
			WHERE fc.child_id = $1
			UNION
			SELECT f.mother_id
			FROM families f JOIN family_children fc ON fc.family_id = f.id
			WHERE fc.child_id = $1
		) p
		WHERE p.parent_id IS NOT NULL
		ORDER BY p.parent_id`)
}

// Children returns the children of every family in which the person is
// recorded as father or mother.
func (s *GraphStore) Children(ctx context.Context, id string) ([]string, error) {
	return s.relatives(ctx, id, `
		SELECT DISTINCT fc.child_id
		FROM families f JOIN family_children fc ON fc.family_id = f.id
		WHERE f.father_id = $1 OR f.mother_id = $1
		ORDER BY fc.child_id`)
}

// Siblings returns the other children of the person's parent families.
func (s *GraphStore) Siblings(ctx context.Context, id string) ([]string, error) {
	return s.relatives(ctx, id, `
		SELECT DISTINCT sib.child_id
		FROM family_children own
		JOIN family_children sib ON sib.family_id = own.family_id
		WHERE own.child_id = $1 AND sib.child_id <> $1
		ORDER BY sib.child_id`)
}

// Spouses returns the other parent of every family in which the person is
// recorded as father or mother.
func (s *GraphStore) Spouses(ctx context.Context, id string) ([]string, error) {
	return s.relatives(ctx, id, `
		SELECT DISTINCT sp.spouse_id FROM (
			SELECT mother_id AS spouse_id FROM families WHERE father_id = $1
			UNION
			SELECT father_id FROM families WHERE mother_id = $1
		) sp
		WHERE sp.spouse_id IS NOT NULL
		ORDER BY sp.spouse_id`)
}

// AllPersonIDs lists the whole registry ordered by ID.
func (s *GraphStore) AllPersonIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT id FROM persons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying all person ids: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// relatives runs one adjacency query after verifying the person exists, so
// unknown IDs surface as ErrPersonNotFound rather than an empty result.
func (s *GraphStore) relatives(ctx context.Context, id, sql string) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool

	if err := s.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM persons WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking person existence: %w", err)
	}

	if !exists {
		return nil, models.ErrPersonNotFound
	}

	rows, err := s.Pool.Query(ctx, sql, id)
	if err != nil {
		return nil, fmt.Errorf("querying relatives of %s: %w", id, err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// collectIDs scans a single-column ID result set.
func collectIDs(rows pgx.Rows) ([]string, error) {
	ids := make([]string, 0, 8)

	for rows.Next() {
		var id string

		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning person id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating person ids: %w", err)
	}

	return ids, nil
}
