package store

import (
	"context"
	"fmt"

	"github.com/kinviz/kingraph/internal/domain"
	"github.com/kinviz/kingraph/internal/models"
)

// Compile-time check: *DirectoryStore must satisfy domain.PersonDirectory.
var _ domain.PersonDirectory = (*DirectoryStore)(nil)

// DirectoryStore serves person listing queries for the selection UI.
// It reuses GraphStore for single-person reads so the two stay consistent.
type DirectoryStore struct {
	Base
	graph *GraphStore
}

// NewDirectoryStore creates a new DirectoryStore.
func NewDirectoryStore(base Base) *DirectoryStore {
	return &DirectoryStore{Base: base, graph: NewGraphStore(base)}
}

// Directory paging limits.
const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ListPeople returns a page of the registry, optionally filtered by a
// case-insensitive name substring. One extra row is fetched to compute
// hasMore without a second count query.
func (s *DirectoryStore) ListPeople(ctx context.Context, query string, limit, offset int) ([]models.PersonSummary, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = defaultListLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, sex, birth_year
		FROM persons
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`,
		query, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	people := make([]models.PersonSummary, 0, limit)

	for rows.Next() {
		var p models.PersonSummary

		if err := rows.Scan(&p.ID, &p.Name, &p.Sex, &p.BirthYear); err != nil {
			return nil, false, fmt.Errorf("scanning person summary: %w", err)
		}

		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating people: %w", err)
	}

	hasMore := len(people) > limit
	if hasMore {
		people = people[:limit]
	}

	return people, hasMore, nil
}

// GetPerson looks up one person by ID.
func (s *DirectoryStore) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	return s.graph.GetPerson(ctx, id)
}

// GetRelatives returns a person's immediate relatives partitioned by kind.
func (s *DirectoryStore) GetRelatives(ctx context.Context, id string) (*models.Relatives, error) {
	parents, err := s.graph.Parents(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.graph.Children(ctx, id)
	if err != nil {
		return nil, err
	}

	siblings, err := s.graph.Siblings(ctx, id)
	if err != nil {
		return nil, err
	}

	spouses, err := s.graph.Spouses(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.Relatives{
		Parents:  parents,
		Children: children,
		Siblings: siblings,
		Spouses:  spouses,
	}, nil
}

// Stats returns aggregate registry counts.
func (s *DirectoryStore) Stats(ctx context.Context) (*models.Stats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var st models.Stats

	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM persons`).Scan(&st.Persons); err != nil {
		return nil, fmt.Errorf("counting persons: %w", err)
	}

	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM families`).Scan(&st.Families); err != nil {
		return nil, fmt.Errorf("counting families: %w", err)
	}

	return &st, nil
}
