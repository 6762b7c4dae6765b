// Package memgraph provides an in-memory relationship graph source built
// from a flat tree description. It backs file-based deployments and gives
// the traversal engine a synthetic registry in tests.
package memgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kinviz/kingraph/internal/domain"
	"github.com/kinviz/kingraph/internal/models"
)

// Compile-time checks: *Graph serves both adapter roles.
var (
	_ domain.GraphSource     = (*Graph)(nil)
	_ domain.PersonDirectory = (*Graph)(nil)
)

// Graph is an immutable in-memory genealogy registry. All adjacency lists
// are precomputed, sorted, and deduplicated at construction time, so every
// query returns IDs in a stable order. Safe for concurrent use.
type Graph struct {
	persons  map[string]models.Person
	order    []string
	parents  map[string][]string
	children map[string][]string
	siblings map[string][]string
	spouses  map[string][]string
	families int
}

// New builds a Graph from a tree description. Family members that have no
// person record stay in the adjacency lists as dangling references; lookups
// of such IDs fail with models.ErrPersonNotFound and traversals skip them.
func New(tree *Tree) (*Graph, error) {
	g := &Graph{
		persons:  make(map[string]models.Person, len(tree.Persons)),
		order:    make([]string, 0, len(tree.Persons)),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		siblings: make(map[string][]string),
		spouses:  make(map[string][]string),
		families: len(tree.Families),
	}

	for i, p := range tree.Persons {
		if p.ID == "" {
			return nil, fmt.Errorf("person[%d]: %w", i, models.ErrMissingID)
		}

		if _, dup := g.persons[p.ID]; dup {
			return nil, fmt.Errorf("duplicate person id %q", p.ID)
		}

		g.persons[p.ID] = p.toModel()
		g.order = append(g.order, p.ID)
	}

	for _, f := range tree.Families {
		g.addFamily(f)
	}

	for _, adj := range []map[string][]string{g.parents, g.children, g.siblings, g.spouses} {
		for id, ids := range adj {
			adj[id] = dedupeSorted(ids, id)
		}
	}

	return g, nil
}

// addFamily links the couple and their children into the adjacency lists.
func (g *Graph) addFamily(f Family) {
	couple := make([]string, 0, 2)

	if f.Father != "" {
		couple = append(couple, f.Father)
	}

	if f.Mother != "" {
		couple = append(couple, f.Mother)
	}

	if len(couple) == 2 {
		g.spouses[couple[0]] = append(g.spouses[couple[0]], couple[1])
		g.spouses[couple[1]] = append(g.spouses[couple[1]], couple[0])
	}

	for _, child := range f.Children {
		if child == "" {
			continue
		}

		for _, parent := range couple {
			g.parents[child] = append(g.parents[child], parent)
			g.children[parent] = append(g.children[parent], child)
		}

		for _, sib := range f.Children {
			if sib != "" && sib != child {
				g.siblings[child] = append(g.siblings[child], sib)
			}
		}
	}
}

// GetPerson implements domain.GraphSource.
func (g *Graph) GetPerson(_ context.Context, id string) (*models.Person, error) {
	p, ok := g.persons[id]
	if !ok {
		return nil, models.ErrPersonNotFound
	}

	return &p, nil
}

// Parents implements domain.GraphSource.
func (g *Graph) Parents(_ context.Context, id string) ([]string, error) {
	return g.lookup(g.parents, id)
}

// Children implements domain.GraphSource.
func (g *Graph) Children(_ context.Context, id string) ([]string, error) {
	return g.lookup(g.children, id)
}

// Siblings implements domain.GraphSource.
func (g *Graph) Siblings(_ context.Context, id string) ([]string, error) {
	return g.lookup(g.siblings, id)
}

// Spouses implements domain.GraphSource.
func (g *Graph) Spouses(_ context.Context, id string) ([]string, error) {
	return g.lookup(g.spouses, id)
}

// AllPersonIDs implements domain.GraphSource. Order matches the tree file.
func (g *Graph) AllPersonIDs(_ context.Context) ([]string, error) {
	out := make([]string, len(g.order))
	copy(out, g.order)

	return out, nil
}

// lookup returns a copy of one adjacency list, or ErrPersonNotFound for an
// unknown person.
func (g *Graph) lookup(adj map[string][]string, id string) ([]string, error) {
	if _, ok := g.persons[id]; !ok {
		return nil, models.ErrPersonNotFound
	}

	ids := adj[id]
	out := make([]string, len(ids))
	copy(out, ids)

	return out, nil
}

// ListPeople implements domain.PersonDirectory. The query matches names
// case-insensitively; ordering follows the registry order.
func (g *Graph) ListPeople(_ context.Context, query string, limit, offset int) ([]models.PersonSummary, bool, error) {
	if limit <= 0 {
		limit = 50
	}

	if offset < 0 {
		offset = 0
	}

	q := strings.ToLower(query)
	matched := make([]models.PersonSummary, 0, limit)
	skipped := 0
	hasMore := false

	for _, id := range g.order {
		p := g.persons[id]
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}

		if skipped < offset {
			skipped++

			continue
		}

		if len(matched) == limit {
			hasMore = true

			break
		}

		matched = append(matched, models.PersonSummary{
			ID:        p.ID,
			Name:      p.Name,
			Sex:       p.Sex,
			BirthYear: p.BirthYear,
		})
	}

	return matched, hasMore, nil
}

// GetRelatives implements domain.PersonDirectory.
func (g *Graph) GetRelatives(ctx context.Context, id string) (*models.Relatives, error) {
	parents, err := g.Parents(ctx, id)
	if err != nil {
		return nil, err
	}

	children, _ := g.Children(ctx, id) //nolint:errcheck // existence already verified.
	siblings, _ := g.Siblings(ctx, id) //nolint:errcheck // existence already verified.
	spouses, _ := g.Spouses(ctx, id)   //nolint:errcheck // existence already verified.

	return &models.Relatives{
		Parents:  parents,
		Children: children,
		Siblings: siblings,
		Spouses:  spouses,
	}, nil
}

// Stats implements domain.PersonDirectory.
func (g *Graph) Stats(_ context.Context) (*models.Stats, error) {
	return &models.Stats{Persons: len(g.persons), Families: g.families}, nil
}

// dedupeSorted sorts an adjacency list, removing duplicates and self-loops.
func dedupeSorted(ids []string, self string) []string {
	sort.Strings(ids)

	out := ids[:0]
	prev := ""

	for _, id := range ids {
		if id == self || id == prev {
			continue
		}

		out = append(out, id)
		prev = id
	}

	return out
}
