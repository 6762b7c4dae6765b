// Package service implements business logic for the kingraph exporter.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/domain"
	"github.com/kinviz/kingraph/internal/models"
)

// Traversal safety limits.
const (
	// DefaultTraverseLimit caps the number of persons included in one
	// traversal when the selection does not set its own cap. Family trees
	// are small; this is a guard against pathological registries.
	DefaultTraverseLimit = 10000
)

// TraversalEngine computes the included-person set and relationship links
// reachable from a selection's interesting set, without crossing edge-person
// boundaries. One engine instance is safe for concurrent use: each run keeps
// its own frontier and visited state.
type TraversalEngine struct {
	source     domain.GraphSource
	log        *logrus.Logger
	maxPersons int
}

// NewTraversalEngine creates a TraversalEngine reading from source.
// maxPersons <= 0 selects DefaultTraverseLimit.
func NewTraversalEngine(source domain.GraphSource, log *logrus.Logger, maxPersons int) *TraversalEngine {
	if maxPersons <= 0 {
		maxPersons = DefaultTraverseLimit
	}

	return &TraversalEngine{source: source, log: log, maxPersons: maxPersons}
}

// frontierItem is one discovered-but-unexpanded person. The generation
// offset travels with the item and is fixed at first visit.
type frontierItem struct {
	id  string
	gen int
}

// linkKey is the normalized dedup key for an undirected pair+kind.
// Parent-child links are oriented parent→child; sibling and spouse links
// order the pair lexicographically.
type linkKey struct {
	source string
	target string
	kind   models.RelKind
}

// relQuery binds a relative kind to its adapter call and generation delta.
type relQuery struct {
	kind  models.RelKind
	delta int
	fetch func(context.Context, string) ([]string, error)
}

// Traverse performs the level-by-level frontier expansion for one selection.
//
// Relative kinds are iterated in the fixed order parents, children, siblings,
// spouses, so repeated runs over an unchanged registry yield identical output.
// A person reachable via multiple paths keeps the generation offset of its
// first visit.
func (e *TraversalEngine) Traverse(ctx context.Context, sel models.Selection) (*models.Subgraph, error) { //nolint:funlen,gocognit // BFS loop with per-kind expansion is inherently multi-step.
	seeds, edgeSet, limit, err := e.prepare(ctx, sel)
	if err != nil {
		return nil, err
	}

	queries := []relQuery{
		{models.RelParentChild, -1, e.source.Parents},
		{models.RelParentChild, +1, e.source.Children},
		{models.RelSibling, 0, e.source.Siblings},
		{models.RelSpouse, 0, e.source.Spouses},
	}

	frontier := make([]frontierItem, 0, len(seeds))
	for _, id := range seeds {
		frontier = append(frontier, frontierItem{id: id, gen: 0})
	}

	visited := make(map[string]int, len(seeds))
	persons := make([]models.Person, 0, len(seeds))

	linkSeen := make(map[linkKey]struct{})
	links := make([]models.Link, 0, 32)

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("traversal cancelled: %w", err)
		}

		item := frontier[0]
		frontier = frontier[1:]

		if _, ok := visited[item.id]; ok {
			continue
		}

		person, err := e.source.GetPerson(ctx, item.id)
		if err != nil {
			if errors.Is(err, models.ErrPersonNotFound) {
				// Dangling reference in the registry; tolerate it.
				e.log.WithField("person_id", item.id).Debug("skipping unresolvable person reference")

				continue
			}

			return nil, fmt.Errorf("looking up person %s: %w", item.id, err)
		}

		if person.Private && !sel.IncludePrivate {
			continue
		}

		visited[item.id] = item.gen
		persons = append(persons, *person)

		// Edge people are included but never expanded.
		if _, isEdge := edgeSet[item.id]; isEdge {
			continue
		}

		if len(visited) >= limit {
			continue
		}

		for _, q := range queries {
			relatives, err := q.fetch(ctx, item.id)
			if err != nil {
				if errors.Is(err, models.ErrPersonNotFound) {
					continue
				}

				return nil, fmt.Errorf("fetching %s relatives of %s: %w", q.kind, item.id, err)
			}

			for _, rel := range relatives {
				if rel == "" || rel == item.id {
					continue
				}

				key := normalizeLink(item.id, rel, q.kind, q.delta)
				if _, dup := linkSeen[key]; !dup {
					linkSeen[key] = struct{}{}
					links = append(links, models.Link{Source: key.source, Target: key.target, Kind: key.kind})
				}

				if _, seen := visited[rel]; !seen {
					frontier = append(frontier, frontierItem{id: rel, gen: item.gen + q.delta})
				}
			}
		}
	}

	return &models.Subgraph{
		Persons:     persons,
		Generations: visited,
		Links:       pruneLinks(links, visited),
	}, nil
}

// prepare resolves the seed list, edge set, and node cap for one run.
// In include-all mode the whole registry seeds the traversal (anchor first,
// so generation 0 stays pinned to it) and the edge set is ignored.
func (e *TraversalEngine) prepare(ctx context.Context, sel models.Selection) ([]string, map[string]struct{}, int, error) {
	limit := sel.MaxPersons
	if limit <= 0 || limit > e.maxPersons {
		limit = e.maxPersons
	}

	if !sel.IncludeAll {
		return sel.Seeds(), sel.EdgeSet(), limit, nil
	}

	all, err := e.source.AllPersonIDs(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("listing registry for include-all traversal: %w", err)
	}

	seeds := make([]string, 0, len(all)+1)
	seen := make(map[string]struct{}, len(all)+1)

	if sel.Anchor != "" {
		seeds = append(seeds, sel.Anchor)
		seen[sel.Anchor] = struct{}{}
	}

	for _, id := range all {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		seeds = append(seeds, id)
	}

	if len(seeds) > limit {
		limit = len(seeds)
	}

	return seeds, map[string]struct{}{}, limit, nil
}

// normalizeLink builds the canonical key for a link discovered while
// expanding from. delta < 0 means rel is a parent of from; delta > 0 means
// rel is a child of from.
func normalizeLink(from, rel string, kind models.RelKind, delta int) linkKey {
	if kind == models.RelParentChild {
		if delta < 0 {
			return linkKey{source: rel, target: from, kind: kind}
		}

		return linkKey{source: from, target: rel, kind: kind}
	}

	if rel < from {
		from, rel = rel, from
	}

	return linkKey{source: from, target: rel, kind: kind}
}

// pruneLinks drops candidate links whose endpoints did not both end up
// included (edge-person boundaries, private persons, dangling references).
// Discovery order is preserved.
func pruneLinks(links []models.Link, visited map[string]int) []models.Link {
	kept := make([]models.Link, 0, len(links))

	for _, l := range links {
		if _, ok := visited[l.Source]; !ok {
			continue
		}

		if _, ok := visited[l.Target]; !ok {
			continue
		}

		kept = append(kept, l)
	}

	return kept
}
