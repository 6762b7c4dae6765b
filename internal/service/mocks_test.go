package service

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

// stubSource is a hand-rolled in-memory graph for engine tests. Relative
// slices are returned as stored, so the fixtures control iteration order.
type stubSource struct {
	persons  map[string]models.Person
	parents  map[string][]string
	children map[string][]string
	siblings map[string][]string
	spouses  map[string][]string
	all      []string
}

func newStubSource() *stubSource {
	return &stubSource{
		persons:  map[string]models.Person{},
		parents:  map[string][]string{},
		children: map[string][]string{},
		siblings: map[string][]string{},
		spouses:  map[string][]string{},
	}
}

func (s *stubSource) addPerson(p models.Person) {
	s.persons[p.ID] = p
	s.all = append(s.all, p.ID)
}

// link records a parent-child pair in both directions.
func (s *stubSource) link(parent, child string) {
	s.children[parent] = append(s.children[parent], child)
	s.parents[child] = append(s.parents[child], parent)
}

func (s *stubSource) marry(a, b string) {
	s.spouses[a] = append(s.spouses[a], b)
	s.spouses[b] = append(s.spouses[b], a)
}

func (s *stubSource) sibling(a, b string) {
	s.siblings[a] = append(s.siblings[a], b)
	s.siblings[b] = append(s.siblings[b], a)
}

func (s *stubSource) GetPerson(_ context.Context, id string) (*models.Person, error) {
	p, ok := s.persons[id]
	if !ok {
		return nil, models.ErrPersonNotFound
	}

	return &p, nil
}

func (s *stubSource) Parents(_ context.Context, id string) ([]string, error) {
	return s.parents[id], nil
}

func (s *stubSource) Children(_ context.Context, id string) ([]string, error) {
	return s.children[id], nil
}

func (s *stubSource) Siblings(_ context.Context, id string) ([]string, error) {
	return s.siblings[id], nil
}

func (s *stubSource) Spouses(_ context.Context, id string) ([]string, error) {
	return s.spouses[id], nil
}

func (s *stubSource) AllPersonIDs(_ context.Context) ([]string, error) {
	return s.all, nil
}

// mockTraverser lets export tests control the engine output directly.
type mockTraverser struct {
	traverseFn func(ctx context.Context, sel models.Selection) (*models.Subgraph, error)
}

func (m *mockTraverser) Traverse(ctx context.Context, sel models.Selection) (*models.Subgraph, error) {
	return m.traverseFn(ctx, sel)
}

func year(y int) *int { return &y }
