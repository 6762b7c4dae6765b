package api

import (
	"context"

	"github.com/kinviz/kingraph/internal/models"
)

type mockDirectory struct {
	listPeopleFn   func(ctx context.Context, q string, limit, offset int) ([]models.PersonSummary, bool, error)
	getPersonFn    func(ctx context.Context, id string) (*models.Person, error)
	getRelativesFn func(ctx context.Context, id string) (*models.Relatives, error)
	statsFn        func(ctx context.Context) (*models.Stats, error)
}

func (m *mockDirectory) ListPeople(ctx context.Context, q string, limit, offset int) ([]models.PersonSummary, bool, error) {
	return m.listPeopleFn(ctx, q, limit, offset)
}

func (m *mockDirectory) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	return m.getPersonFn(ctx, id)
}

func (m *mockDirectory) GetRelatives(ctx context.Context, id string) (*models.Relatives, error) {
	return m.getRelativesFn(ctx, id)
}

func (m *mockDirectory) Stats(ctx context.Context) (*models.Stats, error) {
	return m.statsFn(ctx)
}

type mockExportService struct {
	exportFn func(ctx context.Context, sel models.Selection) (*models.TAMDocument, error)
}

func (m *mockExportService) Export(ctx context.Context, sel models.Selection) (*models.TAMDocument, error) {
	return m.exportFn(ctx, sel)
}

type mockChecker struct {
	healthCheckFn func(ctx context.Context) error
}

func (m *mockChecker) HealthCheck(ctx context.Context) error {
	return m.healthCheckFn(ctx)
}
