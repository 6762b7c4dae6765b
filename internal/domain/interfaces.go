// Package domain defines the canonical interfaces shared across API layers
// (REST, client, CLI). Consumers should depend on these interfaces rather
// than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/kinviz/kingraph/internal/models"
)

// GraphSource is the relationship graph adapter: a pure read view over a
// genealogy registry. Every method returns person IDs in a stable order so
// that traversals are deterministic across runs. Lookups of unknown IDs
// return models.ErrPersonNotFound; the traversal engine treats that as
// "no relatives" rather than aborting.
type GraphSource interface {
	GetPerson(ctx context.Context, id string) (*models.Person, error)
	Parents(ctx context.Context, id string) ([]string, error)
	Children(ctx context.Context, id string) ([]string, error)
	Siblings(ctx context.Context, id string) ([]string, error)
	Spouses(ctx context.Context, id string) ([]string, error)

	// AllPersonIDs lists every person in the registry, in stable order.
	// Used by the include-all selection mode.
	AllPersonIDs(ctx context.Context) ([]string, error)
}

// PersonDirectory defines listing operations for the host UI to pick
// interesting and edge people from.
type PersonDirectory interface {
	ListPeople(ctx context.Context, query string, limit, offset int) ([]models.PersonSummary, bool, error)
	GetPerson(ctx context.Context, id string) (*models.Person, error)
	GetRelatives(ctx context.Context, id string) (*models.Relatives, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// ExportService runs one bounded traversal and serializes the result.
type ExportService interface {
	Export(ctx context.Context, sel models.Selection) (*models.TAMDocument, error)
}
