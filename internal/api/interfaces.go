package api

import "github.com/kinviz/kingraph/internal/domain"

// Handler-facing aliases of the domain interfaces. Handlers depend on these
// so the api package reads standalone.
type (
	// ExportService runs one traversal-and-serialize pass per request.
	ExportService = domain.ExportService

	// PersonDirectory serves person listing and relative queries.
	PersonDirectory = domain.PersonDirectory
)
