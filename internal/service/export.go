package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/domain"
	"github.com/kinviz/kingraph/internal/metrics"
	"github.com/kinviz/kingraph/internal/models"
)

// anonymousName replaces the display name of living persons when the
// selection asks for anonymization.
const anonymousName = "(living)"

// traverser is the minimal engine interface consumed by ExportService.
// Defined at the consumer (per project convention) so the engine carries no
// service types.
type traverser interface {
	Traverse(ctx context.Context, sel models.Selection) (*models.Subgraph, error)
}

// Compile-time check: *ExportService must satisfy domain.ExportService.
var _ domain.ExportService = (*ExportService)(nil)

// ExportService runs one traversal per invocation and serializes the result
// into the TAM document format. Each run is independent and all-or-nothing:
// an error discards everything, never a partial document.
type ExportService struct {
	engine traverser
	source domain.GraphSource
	log    *logrus.Logger
}

// NewExportService creates an ExportService.
func NewExportService(engine traverser, source domain.GraphSource, log *logrus.Logger) *ExportService {
	return &ExportService{engine: engine, source: source, log: log}
}

// Export validates the selection, traverses the subgraph, and maps it into
// the TAM schema: nodes remapped to dense 0-based indices in visit order,
// links referencing those indices with each undirected pair+kind at most once.
func (s *ExportService) Export(ctx context.Context, sel models.Selection) (*models.TAMDocument, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	start := time.Now()

	log := s.log.WithFields(logrus.Fields{
		"run_id":      runID,
		"interesting": len(sel.Interesting),
		"edges":       len(sel.EdgePeople),
		"include_all": sel.IncludeAll,
	})
	log.Info("starting export traversal")

	sub, err := s.engine.Traverse(ctx, sel)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()

		return nil, fmt.Errorf("traversing selection: %w", err)
	}

	var estimated map[string]int

	if sel.EstimateDates {
		estimated, err = estimateBirthYears(ctx, s.source, sub.Persons)
		if err != nil {
			metrics.ExportsTotal.WithLabelValues("error").Inc()

			return nil, fmt.Errorf("estimating birth years: %w", err)
		}
	}

	doc := serialize(sub, sel, estimated)

	metrics.ExportsTotal.WithLabelValues("ok").Inc()
	metrics.ExportDuration.Observe(time.Since(start).Seconds())
	metrics.ExportedNodes.Set(float64(len(doc.Nodes)))
	metrics.ExportedLinks.Set(float64(len(doc.Links)))

	log.WithFields(logrus.Fields{
		"nodes":    len(doc.Nodes),
		"links":    len(doc.Links),
		"duration": time.Since(start),
	}).Info("export traversal complete")

	return doc, nil
}

// serialize maps a traversal result into the TAM document. Node order is the
// traversal's visit order; the id→index remap makes links positional.
func serialize(sub *models.Subgraph, sel models.Selection, estimated map[string]int) *models.TAMDocument {
	index := make(map[string]int, len(sub.Persons))
	nodes := make([]models.TAMNode, 0, len(sub.Persons))

	for i, p := range sub.Persons {
		index[p.ID] = i
		nodes = append(nodes, buildNode(i, p, sub.Generations[p.ID], sel, estimated))
	}

	links := make([]models.TAMLink, 0, len(sub.Links))

	for _, l := range sub.Links {
		src, okSrc := index[l.Source]
		dst, okDst := index[l.Target]

		// The engine already prunes half-included links; this guards the
		// serializer against being handed an inconsistent subgraph.
		if !okSrc || !okDst {
			continue
		}

		links = append(links, models.TAMLink{Source: src, Target: dst, Kind: l.Kind})
	}

	return &models.TAMDocument{Nodes: nodes, Links: links}
}

// buildNode shapes one person for output, applying living-person
// anonymization and estimated dates.
func buildNode(idx int, p models.Person, generation int, sel models.Selection, estimated map[string]int) models.TAMNode {
	node := models.TAMNode{
		ID:         idx,
		Name:       p.Name,
		Generation: generation,
		Sex:        sexLabel(p.Sex),
	}

	if sel.AnonymizeLiving && p.Living {
		node.Name = anonymousName

		return node
	}

	node.BirthYear = p.BirthYear
	node.DeathYear = p.DeathYear

	if node.BirthYear == nil && sel.EstimateDates {
		if y, ok := estimated[p.ID]; ok {
			year := y
			node.BirthYear = &year
		}
	}

	return node
}

// sexLabel maps the recorded sex to the output field; unknown becomes null.
func sexLabel(s models.Sex) *string {
	switch s {
	case models.SexMale, models.SexFemale:
		v := string(s)

		return &v
	default:
		return nil
	}
}
