// Package store provides focused, single-concern data access stores for the
// kingraph genealogy registry.
//
// Each store owns one domain (graph adjacency, person directory) and embeds
// shared helpers (Pool, logger) via the Base struct. Stores never import
// each other — shared logic lives in this file.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
