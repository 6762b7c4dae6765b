// Command kingraphd serves the genealogy subgraph export API.
//
// It reads its registry either from Postgres (SOURCE=postgres, the default)
// or from a flat JSON tree file (SOURCE=file), and exposes the traversal and
// export endpoints under /api/v1.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kinviz/kingraph/internal/api"
	"github.com/kinviz/kingraph/internal/config"
	"github.com/kinviz/kingraph/internal/db"
	"github.com/kinviz/kingraph/internal/db/migrations"
	"github.com/kinviz/kingraph/internal/dbpool"
	"github.com/kinviz/kingraph/internal/domain"
	"github.com/kinviz/kingraph/internal/memgraph"
	"github.com/kinviz/kingraph/internal/service"
	"github.com/kinviz/kingraph/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("kingraphd exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, directory, checker, cleanup, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := service.NewTraversalEngine(source, log, cfg.MaxTraverseNodes)
	export := service.NewExportService(engine, source, log)

	router := api.NewRouter(&api.RouterDeps{
		Log:         log,
		Export:      export,
		Directory:   directory,
		Checker:     checker,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
		Source:      cfg.Source,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"source":  cfg.Source,
			"version": config.Version,
		}).Info("kingraphd listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openSource builds the configured graph source and directory. The returned
// checker is nil for sources that cannot fail at runtime; cleanup is always
// non-nil.
func openSource(ctx context.Context, cfg *config.Config, log *logrus.Logger) (domain.GraphSource, domain.PersonDirectory, api.ReadinessChecker, func(), error) {
	switch cfg.Source {
	case config.SourceFile:
		g, err := memgraph.Load(cfg.TreeFile)
		if err != nil {
			return nil, nil, nil, nil, err
		}

		log.WithField("tree_file", cfg.TreeFile).Info("loaded tree file registry")

		return g, g, nil, func() {}, nil

	case config.SourcePostgres:
		pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
		if err != nil {
			return nil, nil, nil, nil, err
		}

		if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
			pool.Close()

			return nil, nil, nil, nil, err
		}

		base := store.Base{Pool: pool, Log: log}

		return store.NewGraphStore(base), store.NewDirectoryStore(base), pool, pool.Close, nil

	default:
		return nil, nil, nil, nil, errors.New("unknown registry source: " + cfg.Source)
	}
}
