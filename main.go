//
// Articles
// ========
// An HTTP REST service for articles and their comments.
//
// Pass --routes to print the generated route docs instead of serving.
// The Swagger UI is served at /swagger/index.html.
//
// Boot the server:
// ----------------
// $ go run . --store.backend memory
//
// Client requests:
// ----------------
// $ curl -X POST -H 'Content-Type: application/json' \
//     -d '{"title":"Hi","body":"First post","author":"Peter"}' http://localhost:3333/api/articles
// {"id":"<id>","title":"Hi","body":"First post","author":"Peter"}
//
// $ curl -X POST -H 'Content-Type: application/json' \
//     -d '{"author":"Julia","body":"Nice","article":"<id>"}' http://localhost:3333/api/comments
//
// $ curl http://localhost:3333/api/comments?article=<id>
//
// $ curl -X DELETE http://localhost:3333/api/articles/<id>
// {"article":{...},"comments":{"acknowledged":true,"deletedCount":1}}
//
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/docgen"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/docs"
	"github.com/SergeyParamoshkin/articles/internal/api"
	"github.com/SergeyParamoshkin/articles/internal/config"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/metrics"
	"github.com/SergeyParamoshkin/articles/internal/store"
	"github.com/SergeyParamoshkin/articles/internal/store/memory"
	"github.com/SergeyParamoshkin/articles/internal/store/mongostore"
	"github.com/SergeyParamoshkin/articles/internal/store/sqlstore"
)

const ServiceName = "articles"

func main() {
	cfg, err := config.Load(config.Flags(), os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Development)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() // flushes buffer, if any
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	docs.SwaggerInfo.BasePath = cfg.BasePath

	// Passing --routes generates docs for the router definition.
	if cfg.Routes {
		r := api.NewRouter(memory.New(), sugar, nil, cfg.BasePath)
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/articles",
			Intro:       "Routes of the articles service.",
		}))

		return
	}

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("service stopped", "error", err)
	}
}

func run(cfg *config.Config, sugar *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter, err := metrics.NewExporter()
	if err != nil {
		return fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}
	m := metrics.New(global.Meter(ServiceName))

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			sugar.Errorw("close store", "error", err)
		}
	}()

	if err := st.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	server := api.NewServer(
		cfg.Addr, api.NewRouter(st, sugar, m, cfg.BasePath),
		cfg.DiagAddr, metrics.DiagRouter(exporter),
		sugar,
	)

	errc := make(chan error, 1)
	go func() {
		errc <- server.Start()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sugar.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return <-errc
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "mongo":
		ctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
		defer cancel()

		return mongostore.Open(ctx, cfg.Store.URI, cfg.Store.Database, cfg.Store.Timeout)
	case "sqlite":
		return sqlstore.Open(sqlstore.DriverSQLite, cfg.Store.URI)
	case "postgres":
		return sqlstore.Open(sqlstore.DriverPostgres, cfg.Store.URI)
	default:
		return memory.New(), nil
	}
}
