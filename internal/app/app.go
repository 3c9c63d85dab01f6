package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/product-categories/config"
	"github.com/niksmo/product-categories/internal/adapter"
	"github.com/niksmo/product-categories/internal/adapter/fixtures"
	"github.com/niksmo/product-categories/internal/adapter/httphandler"
	"github.com/niksmo/product-categories/internal/adapter/kafka"
	"github.com/niksmo/product-categories/internal/adapter/storage"
	"github.com/niksmo/product-categories/internal/core/domain"
	"github.com/niksmo/product-categories/internal/core/port"
	"github.com/niksmo/product-categories/internal/core/service"
	"github.com/niksmo/product-categories/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrUnknownSource = errors.New("unknown fixtures source")

type App struct {
	ctx          context.Context
	cfg          config.Config
	sqlDB        *storage.SQLDB
	searchEvents *kafka.SearchEventsProducer
	service      service.Service
	httpServer   httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	f := app.initFixtures()
	app.initSearchEvents()
	app.initCoreService(f)
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initFixtures() domain.Fixtures {
	const op = "App.initFixtures"

	loader, err := app.fixturesLoader()
	if err != nil {
		app.fallDown(op, err)
	}

	f, err := loader.LoadFixtures(app.ctx)
	if err != nil {
		app.fallDown(op, err)
	}

	slog.Info(
		"fixtures are loaded",
		"source", app.cfg.Fixtures.Source,
		"users", len(f.Users),
		"categories", len(f.Categories),
		"products", len(f.Products),
	)
	return f
}

func (app *App) fixturesLoader() (port.FixturesLoader, error) {
	switch src := app.cfg.Fixtures.Source; src {
	case config.SourceEmbedded:
		return fixtures.NewEmbedded(), nil
	case config.SourceFile:
		return fixtures.NewFile(app.cfg.Fixtures.Path), nil
	case config.SourceSQL:
		db, err := storage.NewSQLDB(app.ctx, app.cfg.Fixtures.SQLDB)
		if err != nil {
			return nil, err
		}
		app.sqlDB = &db
		return storage.NewCatalogRepository(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src)
	}
}

func (app *App) initSearchEvents() {
	const op = "App.initSearchEvents"

	if !app.cfg.SearchEventsEnabled() {
		slog.Info("search events are disabled")
		return
	}

	ctx := app.ctx
	broker := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	searchEventSerde, err := schema.NewSerdeSearchEventV1(
		ctx,
		schema.SubjectOpt(broker.Topics.SearchEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	tlsConfig, err := app.brokerTLSConfig()
	if err != nil {
		app.fallDown(op, err)
	}

	p, err := kafka.NewSearchEventsProducer(
		kafka.ProducerClientOpt(
			ctx, broker.SeedBrokers, broker.Topics.SearchEvents, tlsConfig,
		),
		kafka.ProducerEncoderOpt(searchEventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.searchEvents = &p
}

func (app *App) brokerTLSConfig() (*tls.Config, error) {
	if !app.cfg.BrokerTLSEnabled() {
		return nil, nil
	}
	t := app.cfg.Broker.TLS
	return adapter.MakeTLSConfig(t.CA, t.Cert, t.Key)
}

func (app *App) initCoreService(f domain.Fixtures) {
	var opts []service.Opt
	if app.searchEvents != nil {
		opts = append(opts, service.SearchEventsOpt(app.searchEvents))
	}
	app.service = service.New(f, opts...)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service)

	handler := httphandler.RequestID(
		httphandler.Logger(httphandler.Recoverer(mux)),
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.searchEvents != nil {
		app.searchEvents.Close()
	}
	if app.sqlDB != nil {
		app.sqlDB.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
