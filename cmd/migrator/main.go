package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/niksmo/product-categories/internal/adapter/fixtures"
	"github.com/niksmo/product-categories/internal/adapter/storage"
	"github.com/niksmo/product-categories/pkg/sigctx"
	"github.com/spf13/pflag"
)

const (
	storagePathFlag   = "storage-path"
	migrationPathFlag = "migrations-path"
	seedFlag          = "seed"

	seedEmbedded = "embedded"
	seedTimeout  = 30 * time.Second
)

type flags struct {
	storagePath    string
	migrationsPath string
	seed           string
}

func main() {
	f := getFlagsValues()
	validateFlags(f)
	makeMigrations(f.storagePath, f.migrationsPath)
	if f.seed != "" {
		seedFixtures(f.storagePath, f.seed)
	}
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() flags {
	storagePath := pflag.StringP(storagePathFlag, "s", "",
		"database address as user:password@host:port/dbname")
	migrationsPath := pflag.StringP(migrationPathFlag, "m", "",
		"directory with migration files")
	seed := pflag.String(seedFlag, "",
		`fixtures to upsert after migrating: "embedded" or a YAML file path`)
	pflag.Parse()
	return flags{*storagePath, *migrationsPath, *seed}
}

func validateFlags(f flags) {
	var errs []error

	if f.storagePath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", storagePathFlag))
	}

	if f.migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		fallDown()
	}
}

func makeMigrations(storagePath, migrationsPath string) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", storagePath),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	defer m.Close()

	m.Log = NewMigrationLogger()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migration applied\n")
}

func seedFixtures(storagePath, seed string) {
	sigCtx, stop := sigctx.NotifyContext()
	defer stop()
	ctx, cancel := context.WithTimeout(sigCtx, seedTimeout)
	defer cancel()

	loader := fixtures.NewEmbedded()
	if seed != seedEmbedded {
		loader = fixtures.NewFile(seed)
	}

	f, err := loader.LoadFixtures(ctx)
	if err != nil {
		slog.Error("failed to load fixtures", "err", err)
		fallDown()
	}

	db, err := storage.NewSQLDB(ctx, fmt.Sprintf("postgres://%s", storagePath))
	if err != nil {
		slog.Error("failed to open storage", "err", err)
		fallDown()
	}
	defer db.Close()

	if err := storage.NewCatalogRepository(db).StoreFixtures(ctx, f); err != nil {
		slog.Error("failed to seed fixtures", "err", err)
		db.Close()
		fallDown()
	}
	slog.Info("fixtures seeded", "seed", seed)
}

func fallDown() {
	os.Exit(2)
}
