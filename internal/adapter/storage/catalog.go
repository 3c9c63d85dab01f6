package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/niksmo/product-categories/internal/core/domain"
	"github.com/niksmo/product-categories/internal/core/port"
)

var _ port.FixturesLoader = (*CatalogRepository)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// A CatalogRepository keeps users, categories and products in a SQL database.
type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

// LoadFixtures reads the three record sets ordered by id within one
// read-only transaction.
func (r CatalogRepository) LoadFixtures(
	ctx context.Context,
) (f domain.Fixtures, loadErr error) {
	const op = "CatalogRepository.LoadFixtures"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer func() {
		if loadErr == nil {
			if err := tx.Commit(); err != nil {
				loadErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}
		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	f.Users, err = selectAll(ctx, tx,
		psql.Select("id", "name", "sex").From("users").OrderBy("id"),
		func(rows *sql.Rows) (v domain.User, err error) {
			var sex string
			err = rows.Scan(&v.ID, &v.Name, &sex)
			v.Sex = domain.Sex(sex)
			return v, err
		},
	)
	if err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: users: %w", op, err)
	}

	f.Categories, err = selectAll(ctx, tx,
		psql.Select("id", "title", "icon", "owner_id").
			From("categories").OrderBy("id"),
		func(rows *sql.Rows) (v domain.Category, err error) {
			err = rows.Scan(&v.ID, &v.Title, &v.Icon, &v.OwnerID)
			return v, err
		},
	)
	if err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: categories: %w", op, err)
	}

	f.Products, err = selectAll(ctx, tx,
		psql.Select("id", "name", "category_id").
			From("products").OrderBy("id"),
		func(rows *sql.Rows) (v domain.Product, err error) {
			err = rows.Scan(&v.ID, &v.Name, &v.CategoryID)
			return v, err
		},
	)
	if err != nil {
		return domain.Fixtures{}, fmt.Errorf("%s: products: %w", op, err)
	}

	return f, nil
}

// StoreFixtures upserts every record of f by id.
func (r CatalogRepository) StoreFixtures(
	ctx context.Context, f domain.Fixtures,
) (storeErr error) {
	const op = "CatalogRepository.StoreFixtures"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := f.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}
		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	users := psql.Insert("users").Columns("id", "name", "sex").
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"name = EXCLUDED.name, sex = EXCLUDED.sex")
	for _, v := range f.Users {
		users = users.Values(v.ID, v.Name, string(v.Sex))
	}

	categories := psql.Insert("categories").
		Columns("id", "title", "icon", "owner_id").
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"title = EXCLUDED.title, icon = EXCLUDED.icon, " +
			"owner_id = EXCLUDED.owner_id")
	for _, v := range f.Categories {
		categories = categories.Values(v.ID, v.Title, v.Icon, v.OwnerID)
	}

	products := psql.Insert("products").Columns("id", "name", "category_id").
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"name = EXCLUDED.name, category_id = EXCLUDED.category_id")
	for _, v := range f.Products {
		products = products.Values(v.ID, v.Name, v.CategoryID)
	}

	batches := []struct {
		table string
		n     int
		b     sq.InsertBuilder
	}{
		{"users", len(f.Users), users},
		{"categories", len(f.Categories), categories},
		{"products", len(f.Products), products},
	}
	for _, batch := range batches {
		if batch.n == 0 {
			continue
		}
		if err := exec(ctx, tx, batch.b); err != nil {
			return fmt.Errorf("%s: %s: %w", op, batch.table, err)
		}
	}

	log.Info("fixtures stored",
		"nUsers", len(f.Users),
		"nCategories", len(f.Categories),
		"nProducts", len(f.Products),
	)
	return nil
}

func selectAll[T any](
	ctx context.Context,
	q queryer,
	b sq.SelectBuilder,
	scan func(*sql.Rows) (T, error),
) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func exec(ctx context.Context, e execer, b sq.InsertBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = e.ExecContext(ctx, query, args...)
	return err
}
