package storage_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/niksmo/product-categories/internal/adapter/storage"
	"github.com/niksmo/product-categories/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectUsers      = "SELECT id, name, sex FROM users ORDER BY id"
	selectCategories = "SELECT id, title, icon, owner_id FROM categories ORDER BY id"
	selectProducts   = "SELECT id, name, category_id FROM products ORDER BY id"
)

func TestCatalogRepositoryLoadFixtures(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUsers)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sex"}).
				AddRow(1, "Max", "m").
				AddRow(2, "Anna", "f"))
		mock.ExpectQuery(regexp.QuoteMeta(selectCategories)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "icon", "owner_id"}).
				AddRow(1, "Drinks", "🍺", 1))
		mock.ExpectQuery(regexp.QuoteMeta(selectProducts)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id"}).
				AddRow(1, "Milk", 1).
				AddRow(2, "Bread", 7))
		mock.ExpectCommit()

		repo := storage.NewCatalogRepository(db)
		f, err := repo.LoadFixtures(t.Context())
		require.NoError(t, err)

		assert.Equal(t, []domain.User{
			{ID: 1, Name: "Max", Sex: domain.SexMale},
			{ID: 2, Name: "Anna", Sex: domain.SexFemale},
		}, f.Users)
		assert.Equal(t, []domain.Category{
			{ID: 1, Title: "Drinks", Icon: "🍺", OwnerID: 1},
		}, f.Categories)
		assert.Equal(t, []domain.Product{
			{ID: 1, Name: "Milk", CategoryID: 1},
			{ID: 2, Name: "Bread", CategoryID: 7},
		}, f.Products)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyTables", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUsers)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sex"}))
		mock.ExpectQuery(regexp.QuoteMeta(selectCategories)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "icon", "owner_id"}))
		mock.ExpectQuery(regexp.QuoteMeta(selectProducts)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id"}))
		mock.ExpectCommit()

		f, err := storage.NewCatalogRepository(db).LoadFixtures(t.Context())
		require.NoError(t, err)
		assert.Empty(t, f.Users)
		assert.Empty(t, f.Categories)
		assert.Empty(t, f.Products)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		queryErr := errors.New("relation does not exist")

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectUsers)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sex"}))
		mock.ExpectQuery(regexp.QuoteMeta(selectCategories)).
			WillReturnError(queryErr)
		mock.ExpectRollback()

		_, err = storage.NewCatalogRepository(db).LoadFixtures(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, queryErr)
		assert.Contains(t, err.Error(), "categories")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCatalogRepositoryStoreFixtures(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO users \(id,name,sex\) VALUES \(\$1,\$2,\$3\),\(\$4,\$5,\$6\) ON CONFLICT`).
			WithArgs(1, "Max", "m", 2, "Anna", "f").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO categories .* ON CONFLICT`).
			WithArgs(1, "Drinks", "🍺", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO products .* ON CONFLICT`).
			WithArgs(1, "Milk", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = storage.NewCatalogRepository(db).StoreFixtures(t.Context(), domain.Fixtures{
			Users: []domain.User{
				{ID: 1, Name: "Max", Sex: domain.SexMale},
				{ID: 2, Name: "Anna", Sex: domain.SexFemale},
			},
			Categories: []domain.Category{{ID: 1, Title: "Drinks", Icon: "🍺", OwnerID: 1}},
			Products:   []domain.Product{{ID: 1, Name: "Milk", CategoryID: 1}},
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SkipsEmptySets", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO products`).
			WithArgs(1, "Milk", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = storage.NewCatalogRepository(db).StoreFixtures(t.Context(), domain.Fixtures{
			Products: []domain.Product{{ID: 1, Name: "Milk", CategoryID: 1}},
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateIDsRejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		err = storage.NewCatalogRepository(db).StoreFixtures(t.Context(), domain.Fixtures{
			Users: []domain.User{{ID: 1}, {ID: 1}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExecFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		execErr := errors.New("constraint violation")

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO users`).WillReturnError(execErr)
		mock.ExpectRollback()

		err = storage.NewCatalogRepository(db).StoreFixtures(t.Context(), domain.Fixtures{
			Users: []domain.User{{ID: 1, Name: "Max", Sex: domain.SexMale}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, execErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
