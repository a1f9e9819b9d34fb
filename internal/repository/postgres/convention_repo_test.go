package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventions/internal/domain"
)

var conventionRowColumns = []string{"id", "name", "venue_id", "start_date", "end_date"}

func TestConventionRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO conventions \(name, venue_id, start_date, end_date\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id`).
			WithArgs("GopherCon", 2, nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1"))
		mock.ExpectCommit()

		c := &domain.Convention{Name: "GopherCon", VenueID: "2"}
		require.NoError(t, NewConventionRepository(db).Create(ctx, c))
		assert.Equal(t, "1", c.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("venue removed concurrently", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO conventions`).WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectRollback()

		err = NewConventionRepository(db).Create(ctx, &domain.Convention{Name: "GopherCon", VenueID: "2"})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConventionRepository_List(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, venue_id, start_date, end_date FROM conventions ORDER BY id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(conventionRowColumns))

	got, err := NewConventionRepository(db).List(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
