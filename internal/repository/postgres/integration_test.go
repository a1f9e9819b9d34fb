//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"conventions/internal/domain"
)

// newTestDB starts a disposable PostgreSQL and applies the schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("conventions"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(pingCtx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, Migrate(db, logger))
	return db
}

func TestIntegration_Registrations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Migrating an up-to-date schema is a no-op.
	require.NoError(t, Migrate(db, slog.New(slog.DiscardHandler)))

	venues := NewVenueRepository(db)
	conventions := NewConventionRepository(db)
	users := NewUserRepository(db)
	talks := NewTalkRepository(db)
	conventionRegs := NewConventionRegistrationRepository(db)
	talkRegs := NewTalkRegistrationRepository(db)

	venue := &domain.Venue{Name: "Hall", City: "Oslo"}
	require.NoError(t, venues.Create(ctx, venue))
	require.NotEmpty(t, venue.ID)

	start := int64(1700000000)
	conv := &domain.Convention{Name: "GopherCon", VenueID: venue.ID, StartDate: &start}
	require.NoError(t, conventions.Create(ctx, conv))

	require.NoError(t, users.Create(ctx, &domain.User{ID: "alice", Name: "Alice"}))
	require.NoError(t, users.Create(ctx, &domain.User{ID: "bob", Name: "Bob"}))
	err := users.Create(ctx, &domain.User{ID: "alice", Name: "Impostor"})
	require.ErrorIs(t, err, domain.ErrIdentityAlreadyExists)

	require.NoError(t, conventionRegs.Add(ctx, conv.ID, "alice"))
	require.ErrorIs(t, conventionRegs.Add(ctx, conv.ID, "alice"), domain.ErrAlreadyJoined)

	member, err := conventionRegs.IsMember(ctx, conv.ID, "alice")
	require.NoError(t, err)
	assert.True(t, member)
	member, err = conventionRegs.IsMember(ctx, conv.ID, "bob")
	require.NoError(t, err)
	assert.False(t, member)

	talk := &domain.Talk{Title: "Generics", SpeakerID: "alice", ConventionID: conv.ID}
	require.NoError(t, talks.Create(ctx, talk))

	require.NoError(t, conventionRegs.Add(ctx, conv.ID, "bob"))
	require.NoError(t, talkRegs.Add(ctx, talk.ID, "bob"))
	require.ErrorIs(t, talkRegs.Add(ctx, talk.ID, "bob"), domain.ErrAlreadyJoined)

	joined, err := conventionRegs.ListConventionsByUserID(ctx, "alice", domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "GopherCon", joined[0].Name)
	require.NotNil(t, joined[0].StartDate)
	assert.Equal(t, start, *joined[0].StartDate)

	guestOf, err := talkRegs.ListTalksByUserID(ctx, "bob", domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, guestOf, 1)
	assert.Equal(t, talk.ID, guestOf[0].ID)

	// Referenced rows cannot be deleted.
	require.ErrorIs(t, venues.Delete(ctx, venue.ID), domain.ErrStillReferenced)
	require.ErrorIs(t, users.Delete(ctx, "bob"), domain.ErrStillReferenced)

	require.NoError(t, talkRegs.Remove(ctx, talk.ID, "bob"))
	require.NoError(t, talkRegs.Remove(ctx, talk.ID, "bob"))
	require.NoError(t, conventionRegs.Remove(ctx, conv.ID, "bob"))
	require.NoError(t, users.Delete(ctx, "bob"))

	_, err = users.GetByID(ctx, "bob")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegration_Pagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	venues := NewVenueRepository(db)

	for i := range 5 {
		require.NoError(t, venues.Create(ctx, &domain.Venue{Name: fmt.Sprintf("Venue %d", i)}))
	}

	var names []string
	for page := 1; page <= 3; page++ {
		got, err := venues.List(ctx, domain.PaginationParams{Page: page, PageSize: 2})
		require.NoError(t, err)
		for _, v := range got {
			names = append(names, v.Name)
		}
	}
	assert.Equal(t, []string{"Venue 0", "Venue 1", "Venue 2", "Venue 3", "Venue 4"}, names)

	empty, err := venues.List(ctx, domain.PaginationParams{Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
