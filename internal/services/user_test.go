package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventions/internal/domain"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("existing identity leaves record unmodified", func(t *testing.T) {
		s := newTestServices()
		require.NoError(t, s.users.CreateUser(ctx, &domain.User{ID: "u1", Name: "Original"}))

		err := s.users.CreateUser(ctx, &domain.User{ID: "u1", Name: "Impostor"})
		require.ErrorIs(t, err, domain.ErrIdentityAlreadyExists)
		require.ErrorIs(t, err, domain.ErrConflict)

		got, err := s.users.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Original", got.Name)
		assert.Equal(t, 1, s.store.callCount("user.Create"))
	})

	t.Run("insert race maps to existing identity", func(t *testing.T) {
		s := newTestServices()
		s.store.fail["user.Create"] = domain.ErrIdentityAlreadyExists
		err := s.users.CreateUser(ctx, &domain.User{ID: "u1", Name: "A"})
		require.ErrorIs(t, err, domain.ErrIdentityAlreadyExists)
	})

	t.Run("lookup failure", func(t *testing.T) {
		s := newTestServices()
		s.store.fail["user.GetByID"] = errBoom
		err := s.users.CreateUser(ctx, &domain.User{ID: "u1", Name: "A"})
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, s.store.callCount("user.Create"))
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	seedUser(t, s, "u1", "")

	require.NoError(t, s.users.UpdateUser(ctx, "u1", &domain.User{Name: "Renamed", City: "Oslo"}))
	got, err := s.users.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "u1", got.ID)

	err = s.users.UpdateUser(ctx, "ghost", &domain.User{Name: "X"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_ListUsersPaging(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	for i := range 5 {
		seedUser(t, s, fmt.Sprintf("u%d", i), "")
	}

	first, err := s.users.ListUsers(ctx, domain.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	second, err := s.users.ListUsers(ctx, domain.PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	third, err := s.users.ListUsers(ctx, domain.PaginationParams{Page: 3, PageSize: 2})
	require.NoError(t, err)

	ids := func(us []*domain.User) []string {
		out := make([]string, len(us))
		for i, u := range us {
			out[i] = u.ID
		}
		return out
	}
	assert.Equal(t, []string{"u0", "u1"}, ids(first))
	assert.Equal(t, []string{"u2", "u3"}, ids(second))
	assert.Equal(t, []string{"u4"}, ids(third))
}
