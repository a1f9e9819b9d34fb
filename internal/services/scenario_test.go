package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"conventions/internal/domain"
)

func TestRegistrationScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	v1 := &domain.Venue{Name: "V1"}
	require.NoError(t, s.venues.CreateVenue(ctx, v1))

	c1 := &domain.Convention{Name: "C1", VenueID: v1.ID}
	require.NoError(t, s.conventions.CreateConvention(ctx, c1))
	require.NotEmpty(t, c1.ID)

	require.NoError(t, s.users.CreateUser(ctx, &domain.User{ID: "U1", Name: "U1"}))
	require.NoError(t, s.conventions.JoinConvention(ctx, c1.ID, "U1"))

	talk := &domain.Talk{ConventionID: c1.ID, SpeakerID: "U1", Title: "Talk"}
	require.NoError(t, s.talks.CreateTalk(ctx, talk))

	require.ErrorIs(t, s.talks.JoinTalk(ctx, talk.ID, "U1"), domain.ErrAlreadyJoined)

	require.NoError(t, s.users.CreateUser(ctx, &domain.User{ID: "U2", Name: "U2"}))
	require.ErrorIs(t, s.talks.JoinTalk(ctx, talk.ID, "U2"), domain.ErrNotPartOfConvention)
}
