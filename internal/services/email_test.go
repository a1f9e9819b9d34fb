package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conventions/internal/domain"
)

type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.lastTemplate = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject " + name, "<p>" + name + "</p>", name, nil
}

type fakeMailer struct {
	to, subject string
	err         error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.to, f.subject = to, subject
	return f.err
}

func TestEmailService(t *testing.T) {
	ctx := context.Background()

	t.Run("convention joined", func(t *testing.T) {
		r, m := &fakeRenderer{}, &fakeMailer{}
		svc := NewEmailService(m, r, nil)
		require.NoError(t, svc.SendConventionJoined(ctx, &domain.ConventionJoinedEmailData{Email: "a@b.c", ConventionName: "C"}))
		assert.Equal(t, "convention_joined", r.lastTemplate)
		assert.Equal(t, "a@b.c", m.to)
		assert.Equal(t, "subject convention_joined", m.subject)
	})

	t.Run("talk joined", func(t *testing.T) {
		r, m := &fakeRenderer{}, &fakeMailer{}
		svc := NewEmailService(m, r, nil)
		require.NoError(t, svc.SendTalkJoined(ctx, &domain.TalkJoinedEmailData{Email: "a@b.c"}))
		assert.Equal(t, "talk_joined", r.lastTemplate)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, nil)
		require.Error(t, svc.SendTalkJoined(ctx, nil))
		require.Error(t, svc.SendConventionJoined(ctx, nil))
	})

	t.Run("render and send failures are wrapped", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errBoom}, nil)
		require.ErrorIs(t, svc.SendTalkJoined(ctx, &domain.TalkJoinedEmailData{}), errBoom)

		svc = NewEmailService(&fakeMailer{err: errBoom}, &fakeRenderer{}, nil)
		require.ErrorIs(t, svc.SendTalkJoined(ctx, &domain.TalkJoinedEmailData{}), errBoom)
	})
}
