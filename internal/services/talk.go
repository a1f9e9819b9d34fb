package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"conventions/internal/domain"
)

const kindTalk = "talk"

type talkService struct {
	talks                   domain.TalkRepository
	conventions             domain.ConventionRepository
	users                   domain.UserRepository
	conventionRegistrations domain.ConventionRegistrationRepository
	talkRegistrations       domain.TalkRegistrationRepository
	opts                    options
}

// NewTalkService creates a TalkService over the talk, convention and user
// repositories and both registration stores.
func NewTalkService(
	talks domain.TalkRepository,
	conventions domain.ConventionRepository,
	users domain.UserRepository,
	conventionRegistrations domain.ConventionRegistrationRepository,
	talkRegistrations domain.TalkRegistrationRepository,
	opts ...Option,
) domain.TalkService {
	return &talkService{
		talks:                   talks,
		conventions:             conventions,
		users:                   users,
		conventionRegistrations: conventionRegistrations,
		talkRegistrations:       talkRegistrations,
		opts:                    newOptions(opts),
	}
}

// speakerChecks holds the outcome of the lookups that guard a talk write.
type speakerChecks struct {
	conventionFound bool
	speakerFound    bool
	speakerIsMember bool
	speakerIsGuest  bool
}

// checkSpeaker runs the write-guard lookups for t concurrently. The guest
// lookup only runs when talkID is set.
func (s *talkService) checkSpeaker(ctx context.Context, t *domain.Talk, talkID string) (speakerChecks, error) {
	var res speakerChecks
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.opts.timed("convention", func() error {
			c, err := s.conventions.GetByID(gctx, t.ConventionID)
			res.conventionFound = err == nil && c != nil
			return ignoreNotFound(err)
		})
	})
	g.Go(func() error {
		return s.opts.timed("user", func() error {
			u, err := s.users.GetByID(gctx, t.SpeakerID)
			res.speakerFound = err == nil && u != nil
			return ignoreNotFound(err)
		})
	})
	g.Go(func() error {
		return s.opts.timed("convention_membership", func() error {
			var err error
			res.speakerIsMember, err = s.conventionRegistrations.IsMember(gctx, t.ConventionID, t.SpeakerID)
			return err
		})
	})
	if talkID != "" {
		g.Go(func() error {
			return s.opts.timed("talk_membership", func() error {
				var err error
				res.speakerIsGuest, err = s.talkRegistrations.IsMember(gctx, talkID, t.SpeakerID)
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		return speakerChecks{}, err
	}
	return res, nil
}

func (c speakerChecks) err(t *domain.Talk) error {
	switch {
	case !c.conventionFound:
		return fmt.Errorf("%w: %s", domain.ErrConventionNotFound, t.ConventionID)
	case !c.speakerFound:
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, t.SpeakerID)
	case !c.speakerIsMember:
		return fmt.Errorf("%w: speaker %s in convention %s", domain.ErrNotPartOfConvention, t.SpeakerID, t.ConventionID)
	case c.speakerIsGuest:
		return fmt.Errorf("%w: speaker %s is a guest of talk %s", domain.ErrAlreadyJoined, t.SpeakerID, t.ID)
	}
	return nil
}

func (s *talkService) CreateTalk(ctx context.Context, t *domain.Talk) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	checks, err := s.checkSpeaker(ctx, t, "")
	if err != nil {
		return fmt.Errorf("create talk: %w", err)
	}
	if err := checks.err(t); err != nil {
		return err
	}
	if err := s.talks.Create(ctx, t); err != nil {
		return fmt.Errorf("create talk: %w", err)
	}
	return nil
}

func (s *talkService) UpdateTalk(ctx context.Context, talkID string, t *domain.Talk) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	t.ID = talkID
	checks, err := s.checkSpeaker(ctx, t, talkID)
	if err != nil {
		return fmt.Errorf("update talk: %w", err)
	}
	if err := checks.err(t); err != nil {
		return err
	}
	if err := s.talks.Update(ctx, t); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrTalkNotFound, talkID)
		}
		return fmt.Errorf("update talk: %w", err)
	}
	return nil
}

func (s *talkService) DeleteTalk(ctx context.Context, talkID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.talks.Delete(ctx, talkID); err != nil {
		return fmt.Errorf("delete talk: %w", err)
	}
	return nil
}

func (s *talkService) GetTalk(ctx context.Context, talkID string) (*domain.Talk, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	t, err := s.talks.GetByID(ctx, talkID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTalkNotFound, talkID)
		}
		return nil, fmt.Errorf("get talk: %w", err)
	}
	return t, nil
}

func (s *talkService) ListTalks(ctx context.Context, p domain.PaginationParams) ([]*domain.Talk, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	talks, err := s.talks.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list talks: %w", err)
	}
	return talks, nil
}

// JoinTalk registers userID as a guest of talkID. The talk is read first since
// the remaining checks depend on its speaker and convention.
func (s *talkService) JoinTalk(ctx context.Context, talkID, userID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	talk, err := s.talks.GetByID(ctx, talkID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.opts.reject(kindTalk, fmt.Errorf("%w: %s", domain.ErrTalkNotFound, talkID))
	}
	if err != nil {
		return fmt.Errorf("join talk: %w", err)
	}
	if talk.SpeakerID == userID {
		return s.opts.reject(kindTalk, fmt.Errorf("%w: user %s is the speaker of talk %s", domain.ErrAlreadyJoined, userID, talkID))
	}

	var (
		user     *domain.User
		isGuest  bool
		isMember bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.opts.timed("user", func() error {
			u, err := s.users.GetByID(gctx, userID)
			user = u
			return ignoreNotFound(err)
		})
	})
	g.Go(func() error {
		return s.opts.timed("talk_membership", func() error {
			var err error
			isGuest, err = s.talkRegistrations.IsMember(gctx, talkID, userID)
			return err
		})
	})
	g.Go(func() error {
		return s.opts.timed("convention_membership", func() error {
			var err error
			isMember, err = s.conventionRegistrations.IsMember(gctx, talk.ConventionID, userID)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("join talk: %w", err)
	}

	switch {
	case user == nil:
		return s.opts.reject(kindTalk, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID))
	case isGuest:
		return s.opts.reject(kindTalk, fmt.Errorf("%w: user %s in talk %s", domain.ErrAlreadyJoined, userID, talkID))
	case !isMember:
		return s.opts.reject(kindTalk, fmt.Errorf("%w: user %s in convention %s", domain.ErrNotPartOfConvention, userID, talk.ConventionID))
	}

	if err := s.talkRegistrations.Add(ctx, talkID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			return s.opts.reject(kindTalk, fmt.Errorf("%w: user %s in talk %s", domain.ErrAlreadyJoined, userID, talkID))
		}
		return fmt.Errorf("join talk: %w", err)
	}
	s.opts.metrics.IncRegistrationCreated(kindTalk)
	s.notifyJoined(ctx, talk, user)
	return nil
}

func (s *talkService) notifyJoined(ctx context.Context, t *domain.Talk, u *domain.User) {
	if s.opts.email == nil || u.Mail == "" {
		return
	}
	data := &domain.TalkJoinedEmailData{
		Email:     u.Mail,
		Name:      u.Name,
		TalkID:    t.ID,
		TalkTitle: t.Title,
	}
	if err := s.opts.email.SendTalkJoined(ctx, data); err != nil {
		s.opts.logger.WarnContext(ctx, "talk confirmation email failed",
			"talk_id", t.ID, "user_id", u.ID, "err", err)
	}
}

func (s *talkService) LeaveTalk(ctx context.Context, talkID, userID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.talkRegistrations.Remove(ctx, talkID, userID); err != nil {
		return fmt.Errorf("leave talk: %w", err)
	}
	return nil
}

func (s *talkService) ListTalksForUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Talk, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	talks, err := s.talkRegistrations.ListTalksByUserID(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("list talks for user: %w", err)
	}
	return talks, nil
}
