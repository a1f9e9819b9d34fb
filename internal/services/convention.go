package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"conventions/internal/domain"
)

const kindConvention = "convention"

type conventionService struct {
	conventions   domain.ConventionRepository
	venues        domain.VenueRepository
	users         domain.UserRepository
	registrations domain.ConventionRegistrationRepository
	opts          options
}

// NewConventionService creates a ConventionService. Venue and user repositories
// back the existence checks; registrations stores memberships.
func NewConventionService(
	conventions domain.ConventionRepository,
	venues domain.VenueRepository,
	users domain.UserRepository,
	registrations domain.ConventionRegistrationRepository,
	opts ...Option,
) domain.ConventionService {
	return &conventionService{
		conventions:   conventions,
		venues:        venues,
		users:         users,
		registrations: registrations,
		opts:          newOptions(opts),
	}
}

func (s *conventionService) CreateConvention(ctx context.Context, c *domain.Convention) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.requireVenue(ctx, c.VenueID); err != nil {
		return err
	}
	if err := s.conventions.Create(ctx, c); err != nil {
		return fmt.Errorf("create convention: %w", err)
	}
	return nil
}

func (s *conventionService) UpdateConvention(ctx context.Context, conventionID string, c *domain.Convention) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.requireVenue(ctx, c.VenueID); err != nil {
		return err
	}
	c.ID = conventionID
	if err := s.conventions.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrConventionNotFound, conventionID)
		}
		return fmt.Errorf("update convention: %w", err)
	}
	return nil
}

func (s *conventionService) requireVenue(ctx context.Context, venueID string) error {
	_, err := s.venues.GetByID(ctx, venueID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrVenueNotFound, venueID)
	}
	if err != nil {
		return fmt.Errorf("lookup venue: %w", err)
	}
	return nil
}

func (s *conventionService) DeleteConvention(ctx context.Context, conventionID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.conventions.Delete(ctx, conventionID); err != nil {
		return fmt.Errorf("delete convention: %w", err)
	}
	return nil
}

func (s *conventionService) GetConvention(ctx context.Context, conventionID string) (*domain.Convention, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	c, err := s.conventions.GetByID(ctx, conventionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConventionNotFound, conventionID)
		}
		return nil, fmt.Errorf("get convention: %w", err)
	}
	return c, nil
}

func (s *conventionService) ListConventions(ctx context.Context, p domain.PaginationParams) ([]*domain.Convention, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	conventions, err := s.conventions.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list conventions: %w", err)
	}
	return conventions, nil
}

// JoinConvention registers userID for conventionID. The three checks run
// concurrently and are evaluated in a fixed order once all have completed.
func (s *conventionService) JoinConvention(ctx context.Context, conventionID, userID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	var (
		convention *domain.Convention
		user       *domain.User
		joined     bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.opts.timed("convention", func() error {
			c, err := s.conventions.GetByID(gctx, conventionID)
			convention = c
			return ignoreNotFound(err)
		})
	})
	g.Go(func() error {
		return s.opts.timed("user", func() error {
			u, err := s.users.GetByID(gctx, userID)
			user = u
			return ignoreNotFound(err)
		})
	})
	g.Go(func() error {
		return s.opts.timed("convention_membership", func() error {
			var err error
			joined, err = s.registrations.IsMember(gctx, conventionID, userID)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("join convention: %w", err)
	}

	switch {
	case convention == nil:
		return s.opts.reject(kindConvention, fmt.Errorf("%w: %s", domain.ErrConventionNotFound, conventionID))
	case user == nil:
		return s.opts.reject(kindConvention, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID))
	case joined:
		return s.opts.reject(kindConvention, fmt.Errorf("%w: user %s in convention %s", domain.ErrAlreadyJoined, userID, conventionID))
	}

	if err := s.registrations.Add(ctx, conventionID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			return s.opts.reject(kindConvention, fmt.Errorf("%w: user %s in convention %s", domain.ErrAlreadyJoined, userID, conventionID))
		}
		return fmt.Errorf("join convention: %w", err)
	}
	s.opts.metrics.IncRegistrationCreated(kindConvention)
	s.notifyJoined(ctx, convention, user)
	return nil
}

func (s *conventionService) notifyJoined(ctx context.Context, c *domain.Convention, u *domain.User) {
	if s.opts.email == nil || u.Mail == "" {
		return
	}
	data := &domain.ConventionJoinedEmailData{
		Email:          u.Mail,
		Name:           u.Name,
		ConventionID:   c.ID,
		ConventionName: c.Name,
	}
	if err := s.opts.email.SendConventionJoined(ctx, data); err != nil {
		s.opts.logger.WarnContext(ctx, "convention confirmation email failed",
			"convention_id", c.ID, "user_id", u.ID, "err", err)
	}
}

func (s *conventionService) LeaveConvention(ctx context.Context, conventionID, userID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.registrations.Remove(ctx, conventionID, userID); err != nil {
		return fmt.Errorf("leave convention: %w", err)
	}
	return nil
}

func (s *conventionService) ListConventionsForUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Convention, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	conventions, err := s.registrations.ListConventionsByUserID(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("list conventions for user: %w", err)
	}
	return conventions, nil
}
