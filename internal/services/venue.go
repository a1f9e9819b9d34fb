package services

import (
	"context"
	"errors"
	"fmt"

	"conventions/internal/domain"
)

type venueService struct {
	venues domain.VenueRepository
	opts   options
}

// NewVenueService creates a VenueService backed by the given repository.
func NewVenueService(venues domain.VenueRepository, opts ...Option) domain.VenueService {
	return &venueService{venues: venues, opts: newOptions(opts)}
}

func (s *venueService) CreateVenue(ctx context.Context, v *domain.Venue) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.venues.Create(ctx, v); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (s *venueService) UpdateVenue(ctx context.Context, venueID string, v *domain.Venue) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	v.ID = venueID
	if err := s.venues.Update(ctx, v); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrVenueNotFound, venueID)
		}
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

func (s *venueService) DeleteVenue(ctx context.Context, venueID string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	if err := s.venues.Delete(ctx, venueID); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

func (s *venueService) GetVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	v, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrVenueNotFound, venueID)
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (s *venueService) ListVenues(ctx context.Context, p domain.PaginationParams) ([]*domain.Venue, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()
	venues, err := s.venues.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}
