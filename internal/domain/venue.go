package domain

import "context"

// Venue is a physical location hosting conventions.
// swagger:model Venue
type Venue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// VenueRepository defines storage operations for venues.
type VenueRepository interface {
	// Create persists v and sets v.ID to the generated id.
	Create(ctx context.Context, v *Venue) error
	// Update overwrites the stored fields of v.ID. Returns ErrNotFound when no row matched.
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, p PaginationParams) ([]*Venue, error)
}

// VenueService defines venue CRUD.
type VenueService interface {
	CreateVenue(ctx context.Context, v *Venue) error
	UpdateVenue(ctx context.Context, venueID string, v *Venue) error
	DeleteVenue(ctx context.Context, venueID string) error
	GetVenue(ctx context.Context, venueID string) (*Venue, error)
	ListVenues(ctx context.Context, p PaginationParams) ([]*Venue, error)
}
