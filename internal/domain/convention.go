package domain

import "context"

// Convention is a scheduled event hosted at a Venue. StartDate and EndDate are
// optional epoch seconds; no ordering between them is enforced.
// swagger:model Convention
type Convention struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VenueID   string `json:"venue_id"`
	StartDate *int64 `json:"start_date,omitempty"`
	EndDate   *int64 `json:"end_date,omitempty"`
}

// ConventionRepository defines storage operations for conventions.
type ConventionRepository interface {
	Create(ctx context.Context, c *Convention) error
	Update(ctx context.Context, c *Convention) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Convention, error)
	List(ctx context.Context, p PaginationParams) ([]*Convention, error)
}

// ConventionService defines convention CRUD and convention membership.
type ConventionService interface {
	CreateConvention(ctx context.Context, c *Convention) error
	UpdateConvention(ctx context.Context, conventionID string, c *Convention) error
	DeleteConvention(ctx context.Context, conventionID string) error
	GetConvention(ctx context.Context, conventionID string) (*Convention, error)
	ListConventions(ctx context.Context, p PaginationParams) ([]*Convention, error)
	JoinConvention(ctx context.Context, conventionID, userID string) error
	LeaveConvention(ctx context.Context, conventionID, userID string) error
	ListConventionsForUser(ctx context.Context, userID string, p PaginationParams) ([]*Convention, error)
}
