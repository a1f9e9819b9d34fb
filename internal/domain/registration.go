package domain

import "context"

// ConventionRegistration links a user to a convention they joined.
type ConventionRegistration struct {
	ConventionID string `json:"convention_id"`
	UserID       string `json:"user_id"`
}

// TalkRegistration links a guest to a talk they joined. A talk's speaker is never a guest.
type TalkRegistration struct {
	TalkID string `json:"talk_id"`
	UserID string `json:"user_id"`
}

// ConventionRegistrationRepository defines storage for convention memberships.
type ConventionRegistrationRepository interface {
	// Add inserts the membership. Returns ErrAlreadyJoined when the pair exists.
	Add(ctx context.Context, conventionID, userID string) error
	// Remove deletes the membership; removing a missing pair is not an error.
	Remove(ctx context.Context, conventionID, userID string) error
	IsMember(ctx context.Context, conventionID, userID string) (bool, error)
	// ListConventionsByUserID reads the registration view filtered by user.
	ListConventionsByUserID(ctx context.Context, userID string, p PaginationParams) ([]*Convention, error)
}

// TalkRegistrationRepository defines storage for talk guest registrations.
type TalkRegistrationRepository interface {
	Add(ctx context.Context, talkID, userID string) error
	Remove(ctx context.Context, talkID, userID string) error
	IsMember(ctx context.Context, talkID, userID string) (bool, error)
	ListTalksByUserID(ctx context.Context, userID string, p PaginationParams) ([]*Talk, error)
}
