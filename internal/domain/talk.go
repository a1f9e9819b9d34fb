package domain

import "context"

// Talk is a session at a convention given by a speaker. Capacity is stored but
// never checked against registrations.
// swagger:model Talk
type Talk struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	SpeakerID    string `json:"speaker_id"`
	ConventionID string `json:"convention_id"`
	StartTime    *int64 `json:"start_time,omitempty"`
	EndTime      *int64 `json:"end_time,omitempty"`
	Capacity     *int   `json:"capacity,omitempty"`
}

// TalkRepository defines storage operations for talks.
type TalkRepository interface {
	Create(ctx context.Context, t *Talk) error
	Update(ctx context.Context, t *Talk) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Talk, error)
	List(ctx context.Context, p PaginationParams) ([]*Talk, error)
}

// TalkService defines talk CRUD and talk membership.
type TalkService interface {
	CreateTalk(ctx context.Context, t *Talk) error
	UpdateTalk(ctx context.Context, talkID string, t *Talk) error
	DeleteTalk(ctx context.Context, talkID string) error
	GetTalk(ctx context.Context, talkID string) (*Talk, error)
	ListTalks(ctx context.Context, p PaginationParams) ([]*Talk, error)
	JoinTalk(ctx context.Context, talkID, userID string) error
	LeaveTalk(ctx context.Context, talkID, userID string) error
	ListTalksForUser(ctx context.Context, userID string, p PaginationParams) ([]*Talk, error)
}
