package postgres

import (
	"context"
	"database/sql"

	"conventions/internal/domain"
)

const (
	talkRegistrationsTable     = "talk_registrations"
	talkRegistrationsViewTable = "view_talk_registrations"
)

var (
	talkRegistrationInsertSQL = insertQuery(talkRegistrationsTable, "", "user_id", "talk_id")
	talkRegistrationDeleteSQL = deleteQuery(talkRegistrationsTable, "user_id", "talk_id")
	talkRegistrationCountSQL  = countQuery(talkRegistrationsTable, "user_id", "talk_id")
	talksByUserSQL            = selectQuery(talkRegistrationsViewTable, talkSelectColumns, "user_id")
)

type talkRegistrationRepository struct {
	gw *Gateway
}

func NewTalkRegistrationRepository(db *sql.DB) domain.TalkRegistrationRepository {
	return &talkRegistrationRepository{gw: NewGateway(db)}
}

func (r *talkRegistrationRepository) Add(ctx context.Context, talkID, userID string) error {
	key, ok := parseID(talkID)
	if !ok {
		return domain.ErrTalkNotFound
	}
	_, err := r.gw.Exec(ctx, talkRegistrationInsertSQL, userID, key)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyJoined
		}
		return translateWriteErr(err)
	}
	return nil
}

func (r *talkRegistrationRepository) Remove(ctx context.Context, talkID, userID string) error {
	key, ok := parseID(talkID)
	if !ok {
		return nil
	}
	_, err := r.gw.Exec(ctx, talkRegistrationDeleteSQL, userID, key)
	return err
}

func (r *talkRegistrationRepository) IsMember(ctx context.Context, talkID, userID string) (bool, error) {
	key, ok := parseID(talkID)
	if !ok {
		return false, nil
	}
	n, err := r.gw.Count(ctx, talkRegistrationCountSQL, userID, key)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *talkRegistrationRepository) ListTalksByUserID(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Talk, error) {
	return list(ctx, r.gw, talksByUserSQL, scanTalk, p, userID)
}
