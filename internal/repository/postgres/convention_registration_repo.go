package postgres

import (
	"context"
	"database/sql"

	"conventions/internal/domain"
)

const (
	conventionRegistrationsTable     = "convention_registrations"
	conventionRegistrationsViewTable = "view_convention_registrations"
)

var (
	conventionRegistrationInsertSQL = insertQuery(conventionRegistrationsTable, "", "user_id", "convention_id")
	conventionRegistrationDeleteSQL = deleteQuery(conventionRegistrationsTable, "user_id", "convention_id")
	conventionRegistrationCountSQL  = countQuery(conventionRegistrationsTable, "user_id", "convention_id")
	conventionsByUserSQL            = selectQuery(conventionRegistrationsViewTable, conventionSelectColumns, "user_id")
)

type conventionRegistrationRepository struct {
	gw *Gateway
}

func NewConventionRegistrationRepository(db *sql.DB) domain.ConventionRegistrationRepository {
	return &conventionRegistrationRepository{gw: NewGateway(db)}
}

func (r *conventionRegistrationRepository) Add(ctx context.Context, conventionID, userID string) error {
	key, ok := parseID(conventionID)
	if !ok {
		return domain.ErrConventionNotFound
	}
	_, err := r.gw.Exec(ctx, conventionRegistrationInsertSQL, userID, key)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyJoined
		}
		return translateWriteErr(err)
	}
	return nil
}

func (r *conventionRegistrationRepository) Remove(ctx context.Context, conventionID, userID string) error {
	key, ok := parseID(conventionID)
	if !ok {
		return nil
	}
	_, err := r.gw.Exec(ctx, conventionRegistrationDeleteSQL, userID, key)
	return err
}

func (r *conventionRegistrationRepository) IsMember(ctx context.Context, conventionID, userID string) (bool, error) {
	key, ok := parseID(conventionID)
	if !ok {
		return false, nil
	}
	n, err := r.gw.Count(ctx, conventionRegistrationCountSQL, userID, key)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *conventionRegistrationRepository) ListConventionsByUserID(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Convention, error) {
	return list(ctx, r.gw, conventionsByUserSQL, scanConvention, p, userID)
}
