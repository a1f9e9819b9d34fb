package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"conventions/internal/domain"
)

const talksTable = "talks"

var talkColumns = []string{"title", "speaker_id", "convention_id", "start_time", "end_time", "capacity"}

var (
	talkSelectColumns = append([]string{"id"}, talkColumns...)
	talkInsertSQL     = insertQuery(talksTable, "id", talkColumns...)
	talkUpdateSQL     = updateQuery(talksTable, "id", talkColumns...)
	talkDeleteSQL     = deleteQuery(talksTable, "id")
	talkGetSQL        = selectQuery(talksTable, talkSelectColumns, "id")
	talkListSQL       = selectQuery(talksTable, talkSelectColumns)
)

type talkRepository struct {
	gw *Gateway
}

func NewTalkRepository(db *sql.DB) domain.TalkRepository {
	return &talkRepository{gw: NewGateway(db)}
}

func (r *talkRepository) Create(ctx context.Context, t *domain.Talk) error {
	conventionID, ok := parseID(t.ConventionID)
	if !ok {
		return fmt.Errorf("convention %q: %w", t.ConventionID, domain.ErrNotFound)
	}
	id, err := r.gw.Insert(ctx, talkInsertSQL, t.Title, t.SpeakerID, conventionID,
		nullInt64(t.StartTime), nullInt64(t.EndTime), nullInt(t.Capacity))
	if err != nil {
		return translateWriteErr(err)
	}
	t.ID = id
	return nil
}

func (r *talkRepository) Update(ctx context.Context, t *domain.Talk) error {
	id, ok := parseID(t.ID)
	if !ok {
		return domain.ErrNotFound
	}
	conventionID, ok := parseID(t.ConventionID)
	if !ok {
		return fmt.Errorf("convention %q: %w", t.ConventionID, domain.ErrNotFound)
	}
	n, err := r.gw.Exec(ctx, talkUpdateSQL, t.Title, t.SpeakerID, conventionID,
		nullInt64(t.StartTime), nullInt64(t.EndTime), nullInt(t.Capacity), id)
	if err != nil {
		return translateWriteErr(err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *talkRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.gw.Exec(ctx, talkDeleteSQL, key)
	return translateDeleteErr(err)
}

func (r *talkRepository) GetByID(ctx context.Context, id string) (*domain.Talk, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	t, err := get(ctx, r.gw, talkGetSQL, scanTalk, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get talk: %w", err)
	}
	return t, nil
}

func (r *talkRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Talk, error) {
	return list(ctx, r.gw, talkListSQL, scanTalk, p)
}

func scanTalk(s rowScanner) (*domain.Talk, error) {
	t := &domain.Talk{}
	var conventionID int64
	var start, end, capacity sql.NullInt64
	if err := s.Scan(&t.ID, &t.Title, &t.SpeakerID, &conventionID, &start, &end, &capacity); err != nil {
		return nil, err
	}
	t.ConventionID = strconv.FormatInt(conventionID, 10)
	t.StartTime = int64Ptr(start)
	t.EndTime = int64Ptr(end)
	t.Capacity = intPtr(capacity)
	return t, nil
}
