package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"conventions/internal/domain"
)

const conventionsTable = "conventions"

var conventionColumns = []string{"name", "venue_id", "start_date", "end_date"}

var (
	conventionSelectColumns = append([]string{"id"}, conventionColumns...)
	conventionInsertSQL     = insertQuery(conventionsTable, "id", conventionColumns...)
	conventionUpdateSQL     = updateQuery(conventionsTable, "id", conventionColumns...)
	conventionDeleteSQL     = deleteQuery(conventionsTable, "id")
	conventionGetSQL        = selectQuery(conventionsTable, conventionSelectColumns, "id")
	conventionListSQL       = selectQuery(conventionsTable, conventionSelectColumns)
)

type conventionRepository struct {
	gw *Gateway
}

func NewConventionRepository(db *sql.DB) domain.ConventionRepository {
	return &conventionRepository{gw: NewGateway(db)}
}

func (r *conventionRepository) Create(ctx context.Context, c *domain.Convention) error {
	venueID, ok := parseID(c.VenueID)
	if !ok {
		return fmt.Errorf("venue %q: %w", c.VenueID, domain.ErrNotFound)
	}
	id, err := r.gw.Insert(ctx, conventionInsertSQL, c.Name, venueID, nullInt64(c.StartDate), nullInt64(c.EndDate))
	if err != nil {
		return translateWriteErr(err)
	}
	c.ID = id
	return nil
}

func (r *conventionRepository) Update(ctx context.Context, c *domain.Convention) error {
	id, ok := parseID(c.ID)
	if !ok {
		return domain.ErrNotFound
	}
	venueID, ok := parseID(c.VenueID)
	if !ok {
		return fmt.Errorf("venue %q: %w", c.VenueID, domain.ErrNotFound)
	}
	n, err := r.gw.Exec(ctx, conventionUpdateSQL, c.Name, venueID, nullInt64(c.StartDate), nullInt64(c.EndDate), id)
	if err != nil {
		return translateWriteErr(err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *conventionRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.gw.Exec(ctx, conventionDeleteSQL, key)
	return translateDeleteErr(err)
}

func (r *conventionRepository) GetByID(ctx context.Context, id string) (*domain.Convention, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	c, err := get(ctx, r.gw, conventionGetSQL, scanConvention, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get convention: %w", err)
	}
	return c, nil
}

func (r *conventionRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Convention, error) {
	return list(ctx, r.gw, conventionListSQL, scanConvention, p)
}

func scanConvention(s rowScanner) (*domain.Convention, error) {
	c := &domain.Convention{}
	var venueID int64
	var start, end sql.NullInt64
	if err := s.Scan(&c.ID, &c.Name, &venueID, &start, &end); err != nil {
		return nil, err
	}
	c.VenueID = strconv.FormatInt(venueID, 10)
	c.StartDate = int64Ptr(start)
	c.EndDate = int64Ptr(end)
	return c, nil
}
