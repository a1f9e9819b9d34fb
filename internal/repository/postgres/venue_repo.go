package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conventions/internal/domain"
)

const venuesTable = "venues"

var venueColumns = []string{"name", "street", "city", "country"}

var (
	venueInsertSQL = insertQuery(venuesTable, "id", venueColumns...)
	venueUpdateSQL = updateQuery(venuesTable, "id", venueColumns...)
	venueDeleteSQL = deleteQuery(venuesTable, "id")
	venueGetSQL    = selectQuery(venuesTable, append([]string{"id"}, venueColumns...), "id")
	venueListSQL   = selectQuery(venuesTable, append([]string{"id"}, venueColumns...))
)

type venueRepository struct {
	gw *Gateway
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{gw: NewGateway(db)}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	id, err := r.gw.Insert(ctx, venueInsertSQL, v.Name, nullString(v.Street), nullString(v.City), nullString(v.Country))
	if err != nil {
		return translateWriteErr(err)
	}
	v.ID = id
	return nil
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	id, ok := parseID(v.ID)
	if !ok {
		return domain.ErrNotFound
	}
	n, err := r.gw.Exec(ctx, venueUpdateSQL, v.Name, nullString(v.Street), nullString(v.City), nullString(v.Country), id)
	if err != nil {
		return translateWriteErr(err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return nil
	}
	_, err := r.gw.Exec(ctx, venueDeleteSQL, key)
	return translateDeleteErr(err)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	v, err := get(ctx, r.gw, venueGetSQL, scanVenue, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (r *venueRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Venue, error) {
	return list(ctx, r.gw, venueListSQL, scanVenue, p)
}

func scanVenue(s rowScanner) (*domain.Venue, error) {
	v := &domain.Venue{}
	var street, city, country sql.NullString
	if err := s.Scan(&v.ID, &v.Name, &street, &city, &country); err != nil {
		return nil, err
	}
	v.Street = street.String
	v.City = city.String
	v.Country = country.String
	return v, nil
}

// nullString stores empty optional text as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
