package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"conventions/internal/domain"
)

const usersTable = "users"

var userColumns = []string{"name", "street", "city", "country", "phone", "mail"}

var (
	userSelectColumns = append([]string{"id"}, userColumns...)
	userInsertSQL     = insertQuery(usersTable, "", userSelectColumns...)
	userUpdateSQL     = updateQuery(usersTable, "id", userColumns...)
	userDeleteSQL     = deleteQuery(usersTable, "id")
	userGetSQL        = selectQuery(usersTable, userSelectColumns, "id")
	userListSQL       = selectQuery(usersTable, userSelectColumns)
)

type userRepository struct {
	gw *Gateway
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{gw: NewGateway(db)}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.gw.Exec(ctx, userInsertSQL, u.ID, u.Name, nullString(u.Street), nullString(u.City),
		nullString(u.Country), nullString(u.Phone), nullString(u.Mail))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrIdentityAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	n, err := r.gw.Exec(ctx, userUpdateSQL, u.Name, nullString(u.Street), nullString(u.City),
		nullString(u.Country), nullString(u.Phone), nullString(u.Mail), u.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	_, err := r.gw.Exec(ctx, userDeleteSQL, id)
	return translateDeleteErr(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := get(ctx, r.gw, userGetSQL, scanUser, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	return list(ctx, r.gw, userListSQL, scanUser, p)
}

func scanUser(s rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var street, city, country, phone, mail sql.NullString
	if err := s.Scan(&u.ID, &u.Name, &street, &city, &country, &phone, &mail); err != nil {
		return nil, err
	}
	u.Street = street.String
	u.City = city.String
	u.Country = country.String
	u.Phone = phone.String
	u.Mail = mail.String
	return u, nil
}
