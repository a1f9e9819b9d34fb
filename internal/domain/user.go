package domain

import "context"

// User is a registered person. ID is the identity supplied by the identity
// provider and never changes after creation.
// swagger:model User
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Mail    string `json:"mail"`
}

// UserRepository defines storage operations for users.
type UserRepository interface {
	// Create persists u under u.ID. Returns ErrIdentityAlreadyExists on a key collision.
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, p PaginationParams) ([]*User, error)
}

// UserService defines user CRUD.
type UserService interface {
	CreateUser(ctx context.Context, u *User) error
	UpdateUser(ctx context.Context, userID string, u *User) error
	DeleteUser(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*User, error)
	ListUsers(ctx context.Context, p PaginationParams) ([]*User, error)
}
