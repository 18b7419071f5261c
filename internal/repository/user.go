package repository

import (
	"context"

	"campus-server/internal/domain"
)

// UserRepository defines persistence operations for User identity records.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// EmailExists reports whether any user other than excludeID holds the
	// given email. Pass excludeID 0 to consider every user.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Update(ctx context.Context, user *domain.User) error
}
