package repository

import (
	"context"

	"campus-server/internal/domain"
)

// StudentRepository defines persistence operations for student profiles.
// A profile and its owning user are created and deleted as one unit.
type StudentRepository interface {
	Init(ctx context.Context) error
	// CreateWithUser inserts the user and its student profile in a single
	// transaction so a failure cannot leave an orphaned identity record.
	CreateWithUser(ctx context.Context, user *domain.User, profile *domain.StudentProfile) error
	GetByID(ctx context.Context, id int64) (*domain.StudentProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error)
	List(ctx context.Context) ([]domain.StudentProfile, error)
	Update(ctx context.Context, profile *domain.StudentProfile) error
	// DeleteWithUser removes the profile and its linked user together.
	DeleteWithUser(ctx context.Context, id int64) error
}

// FacultyRepository defines persistence operations for faculty profiles.
type FacultyRepository interface {
	Init(ctx context.Context) error
	CreateWithUser(ctx context.Context, user *domain.User, profile *domain.FacultyProfile) error
	GetByID(ctx context.Context, id int64) (*domain.FacultyProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.FacultyProfile, error)
	List(ctx context.Context) ([]domain.FacultyProfile, error)
	Update(ctx context.Context, profile *domain.FacultyProfile) error
	DeleteWithUser(ctx context.Context, id int64) error
}

// AdminRepository defines persistence operations for admin profiles.
type AdminRepository interface {
	Init(ctx context.Context) error
	CreateWithUser(ctx context.Context, user *domain.User, profile *domain.AdminProfile) error
	GetByID(ctx context.Context, id int64) (*domain.AdminProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.AdminProfile, error)
	List(ctx context.Context) ([]domain.AdminProfile, error)
	Update(ctx context.Context, profile *domain.AdminProfile) error
	Count(ctx context.Context) (int64, error)
	// DeleteWithUser removes the profile and its linked user inside one
	// transaction that also re-checks the admin count, so concurrent
	// deletes cannot drop the system below one admin. Returns
	// ErrLastAdmin when only one admin remains.
	DeleteWithUser(ctx context.Context, id int64) error
}
