package service

import (
	"context"
	"errors"
	"strings"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

// fallbackAdminPassword is applied by Add when no password is supplied.
// Kept for compatibility with the admin portal contract; a known weakness.
const fallbackAdminPassword = "changeme"

// AddAdminInput carries an admin account created by an existing admin.
type AddAdminInput struct {
	Name       string
	Email      string
	Password   string
	EmployeeID string
	Position   string
	Department string
}

// AdminPatch is a partial update; nil fields are left unchanged. A
// password shorter than the minimum is silently ignored.
type AdminPatch struct {
	Name       *string
	Email      *string
	Password   *string
	EmployeeID *string
	Position   *string
	Department *string
}

// AdminService manages admin accounts. Deletion enforces the self-delete
// and last-admin guards.
type AdminService interface {
	List(ctx context.Context) ([]domain.AdminProfile, error)
	Get(ctx context.Context, id int64) (*domain.AdminProfile, error)
	Add(ctx context.Context, input AddAdminInput) (*domain.User, *domain.AdminProfile, error)
	Update(ctx context.Context, id int64, patch AdminPatch) (*domain.User, *domain.AdminProfile, error)
	Delete(ctx context.Context, id int64, caller *domain.User) error
	// EnsureDefaultAdmin creates the configured admin pair when no admin
	// profile exists yet. Returns true when an account was created.
	EnsureDefaultAdmin(ctx context.Context, name, email, password string) (bool, error)
}

type adminService struct {
	admins repository.AdminRepository
	users  repository.UserRepository
}

func NewAdminService(admins repository.AdminRepository, users repository.UserRepository) AdminService {
	return &adminService{admins: admins, users: users}
}

func (s *adminService) List(ctx context.Context) ([]domain.AdminProfile, error) {
	return s.admins.List(ctx)
}

func (s *adminService) Get(ctx context.Context, id int64) (*domain.AdminProfile, error) {
	return s.admins.GetByID(ctx, id)
}

func (s *adminService) Add(ctx context.Context, input AddAdminInput) (*domain.User, *domain.AdminProfile, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	employeeID := strings.TrimSpace(input.EmployeeID)
	department := strings.TrimSpace(input.Department)

	if name == "" || email == "" {
		return nil, nil, validationErrorf("Name and email are required.")
	}
	if employeeID == "" || department == "" {
		return nil, nil, validationErrorf("employeeId and department are required.")
	}
	if password == "" {
		password = fallbackAdminPassword
	} else if len(password) < minPasswordLength {
		return nil, nil, validationErrorf("Password must be at least %d characters.", minPasswordLength)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	profile := &domain.AdminProfile{
		EmployeeID: employeeID,
		Position:   strings.TrimSpace(input.Position),
		Department: department,
	}
	if err := s.admins.CreateWithUser(ctx, user, profile); err != nil {
		return nil, nil, mapDuplicateEmail(err)
	}
	return sanitizeUser(user), profile, nil
}

func (s *adminService) Update(ctx context.Context, id int64, patch AdminPatch) (*domain.User, *domain.AdminProfile, error) {
	profile, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, nil, err
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		taken, err := s.users.EmailExists(ctx, email, user.ID)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, ErrEmailTaken
		}
		user.Email = email
	}
	if patch.Password != nil && len(strings.TrimSpace(*patch.Password)) >= minPasswordLength {
		hash, err := hashPassword(strings.TrimSpace(*patch.Password))
		if err != nil {
			return nil, nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, mapDuplicateEmail(err)
	}

	if patch.EmployeeID != nil {
		profile.EmployeeID = strings.TrimSpace(*patch.EmployeeID)
	}
	if patch.Position != nil {
		profile.Position = strings.TrimSpace(*patch.Position)
	}
	if patch.Department != nil {
		profile.Department = strings.TrimSpace(*patch.Department)
	}
	if err := s.admins.Update(ctx, profile); err != nil {
		return nil, nil, err
	}

	updated, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return sanitizeUser(user), updated, nil
}

func (s *adminService) Delete(ctx context.Context, id int64, caller *domain.User) error {
	profile, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if caller != nil && profile.UserID == caller.ID {
		return ErrSelfDelete
	}
	if err := s.admins.DeleteWithUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLastAdmin) {
			return ErrLastAdmin
		}
		return err
	}
	return nil
}

func (s *adminService) EnsureDefaultAdmin(ctx context.Context, name, email, password string) (bool, error) {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		// the configured email belongs to a non-admin account; leave it alone
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	profile := &domain.AdminProfile{
		EmployeeID: "ADM001",
		Position:   "Admin",
		Department: "General",
	}
	if err := s.admins.CreateWithUser(ctx, user, profile); err != nil {
		return false, err
	}
	return true, nil
}
