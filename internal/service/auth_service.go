package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"campus-server/internal/auth"
	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

const minPasswordLength = 6

// RegisterInput carries a self-service registration request. Role-specific
// fields are only consulted for the matching role.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role

	// student
	RollNo     string
	Department string
	Course     string

	// faculty
	EmployeeID string
	Subjects   []string
}

// AuthResult bundles an issued token with the sanitized account and its
// role-specific profile.
type AuthResult struct {
	Token   string
	User    *domain.User
	Profile domain.Profile
}

// AuthService orchestrates registration, login and identity resolution.
type AuthService interface {
	CheckEmail(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// AdminLogin behaves like Login but answers ErrInvalidCredentials for
	// both unknown email and wrong password, and refuses non-admins.
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
	// ProfileFor fetches the role-appropriate profile for an already
	// authenticated user. A missing profile is not an error.
	ProfileFor(ctx context.Context, user *domain.User) (domain.Profile, error)
	// UserByID resolves a token's user id to a sanitized account record.
	UserByID(ctx context.Context, id int64) (*domain.User, error)
}

type authService struct {
	users    repository.UserRepository
	students repository.StudentRepository
	faculty  repository.FacultyRepository
	admins   repository.AdminRepository
	tokens   *auth.TokenIssuer
}

func NewAuthService(
	users repository.UserRepository,
	students repository.StudentRepository,
	faculty repository.FacultyRepository,
	admins repository.AdminRepository,
	tokens *auth.TokenIssuer,
) AuthService {
	return &authService{
		users:    users,
		students: students,
		faculty:  faculty,
		admins:   admins,
		tokens:   tokens,
	}
}

func (s *authService) CheckEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if name == "" {
		return nil, validationErrorf("Name is required.")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErrorf("A valid email is required.")
	}
	if len(password) < minPasswordLength {
		return nil, validationErrorf("Password must be at least %d characters.", minPasswordLength)
	}
	if !input.Role.Valid() {
		return nil, validationErrorf("Role must be student or faculty.")
	}
	if input.Role == domain.RoleAdmin {
		// Admins are added only by existing admins through the admin portal.
		return nil, validationErrorf("Admin accounts cannot be registered here.")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}

	var profile domain.Profile
	switch input.Role {
	case domain.RoleStudent:
		rollNo := strings.TrimSpace(input.RollNo)
		department := strings.TrimSpace(input.Department)
		course := strings.TrimSpace(input.Course)
		if rollNo == "" || department == "" || course == "" {
			return nil, validationErrorf("rollNo, department, course required for student.")
		}
		student := &domain.StudentProfile{
			RollNo:     rollNo,
			Department: department,
			Course:     course,
		}
		if err := s.students.CreateWithUser(ctx, user, student); err != nil {
			return nil, mapDuplicateEmail(err)
		}
		profile = student
	case domain.RoleFaculty:
		subjects := input.Subjects
		if subjects == nil {
			subjects = []string{}
		}
		fac := &domain.FacultyProfile{
			EmployeeID: strings.TrimSpace(input.EmployeeID),
			Department: strings.TrimSpace(input.Department),
			Subjects:   subjects,
		}
		if err := s.faculty.CreateWithUser(ctx, user, fac); err != nil {
			return nil, mapDuplicateEmail(err)
		}
		profile = fac
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: sanitizeUser(user), Profile: profile}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return s.sessionFor(ctx, user)
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return s.sessionFor(ctx, user)
}

func (s *authService) ProfileFor(ctx context.Context, user *domain.User) (domain.Profile, error) {
	var (
		profile domain.Profile
		err     error
	)
	switch user.Role {
	case domain.RoleStudent:
		var p *domain.StudentProfile
		if p, err = s.students.GetByUserID(ctx, user.ID); err == nil {
			profile = p
		}
	case domain.RoleFaculty:
		var p *domain.FacultyProfile
		if p, err = s.faculty.GetByUserID(ctx, user.ID); err == nil {
			profile = p
		}
	case domain.RoleAdmin:
		var p *domain.AdminProfile
		if p, err = s.admins.GetByUserID(ctx, user.ID); err == nil {
			profile = p
		}
	}
	if err != nil {
		// a user without a profile is served without one
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *authService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *authService) sessionFor(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	profile, err := s.ProfileFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: sanitizeUser(user), Profile: profile}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func mapDuplicateEmail(err error) error {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return ErrEmailTaken
	}
	return err
}
