package service

import (
	"context"
	"strings"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

// AddFacultyInput carries an admin-created faculty account. EmployeeID,
// Department and Subjects may be empty.
type AddFacultyInput struct {
	Name       string
	Email      string
	Password   string
	EmployeeID string
	Department string
	Subjects   []string
}

// FacultyPatch is a partial update; nil fields are left unchanged.
type FacultyPatch struct {
	Name       *string
	EmployeeID *string
	Department *string
	Subjects   *[]string
}

// FacultyService manages faculty profiles and their linked users.
type FacultyService interface {
	List(ctx context.Context) ([]domain.FacultyProfile, error)
	Get(ctx context.Context, id int64) (*domain.FacultyProfile, error)
	Add(ctx context.Context, input AddFacultyInput) (*domain.User, *domain.FacultyProfile, error)
	Update(ctx context.Context, id int64, patch FacultyPatch) (*domain.FacultyProfile, error)
	UpdateByUser(ctx context.Context, userID int64, patch FacultyPatch) (*domain.FacultyProfile, error)
	Delete(ctx context.Context, id int64) error
}

type facultyService struct {
	faculty repository.FacultyRepository
	users   repository.UserRepository
}

func NewFacultyService(faculty repository.FacultyRepository, users repository.UserRepository) FacultyService {
	return &facultyService{faculty: faculty, users: users}
}

func (s *facultyService) List(ctx context.Context) ([]domain.FacultyProfile, error) {
	return s.faculty.List(ctx)
}

func (s *facultyService) Get(ctx context.Context, id int64) (*domain.FacultyProfile, error) {
	return s.faculty.GetByID(ctx, id)
}

func (s *facultyService) Add(ctx context.Context, input AddFacultyInput) (*domain.User, *domain.FacultyProfile, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if name == "" || email == "" {
		return nil, nil, validationErrorf("Name and email are required.")
	}
	if len(password) < minPasswordLength {
		return nil, nil, validationErrorf("Password must be at least %d characters.", minPasswordLength)
	}

	subjects := input.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleFaculty,
	}
	profile := &domain.FacultyProfile{
		EmployeeID: strings.TrimSpace(input.EmployeeID),
		Department: strings.TrimSpace(input.Department),
		Subjects:   subjects,
	}
	if err := s.faculty.CreateWithUser(ctx, user, profile); err != nil {
		return nil, nil, mapDuplicateEmail(err)
	}
	return sanitizeUser(user), profile, nil
}

func (s *facultyService) Update(ctx context.Context, id int64, patch FacultyPatch) (*domain.FacultyProfile, error) {
	profile, err := s.faculty.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyPatch(ctx, profile, patch); err != nil {
		return nil, err
	}
	return s.faculty.GetByID(ctx, id)
}

func (s *facultyService) UpdateByUser(ctx context.Context, userID int64, patch FacultyPatch) (*domain.FacultyProfile, error) {
	profile, err := s.faculty.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.applyPatch(ctx, profile, patch); err != nil {
		return nil, err
	}
	return s.faculty.GetByUserID(ctx, userID)
}

func (s *facultyService) applyPatch(ctx context.Context, profile *domain.FacultyProfile, patch FacultyPatch) error {
	if patch.EmployeeID != nil {
		profile.EmployeeID = strings.TrimSpace(*patch.EmployeeID)
	}
	if patch.Department != nil {
		profile.Department = strings.TrimSpace(*patch.Department)
	}
	if patch.Subjects != nil {
		subjects := *patch.Subjects
		if subjects == nil {
			subjects = []string{}
		}
		profile.Subjects = subjects
	}
	if err := s.faculty.Update(ctx, profile); err != nil {
		return err
	}
	if patch.Name != nil {
		if err := s.users.UpdateName(ctx, profile.UserID, strings.TrimSpace(*patch.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (s *facultyService) Delete(ctx context.Context, id int64) error {
	return s.faculty.DeleteWithUser(ctx, id)
}
