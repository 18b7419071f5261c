package service

import (
	"context"
	"strings"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

// AddStudentInput carries an admin-created student account.
type AddStudentInput struct {
	Name       string
	Email      string
	Password   string
	RollNo     string
	Department string
	Course     string
}

// StudentPatch is a partial update; nil fields are left unchanged.
type StudentPatch struct {
	Name       *string
	RollNo     *string
	Department *string
	Course     *string
}

// StudentService manages student profiles and their linked users.
type StudentService interface {
	List(ctx context.Context) ([]domain.StudentProfile, error)
	Get(ctx context.Context, id int64) (*domain.StudentProfile, error)
	Add(ctx context.Context, input AddStudentInput) (*domain.User, *domain.StudentProfile, error)
	Update(ctx context.Context, id int64, patch StudentPatch) (*domain.StudentProfile, error)
	// UpdateByUser is the self-service variant; the profile is resolved by
	// the caller's own identity instead of a path id.
	UpdateByUser(ctx context.Context, userID int64, patch StudentPatch) (*domain.StudentProfile, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	students repository.StudentRepository
	users    repository.UserRepository
}

func NewStudentService(students repository.StudentRepository, users repository.UserRepository) StudentService {
	return &studentService{students: students, users: users}
}

func (s *studentService) List(ctx context.Context) ([]domain.StudentProfile, error) {
	return s.students.List(ctx)
}

func (s *studentService) Get(ctx context.Context, id int64) (*domain.StudentProfile, error) {
	return s.students.GetByID(ctx, id)
}

func (s *studentService) Add(ctx context.Context, input AddStudentInput) (*domain.User, *domain.StudentProfile, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	rollNo := strings.TrimSpace(input.RollNo)
	department := strings.TrimSpace(input.Department)
	course := strings.TrimSpace(input.Course)

	if name == "" || email == "" {
		return nil, nil, validationErrorf("Name and email are required.")
	}
	if len(password) < minPasswordLength {
		return nil, nil, validationErrorf("Password must be at least %d characters.", minPasswordLength)
	}
	if rollNo == "" || department == "" || course == "" {
		return nil, nil, validationErrorf("rollNo, department, course required for student.")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
	}
	profile := &domain.StudentProfile{
		RollNo:     rollNo,
		Department: department,
		Course:     course,
	}
	if err := s.students.CreateWithUser(ctx, user, profile); err != nil {
		return nil, nil, mapDuplicateEmail(err)
	}
	return sanitizeUser(user), profile, nil
}

// Update ignores empty values, matching the admin portal contract where
// blank form fields mean "leave unchanged".
func (s *studentService) Update(ctx context.Context, id int64, patch StudentPatch) (*domain.StudentProfile, error) {
	profile, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := patchValue(patch.RollNo); v != "" {
		profile.RollNo = v
	}
	if v := patchValue(patch.Department); v != "" {
		profile.Department = v
	}
	if v := patchValue(patch.Course); v != "" {
		profile.Course = v
	}
	if err := s.students.Update(ctx, profile); err != nil {
		return nil, err
	}
	if v := patchValue(patch.Name); v != "" {
		if err := s.users.UpdateName(ctx, profile.UserID, v); err != nil {
			return nil, err
		}
	}
	return s.students.GetByID(ctx, id)
}

func (s *studentService) UpdateByUser(ctx context.Context, userID int64, patch StudentPatch) (*domain.StudentProfile, error) {
	profile, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := s.users.UpdateName(ctx, userID, strings.TrimSpace(*patch.Name)); err != nil {
			return nil, err
		}
	}
	if patch.RollNo != nil {
		profile.RollNo = strings.TrimSpace(*patch.RollNo)
	}
	if patch.Department != nil {
		profile.Department = strings.TrimSpace(*patch.Department)
	}
	if patch.Course != nil {
		profile.Course = strings.TrimSpace(*patch.Course)
	}
	if err := s.students.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.students.GetByUserID(ctx, userID)
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	return s.students.DeleteWithUser(ctx, id)
}

func patchValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
