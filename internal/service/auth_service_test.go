package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campus-server/internal/domain"
)

func registerStudent(t *testing.T, env *testEnv, email string) *AuthResult {
	t.Helper()
	result, err := env.auth.Register(context.Background(), RegisterInput{
		Name:       "Alice",
		Email:      email,
		Password:   "secret1",
		Role:       domain.RoleStudent,
		RollNo:     "R1",
		Department: "CS",
		Course:     "BTech",
	})
	require.NoError(t, err)
	return result
}

func TestRegisterStudent(t *testing.T) {
	env := newTestEnv(t)

	result := registerStudent(t, env, "Alice@Example.Com ")
	require.NotEmpty(t, result.Token)
	require.Equal(t, "alice@example.com", result.User.Email)
	require.Empty(t, result.User.PasswordHash)

	student, ok := result.Profile.(*domain.StudentProfile)
	require.True(t, ok)
	require.Equal(t, "R1", student.RollNo)

	claims, err := env.tokens.Parse(result.Token)
	require.NoError(t, err)
	require.Equal(t, result.User.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	registerStudent(t, env, "alice@example.com")
	_, err := env.auth.Register(context.Background(), RegisterInput{
		Name: "Bob", Email: "ALICE@example.com", Password: "secret1",
		Role: domain.RoleStudent, RollNo: "R2", Department: "CS", Course: "BTech",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var verr *ValidationError

	_, err := env.auth.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1", Role: domain.RoleStudent})
	require.ErrorAs(t, err, &verr)

	_, err = env.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "short", Role: domain.RoleStudent})
	require.ErrorAs(t, err, &verr)

	_, err = env.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1", Role: domain.RoleAdmin})
	require.ErrorAs(t, err, &verr)

	_, err = env.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1", Role: domain.Role("ghost")})
	require.ErrorAs(t, err, &verr)
}

func TestRegisterFacultyDefaultsSubjects(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.auth.Register(context.Background(), RegisterInput{
		Name: "Frank", Email: "frank@example.com", Password: "secret1",
		Role: domain.RoleFaculty, EmployeeID: "F1", Department: "Math",
	})
	require.NoError(t, err)

	fac, ok := result.Profile.(*domain.FacultyProfile)
	require.True(t, ok)
	require.NotNil(t, fac.Subjects)
	require.Empty(t, fac.Subjects)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerStudent(t, env, "alice@example.com")

	result, err := env.auth.Login(ctx, "ALICE@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.IsType(t, (*domain.StudentProfile)(nil), result.Profile)

	_, err = env.auth.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrEmailNotFound)

	_, err = env.auth.Login(ctx, "alice@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerStudent(t, env, "alice@example.com")
	_, _, err := env.adminSvc.Add(ctx, AddAdminInput{
		Name: "Root", Email: "root@example.com", Password: "secret1",
		EmployeeID: "A1", Department: "General",
	})
	require.NoError(t, err)

	result, err := env.auth.AdminLogin(ctx, "root@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, result.User.Role)

	// unknown email and wrong password are indistinguishable
	_, err = env.auth.AdminLogin(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.AdminLogin(ctx, "root@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.AdminLogin(ctx, "alice@example.com", "secret1")
	require.ErrorIs(t, err, ErrNotAdmin)
}

func TestCheckEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exists, err := env.auth.CheckEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, exists)

	registerStudent(t, env, "alice@example.com")

	exists, err = env.auth.CheckEmail(ctx, " Alice@Example.com")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestProfileForMissingProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result := registerStudent(t, env, "alice@example.com")
	student, ok := result.Profile.(*domain.StudentProfile)
	require.True(t, ok)
	require.NoError(t, env.students.DeleteWithUser(ctx, student.ID))

	// deleting the pair removes the user too; recreate a bare user to
	// exercise the profile-less path
	user := &domain.User{Name: "Bare", Email: "bare@example.com", PasswordHash: "x", Role: domain.RoleStudent}
	_, err := env.users.Create(ctx, user)
	require.NoError(t, err)

	profile, err := env.auth.ProfileFor(ctx, user)
	require.NoError(t, err)
	require.Nil(t, profile)
}
