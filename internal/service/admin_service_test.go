package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

func addAdmin(t *testing.T, env *testEnv, email, password string) (*domain.User, *domain.AdminProfile) {
	t.Helper()
	user, profile, err := env.adminSvc.Add(context.Background(), AddAdminInput{
		Name:       "Admin",
		Email:      email,
		Password:   password,
		EmployeeID: "A1",
		Position:   "Registrar",
		Department: "General",
	})
	require.NoError(t, err)
	return user, profile
}

func TestAddAdminFallbackPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	addAdmin(t, env, "root@example.com", "")

	// an empty password falls back to the well-known default
	result, err := env.auth.AdminLogin(ctx, "root@example.com", "changeme")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, result.User.Role)
}

func TestAddAdminShortPassword(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.adminSvc.Add(context.Background(), AddAdminInput{
		Name: "Admin", Email: "root@example.com", Password: "abc",
		EmployeeID: "A1", Department: "General",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, profile := addAdmin(t, env, "root@example.com", "secret1")

	user, updated, err := env.adminSvc.Update(ctx, profile.ID, AdminPatch{
		Name:     strPtr("Renamed"),
		Position: strPtr("Director"),
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", user.Name)
	require.Equal(t, "Director", updated.Position)
	require.Equal(t, "A1", updated.EmployeeID)

	// a too-short password is ignored, not rejected
	_, _, err = env.adminSvc.Update(ctx, profile.ID, AdminPatch{Password: strPtr("abc")})
	require.NoError(t, err)
	_, err = env.auth.AdminLogin(ctx, "root@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = env.adminSvc.Update(ctx, profile.ID, AdminPatch{Password: strPtr("newsecret")})
	require.NoError(t, err)
	_, err = env.auth.AdminLogin(ctx, "root@example.com", "newsecret")
	require.NoError(t, err)
}

func TestUpdateAdminEmailUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, first := addAdmin(t, env, "first@example.com", "secret1")
	registerStudent(t, env, "taken@example.com")

	_, _, err := env.adminSvc.Update(ctx, first.ID, AdminPatch{Email: strPtr("taken@example.com")})
	require.ErrorIs(t, err, ErrEmailTaken)

	// keeping your own email is not a conflict
	_, _, err = env.adminSvc.Update(ctx, first.ID, AdminPatch{Email: strPtr("First@Example.com")})
	require.NoError(t, err)
}

func TestDeleteAdminGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	firstUser, first := addAdmin(t, env, "first@example.com", "secret1")
	_, second := addAdmin(t, env, "second@example.com", "secret1")

	err := env.adminSvc.Delete(ctx, first.ID, firstUser)
	require.ErrorIs(t, err, ErrSelfDelete)

	require.NoError(t, env.adminSvc.Delete(ctx, second.ID, firstUser))

	err = env.adminSvc.Delete(ctx, first.ID, nil)
	require.ErrorIs(t, err, ErrLastAdmin)

	err = env.adminSvc.Delete(ctx, 9999, firstUser)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.adminSvc.EnsureDefaultAdmin(ctx, "Admin User", "admin@campus.com", "admin123")
	require.NoError(t, err)
	require.True(t, created)

	profiles, err := env.adminSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "ADM001", profiles[0].EmployeeID)

	created, err = env.adminSvc.EnsureDefaultAdmin(ctx, "Admin User", "admin@campus.com", "admin123")
	require.NoError(t, err)
	require.False(t, created)

	result, err := env.auth.AdminLogin(ctx, "admin@campus.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, "Admin User", result.User.Name)
}

func TestEnsureDefaultAdminEmailHeldByNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerStudent(t, env, "admin@campus.com")

	created, err := env.adminSvc.EnsureDefaultAdmin(ctx, "Admin User", "admin@campus.com", "admin123")
	require.NoError(t, err)
	require.False(t, created)
}
