package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campus-server/internal/auth"
	"campus-server/internal/repository"
	"campus-server/internal/repository/sqlite"
)

type testEnv struct {
	users    repository.UserRepository
	students repository.StudentRepository
	faculty  repository.FacultyRepository
	admins   repository.AdminRepository
	notices  repository.NoticeRepository

	auth       AuthService
	studentSvc StudentService
	facultySvc FacultyService
	adminSvc   AdminService
	noticeSvc  NoticeService
	tokens     *auth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		users:    sqlite.NewUserRepository(db),
		students: sqlite.NewStudentRepository(db),
		faculty:  sqlite.NewFacultyRepository(db),
		admins:   sqlite.NewAdminRepository(db),
		notices:  sqlite.NewNoticeRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, env.users.Init(ctx))
	require.NoError(t, env.students.Init(ctx))
	require.NoError(t, env.faculty.Init(ctx))
	require.NoError(t, env.admins.Init(ctx))
	require.NoError(t, env.notices.Init(ctx))

	env.tokens = auth.NewTokenIssuer("test-secret", time.Hour)
	env.auth = NewAuthService(env.users, env.students, env.faculty, env.admins, env.tokens)
	env.studentSvc = NewStudentService(env.students, env.users)
	env.facultySvc = NewFacultyService(env.faculty, env.users)
	env.adminSvc = NewAdminService(env.admins, env.users)
	env.noticeSvc = NewNoticeService(env.notices)
	return env
}

func strPtr(s string) *string { return &s }
