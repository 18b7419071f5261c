package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

func addStudent(t *testing.T, env *testEnv, email string) (*domain.User, *domain.StudentProfile) {
	t.Helper()
	user, profile, err := env.studentSvc.Add(context.Background(), AddStudentInput{
		Name:       "Alice",
		Email:      email,
		Password:   "secret1",
		RollNo:     "R1",
		Department: "CS",
		Course:     "BTech",
	})
	require.NoError(t, err)
	return user, profile
}

func TestStudentUpdateIgnoresEmptyFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, profile := addStudent(t, env, "alice@example.com")

	// blank form fields mean "leave unchanged" on the admin path
	updated, err := env.studentSvc.Update(ctx, profile.ID, StudentPatch{
		RollNo: strPtr(""),
		Course: strPtr("MTech"),
	})
	require.NoError(t, err)
	require.Equal(t, "R1", updated.RollNo)
	require.Equal(t, "MTech", updated.Course)

	updated, err = env.studentSvc.Update(ctx, profile.ID, StudentPatch{})
	require.NoError(t, err)
	require.Equal(t, "R1", updated.RollNo)
	require.Equal(t, "MTech", updated.Course)
}

func TestStudentUpdateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, profile := addStudent(t, env, "alice@example.com")

	updated, err := env.studentSvc.Update(ctx, profile.ID, StudentPatch{Name: strPtr("Renamed")})
	require.NoError(t, err)
	require.NotNil(t, updated.User)
	require.Equal(t, "Renamed", updated.User.Name)
}

func TestStudentUpdateByUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, _ := addStudent(t, env, "alice@example.com")

	updated, err := env.studentSvc.UpdateByUser(ctx, user.ID, StudentPatch{
		Department: strPtr("EE"),
	})
	require.NoError(t, err)
	require.Equal(t, "EE", updated.Department)
	require.Equal(t, "R1", updated.RollNo)

	_, err = env.studentSvc.UpdateByUser(ctx, 9999, StudentPatch{})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStudentDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, profile := addStudent(t, env, "alice@example.com")
	require.NoError(t, env.studentSvc.Delete(ctx, profile.ID))

	_, err := env.studentSvc.Get(ctx, profile.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = env.users.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFacultySubjectsPatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, profile, err := env.facultySvc.Add(ctx, AddFacultyInput{
		Name: "Frank", Email: "frank@example.com", Password: "secret1",
		EmployeeID: "F1", Department: "Math", Subjects: []string{"Algebra"},
	})
	require.NoError(t, err)

	subjects := []string{"Algebra", "Calculus"}
	updated, err := env.facultySvc.Update(ctx, profile.ID, FacultyPatch{Subjects: &subjects})
	require.NoError(t, err)
	require.Equal(t, subjects, updated.Subjects)

	// an absent subjects field leaves the list alone
	updated, err = env.facultySvc.Update(ctx, profile.ID, FacultyPatch{Department: strPtr("Physics")})
	require.NoError(t, err)
	require.Equal(t, subjects, updated.Subjects)
	require.Equal(t, "Physics", updated.Department)
}

func TestNoticeVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adminUser, _ := addAdmin(t, env, "root@example.com", "secret1")
	studentUser, _ := addStudent(t, env, "alice@example.com")

	_, err := env.noticeSvc.Create(ctx, adminUser, "Holiday", "Campus closed Friday.", domain.NoticeAudienceAll)
	require.NoError(t, err)
	_, err = env.noticeSvc.Create(ctx, adminUser, "Exams", "Exam schedule posted.", domain.NoticeAudienceStudents)
	require.NoError(t, err)
	_, err = env.noticeSvc.Create(ctx, adminUser, "Grading", "Grades due Monday.", domain.NoticeAudienceFaculty)
	require.NoError(t, err)

	forStudent, err := env.noticeSvc.ListFor(ctx, studentUser)
	require.NoError(t, err)
	require.Len(t, forStudent, 2)
	for _, n := range forStudent {
		require.NotEqual(t, domain.NoticeAudienceFaculty, n.Audience)
	}

	forAdmin, err := env.noticeSvc.ListFor(ctx, adminUser)
	require.NoError(t, err)
	require.Len(t, forAdmin, 3)

	_, err = env.noticeSvc.Create(ctx, adminUser, "", "body", domain.NoticeAudienceAll)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
