package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

const createStudentsTable = `
CREATE TABLE IF NOT EXISTS students (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
	roll_no TEXT NOT NULL,
	department TEXT NOT NULL,
	course TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectStudent = `
SELECT s.id, s.user_id, s.roll_no, s.department, s.course, s.created_at, s.updated_at,
       u.name, u.email, u.role, u.created_at
FROM students s
JOIN users u ON u.id = s.user_id
`

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) repository.StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createStudentsTable); err != nil {
		return fmt.Errorf("create students table: %w", err)
	}
	return nil
}

func (r *StudentRepository) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.StudentProfile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	userID, err := insertUserTx(ctx, tx, user)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	profile.UserID = userID
	profile.CreatedAt = now
	profile.UpdatedAt = now

	res, err := tx.ExecContext(ctx, `
INSERT INTO students (user_id, roll_no, department, course, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.RollNo,
		profile.Department,
		profile.Course,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("student last insert id: %w", err)
	}
	profile.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student create: %w", err)
	}
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*domain.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, selectStudent+`WHERE s.id = ?`, id)
	return scanStudent(row)
}

func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, selectStudent+`WHERE s.user_id = ?`, userID)
	return scanStudent(row)
}

func (r *StudentRepository) List(ctx context.Context) ([]domain.StudentProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectStudent+`ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var profiles []domain.StudentProfile
	for rows.Next() {
		profile, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func (r *StudentRepository) Update(ctx context.Context, profile *domain.StudentProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE students SET roll_no = ?, department = ?, course = ?, updated_at = ? WHERE id = ?`,
		profile.RollNo,
		profile.Department,
		profile.Course,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireRowAffected(res)
}

func (r *StudentRepository) DeleteWithUser(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	if err := tx.QueryRowContext(ctx, `SELECT user_id FROM students WHERE id = ?`, id).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("load student owner: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("delete student user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student delete: %w", err)
	}
	return nil
}

func scanStudent(row interface {
	Scan(dest ...any) error
}) (*domain.StudentProfile, error) {
	var (
		profile domain.StudentProfile
		owner   domain.User
	)
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.RollNo,
		&profile.Department,
		&profile.Course,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&owner.Name,
		&owner.Email,
		&owner.Role,
		&owner.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan student: %w", err)
	}
	owner.ID = profile.UserID
	profile.User = &owner
	return &profile, nil
}

// insertUserTx mirrors UserRepository.Create inside an open transaction.
func insertUserTx(ctx context.Context, tx *sql.Tx, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := tx.ExecContext(ctx, `
INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}
