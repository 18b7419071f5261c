package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

const createFacultyTable = `
CREATE TABLE IF NOT EXISTS faculty (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
	employee_id TEXT NOT NULL,
	department TEXT NOT NULL,
	subjects TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectFaculty = `
SELECT f.id, f.user_id, f.employee_id, f.department, f.subjects, f.created_at, f.updated_at,
       u.name, u.email, u.role, u.created_at
FROM faculty f
JOIN users u ON u.id = f.user_id
`

type FacultyRepository struct {
	db *sql.DB
}

func NewFacultyRepository(db *sql.DB) repository.FacultyRepository {
	return &FacultyRepository{db: db}
}

func (r *FacultyRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFacultyTable); err != nil {
		return fmt.Errorf("create faculty table: %w", err)
	}
	return nil
}

func (r *FacultyRepository) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.FacultyProfile) error {
	subjects, err := encodeSubjects(profile.Subjects)
	if err != nil {
		return err
	}

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
INSERT INTO faculty (user_id, employee_id, department, subjects, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.EmployeeID,
		profile.Department,
		subjects,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert faculty: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("faculty last insert id: %w", err)
	}
	profile.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit faculty create: %w", err)
	}
	return nil
}

func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*domain.FacultyProfile, error) {
	row := r.db.QueryRowContext(ctx, selectFaculty+`WHERE f.id = ?`, id)
	return scanFaculty(row)
}

func (r *FacultyRepository) GetByUserID(ctx context.Context, userID int64) (*domain.FacultyProfile, error) {
	row := r.db.QueryRowContext(ctx, selectFaculty+`WHERE f.user_id = ?`, userID)
	return scanFaculty(row)
}

func (r *FacultyRepository) List(ctx context.Context) ([]domain.FacultyProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectFaculty+`ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	defer rows.Close()

	var profiles []domain.FacultyProfile
	for rows.Next() {
		profile, err := scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func (r *FacultyRepository) Update(ctx context.Context, profile *domain.FacultyProfile) error {
	subjects, err := encodeSubjects(profile.Subjects)
	if err != nil {
		return err
	}

	profile.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE faculty SET employee_id = ?, department = ?, subjects = ?, updated_at = ? WHERE id = ?`,
		profile.EmployeeID,
		profile.Department,
		subjects,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update faculty: %w", err)
	}
	return requireRowAffected(res)
}

func (r *FacultyRepository) DeleteWithUser(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	if err := tx.QueryRowContext(ctx, `SELECT user_id FROM faculty WHERE id = ?`, id).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("load faculty owner: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM faculty WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("delete faculty user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit faculty delete: %w", err)
	}
	return nil
}

func scanFaculty(row interface {
	Scan(dest ...any) error
}) (*domain.FacultyProfile, error) {
	var (
		profile  domain.FacultyProfile
		owner    domain.User
		subjects string
	)
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.EmployeeID,
		&profile.Department,
		&subjects,
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
		return nil, fmt.Errorf("scan faculty: %w", err)
	}
	if err := json.Unmarshal([]byte(subjects), &profile.Subjects); err != nil {
		return nil, fmt.Errorf("decode faculty subjects: %w", err)
	}
	if profile.Subjects == nil {
		profile.Subjects = []string{}
	}
	owner.ID = profile.UserID
	profile.User = &owner
	return &profile, nil
}

func encodeSubjects(subjects []string) (string, error) {
	if subjects == nil {
		subjects = []string{}
	}
	raw, err := json.Marshal(subjects)
	if err != nil {
		return "", fmt.Errorf("encode faculty subjects: %w", err)
	}
	return string(raw), nil
}
