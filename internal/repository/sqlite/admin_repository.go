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

const createAdminsTable = `
CREATE TABLE IF NOT EXISTS admins (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
	employee_id TEXT NOT NULL,
	position TEXT NOT NULL,
	department TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectAdmin = `
SELECT a.id, a.user_id, a.employee_id, a.position, a.department, a.created_at, a.updated_at,
       u.name, u.email, u.role, u.created_at
FROM admins a
JOIN users u ON u.id = a.user_id
`

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) repository.AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAdminsTable); err != nil {
		return fmt.Errorf("create admins table: %w", err)
	}
	return nil
}

func (r *AdminRepository) CreateWithUser(ctx context.Context, user *domain.User, profile *domain.AdminProfile) error {
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
INSERT INTO admins (user_id, employee_id, position, department, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.EmployeeID,
		profile.Position,
		profile.Department,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("admin last insert id: %w", err)
	}
	profile.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit admin create: %w", err)
	}
	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*domain.AdminProfile, error) {
	row := r.db.QueryRowContext(ctx, selectAdmin+`WHERE a.id = ?`, id)
	return scanAdmin(row)
}

func (r *AdminRepository) GetByUserID(ctx context.Context, userID int64) (*domain.AdminProfile, error) {
	row := r.db.QueryRowContext(ctx, selectAdmin+`WHERE a.user_id = ?`, userID)
	return scanAdmin(row)
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.AdminProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectAdmin+`ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var profiles []domain.AdminProfile
	for rows.Next() {
		profile, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func (r *AdminRepository) Update(ctx context.Context, profile *domain.AdminProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE admins SET employee_id = ?, position = ?, department = ?, updated_at = ? WHERE id = ?`,
		profile.EmployeeID,
		profile.Position,
		profile.Department,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return requireRowAffected(res)
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}

// DeleteWithUser re-checks the admin count inside the same transaction
// that performs the delete, so two concurrent deletes cannot both pass
// the last-admin guard.
func (r *AdminRepository) DeleteWithUser(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	if err := tx.QueryRowContext(ctx, `SELECT user_id FROM admins WHERE id = ?`, id).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("load admin owner: %w", err)
	}

	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count <= 1 {
		return repository.ErrLastAdmin
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("delete admin user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit admin delete: %w", err)
	}
	return nil
}

func scanAdmin(row interface {
	Scan(dest ...any) error
}) (*domain.AdminProfile, error) {
	var (
		profile domain.AdminProfile
		owner   domain.User
	)
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.EmployeeID,
		&profile.Position,
		&profile.Department,
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
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	owner.ID = profile.UserID
	profile.User = &owner
	return &profile, nil
}
