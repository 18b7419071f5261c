package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

const createNoticesTable = `
CREATE TABLE IF NOT EXISTS notices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	audience TEXT NOT NULL,
	posted_by INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL
);
`

const selectNotice = `
SELECT n.id, n.title, n.body, n.audience, n.posted_by, n.created_at,
       u.name, u.email, u.role
FROM notices n
JOIN users u ON u.id = n.posted_by
`

type NoticeRepository struct {
	db *sql.DB
}

func NewNoticeRepository(db *sql.DB) repository.NoticeRepository {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNoticesTable); err != nil {
		return fmt.Errorf("create notices table: %w", err)
	}
	return nil
}

func (r *NoticeRepository) Create(ctx context.Context, notice *domain.Notice) (int64, error) {
	notice.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO notices (title, body, audience, posted_by, created_at)
VALUES (?, ?, ?, ?, ?)`,
		notice.Title,
		notice.Body,
		notice.Audience,
		notice.PostedBy,
		notice.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert notice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("notice last insert id: %w", err)
	}
	notice.ID = id
	return id, nil
}

func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*domain.Notice, error) {
	row := r.db.QueryRowContext(ctx, selectNotice+`WHERE n.id = ?`, id)
	return scanNotice(row)
}

func (r *NoticeRepository) ListForAudiences(ctx context.Context, audiences ...domain.NoticeAudience) ([]domain.Notice, error) {
	if len(audiences) == 0 {
		return []domain.Notice{}, nil
	}

	placeholders := strings.Repeat("?, ", len(audiences))
	placeholders = strings.TrimSuffix(placeholders, ", ")
	args := make([]any, len(audiences))
	for i, a := range audiences {
		args[i] = a
	}

	rows, err := r.db.QueryContext(ctx,
		selectNotice+`WHERE n.audience IN (`+placeholders+`) ORDER BY n.id DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	var notices []domain.Notice
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, *notice)
	}
	return notices, rows.Err()
}

func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	return requireRowAffected(res)
}

func scanNotice(row interface {
	Scan(dest ...any) error
}) (*domain.Notice, error) {
	var (
		notice domain.Notice
		poster domain.User
	)
	if err := row.Scan(
		&notice.ID,
		&notice.Title,
		&notice.Body,
		&notice.Audience,
		&notice.PostedBy,
		&notice.CreatedAt,
		&poster.Name,
		&poster.Email,
		&poster.Role,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan notice: %w", err)
	}
	poster.ID = notice.PostedBy
	notice.Poster = &poster
	return &notice, nil
}
