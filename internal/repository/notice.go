package repository

import (
	"context"

	"campus-server/internal/domain"
)

// NoticeRepository defines persistence operations for board notices.
type NoticeRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, notice *domain.Notice) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Notice, error)
	// ListForAudiences returns notices whose audience matches any of the
	// given values, newest first.
	ListForAudiences(ctx context.Context, audiences ...domain.NoticeAudience) ([]domain.Notice, error)
	Delete(ctx context.Context, id int64) error
}
