package service

import (
	"context"
	"strings"

	"campus-server/internal/domain"
	"campus-server/internal/repository"
)

// NoticeService manages the campus notice board.
type NoticeService interface {
	// ListFor returns the notices visible to the caller's role.
	ListFor(ctx context.Context, caller *domain.User) ([]domain.Notice, error)
	Create(ctx context.Context, caller *domain.User, title, body string, audience domain.NoticeAudience) (*domain.Notice, error)
	Delete(ctx context.Context, id int64) error
}

type noticeService struct {
	notices repository.NoticeRepository
}

func NewNoticeService(notices repository.NoticeRepository) NoticeService {
	return &noticeService{notices: notices}
}

func (s *noticeService) ListFor(ctx context.Context, caller *domain.User) ([]domain.Notice, error) {
	switch caller.Role {
	case domain.RoleStudent:
		return s.notices.ListForAudiences(ctx, domain.NoticeAudienceAll, domain.NoticeAudienceStudents)
	case domain.RoleFaculty:
		return s.notices.ListForAudiences(ctx, domain.NoticeAudienceAll, domain.NoticeAudienceFaculty)
	default:
		return s.notices.ListForAudiences(ctx,
			domain.NoticeAudienceAll, domain.NoticeAudienceStudents, domain.NoticeAudienceFaculty)
	}
}

func (s *noticeService) Create(ctx context.Context, caller *domain.User, title, body string, audience domain.NoticeAudience) (*domain.Notice, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, validationErrorf("Title and body are required.")
	}
	if audience == "" {
		audience = domain.NoticeAudienceAll
	}
	if !audience.Valid() {
		return nil, validationErrorf("Audience must be all, students or faculty.")
	}

	notice := &domain.Notice{
		Title:    title,
		Body:     body,
		Audience: audience,
		PostedBy: caller.ID,
	}
	if _, err := s.notices.Create(ctx, notice); err != nil {
		return nil, err
	}
	return s.notices.GetByID(ctx, notice.ID)
}

func (s *noticeService) Delete(ctx context.Context, id int64) error {
	return s.notices.Delete(ctx, id)
}
