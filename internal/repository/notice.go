package repository

import (
	"context"
	"infinity-park/internal/model"
	"time"

	"gorm.io/gorm"
)

type NoticeRepository interface {
	ListCurrent(ctx context.Context, now time.Time) ([]*model.Notice, error)
}

type noticeRepoImpl struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepoImpl{
		db: db,
	}
}

// ListCurrent returns active notices that have not expired, newest first.
func (r *noticeRepoImpl) ListCurrent(ctx context.Context, now time.Time) ([]*model.Notice, error) {
	var notices []*model.Notice
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("published_at DESC").
		Find(&notices).
		Error

	if err != nil {
		return nil, err
	}

	return notices, nil
}
