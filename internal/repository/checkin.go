package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
)

// CheckInStats is the check-in part of a user profile.
type CheckInStats struct {
	Count  int64
	Points int64
}

type CheckInRepository interface {
	Exists(ctx context.Context, tx *gorm.DB, userID, attractionID uint, day string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, checkIn *model.CheckIn) error
	Stats(ctx context.Context, userID uint) (*CheckInStats, error)
}

type checkInRepoImpl struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &checkInRepoImpl{
		db: db,
	}
}

func (r *checkInRepoImpl) Exists(ctx context.Context, tx *gorm.DB, userID, attractionID uint, day string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.CheckIn{}).
		Where("user_id = ? AND attraction_id = ? AND check_in_date = ?", userID, attractionID, day).
		Count(&count).Error

	return count > 0, err
}

func (r *checkInRepoImpl) Create(ctx context.Context, tx *gorm.DB, checkIn *model.CheckIn) error {
	return tx.WithContext(ctx).Create(checkIn).Error
}

func (r *checkInRepoImpl) Stats(ctx context.Context, userID uint) (*CheckInStats, error) {
	var stats CheckInStats
	err := r.db.WithContext(ctx).Model(&model.CheckIn{}).
		Select("COUNT(*) AS count, COALESCE(SUM(points), 0) AS points").
		Where("user_id = ?", userID).
		Scan(&stats).Error

	if err != nil {
		return nil, err
	}

	return &stats, nil
}
