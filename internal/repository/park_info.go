package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
)

type ParkInfoRepository interface {
	List(ctx context.Context) ([]*model.ParkInfo, error)
	FindByKey(ctx context.Context, key string) (*model.ParkInfo, error)
}

type parkInfoRepoImpl struct {
	db *gorm.DB
}

func NewParkInfoRepository(db *gorm.DB) ParkInfoRepository {
	return &parkInfoRepoImpl{
		db: db,
	}
}

func (r *parkInfoRepoImpl) List(ctx context.Context) ([]*model.ParkInfo, error) {
	var entries []*model.ParkInfo
	if err := r.db.WithContext(ctx).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *parkInfoRepoImpl) FindByKey(ctx context.Context, key string) (*model.ParkInfo, error) {
	var entry model.ParkInfo
	err := r.db.WithContext(ctx).
		Where(&model.ParkInfo{Key: key}).
		First(&entry).Error

	if err != nil {
		return nil, err
	}

	return &entry, nil
}
