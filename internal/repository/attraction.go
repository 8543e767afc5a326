package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
)

type AttractionRepository interface {
	List(ctx context.Context, operationalOnly bool) ([]*model.Attraction, error)
	FindByID(ctx context.Context, id uint) (*model.Attraction, error)
	Create(ctx context.Context, attraction *model.Attraction) error
	Update(ctx context.Context, attraction *model.Attraction) error
	SetStatus(ctx context.Context, id uint, status model.AttractionStatus) error
}

type attractionRepoImpl struct {
	db *gorm.DB
}

func NewAttractionRepository(db *gorm.DB) AttractionRepository {
	return &attractionRepoImpl{
		db: db,
	}
}

func (r *attractionRepoImpl) List(ctx context.Context, operationalOnly bool) ([]*model.Attraction, error) {
	query := r.db.WithContext(ctx).Order("name")
	if operationalOnly {
		query = query.Where("status = ?", model.AttractionOperational)
	}

	var attractions []*model.Attraction
	if err := query.Find(&attractions).Error; err != nil {
		return nil, err
	}

	return attractions, nil
}

func (r *attractionRepoImpl) FindByID(ctx context.Context, id uint) (*model.Attraction, error) {
	var attraction model.Attraction
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&attraction).Error

	if err != nil {
		return nil, err
	}

	return &attraction, nil
}

func (r *attractionRepoImpl) Create(ctx context.Context, attraction *model.Attraction) error {
	return r.db.WithContext(ctx).Create(attraction).Error
}

// Update writes every column, including zero values and nil pointers.
func (r *attractionRepoImpl) Update(ctx context.Context, attraction *model.Attraction) error {
	return r.db.WithContext(ctx).
		Model(attraction).
		Select("*").
		Omit("id").
		Updates(attraction).Error
}

func (r *attractionRepoImpl) SetStatus(ctx context.Context, id uint, status model.AttractionStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Attraction{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
