package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
)

type ShowRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*model.Show, error)
	FindByID(ctx context.Context, id uint) (*model.Show, error)
	Create(ctx context.Context, show *model.Show) error
	Update(ctx context.Context, show *model.Show) error
	SetActive(ctx context.Context, id uint, active bool) error
}

type showRepoImpl struct {
	db *gorm.DB
}

func NewShowRepository(db *gorm.DB) ShowRepository {
	return &showRepoImpl{
		db: db,
	}
}

func (r *showRepoImpl) List(ctx context.Context, activeOnly bool) ([]*model.Show, error) {
	query := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var shows []*model.Show
	if err := query.Find(&shows).Error; err != nil {
		return nil, err
	}

	return shows, nil
}

func (r *showRepoImpl) FindByID(ctx context.Context, id uint) (*model.Show, error) {
	var show model.Show
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&show).Error

	if err != nil {
		return nil, err
	}

	return &show, nil
}

func (r *showRepoImpl) Create(ctx context.Context, show *model.Show) error {
	return r.db.WithContext(ctx).Create(show).Error
}

func (r *showRepoImpl) Update(ctx context.Context, show *model.Show) error {
	return r.db.WithContext(ctx).
		Model(show).
		Select("*").
		Omit("id").
		Updates(show).Error
}

func (r *showRepoImpl) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&model.Show{}).
		Where("id = ?", id).
		Update("active", active)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
