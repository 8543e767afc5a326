package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
)

type FoodCourtRepository interface {
	ListActive(ctx context.Context) ([]*model.FoodCourt, error)
	FindByID(ctx context.Context, id uint) (*model.FoodCourt, error)
	FindWithMenu(ctx context.Context, id uint) (*model.FoodCourt, error)
}

type foodCourtRepoImpl struct {
	db *gorm.DB
}

func NewFoodCourtRepository(db *gorm.DB) FoodCourtRepository {
	return &foodCourtRepoImpl{
		db: db,
	}
}

func (r *foodCourtRepoImpl) ListActive(ctx context.Context) ([]*model.FoodCourt, error) {
	var foodCourts []*model.FoodCourt
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&foodCourts).
		Error

	if err != nil {
		return nil, err
	}

	return foodCourts, nil
}

func (r *foodCourtRepoImpl) FindByID(ctx context.Context, id uint) (*model.FoodCourt, error) {
	var foodCourt model.FoodCourt
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&foodCourt).Error

	if err != nil {
		return nil, err
	}

	return &foodCourt, nil
}

// FindWithMenu loads the food court with its available menu items,
// grouped by category.
func (r *foodCourtRepoImpl) FindWithMenu(ctx context.Context, id uint) (*model.FoodCourt, error) {
	var foodCourt model.FoodCourt
	err := r.db.WithContext(ctx).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("available = ?", true).Order("category, name")
		}).
		Where("id = ?", id).
		First(&foodCourt).Error

	if err != nil {
		return nil, err
	}

	return &foodCourt, nil
}
