package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItineraryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, itinerary *model.Itinerary) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []*model.ItineraryItem) error
	ListSummaries(ctx context.Context, userID uint) ([]*model.ItinerarySummary, error)
	FindForUser(ctx context.Context, userID, itineraryID uint) (*model.Itinerary, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, itineraryID uint) error
}

type itineraryRepoImpl struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepoImpl{
		db: db,
	}
}

func (r *itineraryRepoImpl) Create(ctx context.Context, tx *gorm.DB, itinerary *model.Itinerary) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(itinerary).Error
}

func (r *itineraryRepoImpl) CreateItems(ctx context.Context, tx *gorm.DB, items []*model.ItineraryItem) error {
	return tx.WithContext(ctx).CreateInBatches(items, insertBatchSize).Error
}

func (r *itineraryRepoImpl) ListSummaries(ctx context.Context, userID uint) ([]*model.ItinerarySummary, error) {
	var summaries []*model.ItinerarySummary
	err := r.db.WithContext(ctx).Model(&model.Itinerary{}).
		Select(`
			itineraries.id,
			itineraries.name,
			itineraries.visit_date,
			itineraries.created_at,
			COUNT(itinerary_items.id) AS item_count
		`).
		Joins("LEFT JOIN itinerary_items ON itinerary_items.itinerary_id = itineraries.id").
		Where("itineraries.user_id = ?", userID).
		Group("itineraries.id, itineraries.name, itineraries.visit_date, itineraries.created_at").
		Order("itineraries.visit_date DESC, itineraries.id DESC").
		Scan(&summaries).Error

	if err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *itineraryRepoImpl) FindForUser(ctx context.Context, userID, itineraryID uint) (*model.Itinerary, error) {
	var itinerary model.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("id = ? AND user_id = ?", itineraryID, userID).
		First(&itinerary).Error

	if err != nil {
		return nil, err
	}

	return &itinerary, nil
}

// Delete removes the itinerary and its items. Items go first so the result
// does not depend on the driver enforcing ON DELETE CASCADE.
func (r *itineraryRepoImpl) Delete(ctx context.Context, tx *gorm.DB, userID, itineraryID uint) error {
	var owned int64
	err := tx.WithContext(ctx).Model(&model.Itinerary{}).
		Where("id = ? AND user_id = ?", itineraryID, userID).
		Count(&owned).Error

	if err != nil {
		return err
	}
	if owned == 0 {
		return gorm.ErrRecordNotFound
	}

	err = tx.WithContext(ctx).
		Where("itinerary_id = ?", itineraryID).
		Delete(&model.ItineraryItem{}).Error
	if err != nil {
		return err
	}

	return tx.WithContext(ctx).
		Where("id = ? AND user_id = ?", itineraryID, userID).
		Delete(&model.Itinerary{}).Error
}
