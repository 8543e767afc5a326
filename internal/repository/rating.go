package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	// Upsert stores one rating per user and item and reports whether a new
	// row was created.
	Upsert(ctx context.Context, tx *gorm.DB, rating *model.Rating) (bool, error)
	Summary(ctx context.Context, kind model.ItemKind, referenceID uint) (*model.RatingSummary, error)
}

type ratingRepoImpl struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepoImpl{
		db: db,
	}
}

// Upsert relies on the unique owner index, so two first ratings racing
// each other end as one row holding the later score.
func (r *ratingRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, rating *model.Rating) (bool, error) {
	var existing int64
	err := tx.WithContext(ctx).Model(&model.Rating{}).
		Where("user_id = ? AND kind = ? AND reference_id = ?", rating.UserID, rating.Kind, rating.ReferenceID).
		Count(&existing).Error

	if err != nil {
		return false, err
	}

	err = tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}, {Name: "reference_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "rated_at"}),
	}).Create(rating).Error

	return existing == 0, err
}

func (r *ratingRepoImpl) Summary(ctx context.Context, kind model.ItemKind, referenceID uint) (*model.RatingSummary, error) {
	summary := model.RatingSummary{Kind: kind, ReferenceID: referenceID}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("kind = ? AND reference_id = ?", kind, referenceID).
		Scan(&summary).Error

	if err != nil {
		return nil, err
	}

	return &summary, nil
}
