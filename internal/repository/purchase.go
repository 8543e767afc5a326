package repository

import (
	"context"
	"infinity-park/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertBatchSize keeps each multi-row INSERT under SQLite's bound
// variable limit.
const insertBatchSize = 500

// PurchaseStats aggregates a user's purchase history.
type PurchaseStats struct {
	Purchases  int64
	Tickets    int64
	TotalSpent decimal.Decimal
}

type PurchaseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error
	CreateTicketItems(ctx context.Context, tx *gorm.DB, items []*model.TicketItem) error
	ListSummaries(ctx context.Context, userID uint) ([]*model.PurchaseSummary, error)
	FindForUser(ctx context.Context, userID, purchaseID uint) (*model.Purchase, error)
	Stats(ctx context.Context, userID uint) (*PurchaseStats, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(purchase).Error
}

func (r *purchaseRepoImpl) CreateTicketItems(ctx context.Context, tx *gorm.DB, items []*model.TicketItem) error {
	return tx.WithContext(ctx).Omit(clause.Associations).CreateInBatches(items, insertBatchSize).Error
}

func (r *purchaseRepoImpl) ListSummaries(ctx context.Context, userID uint) ([]*model.PurchaseSummary, error) {
	var summaries []*model.PurchaseSummary
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Select(`
			purchases.id,
			purchases.purchased_at,
			purchases.total_amount,
			purchases.payment_method,
			purchases.status,
			COUNT(ticket_items.id) AS ticket_count
		`).
		Joins("LEFT JOIN ticket_items ON ticket_items.purchase_id = purchases.id").
		Where("purchases.user_id = ?", userID).
		Group("purchases.id, purchases.purchased_at, purchases.total_amount, purchases.payment_method, purchases.status").
		Order("purchases.purchased_at DESC, purchases.id DESC").
		Scan(&summaries).Error

	if err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *purchaseRepoImpl) FindForUser(ctx context.Context, userID, purchaseID uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("ticket_items.id")
		}).
		Preload("Tickets.TicketType").
		Where("id = ? AND user_id = ?", purchaseID, userID).
		First(&purchase).Error

	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) Stats(ctx context.Context, userID uint) (*PurchaseStats, error) {
	var stats PurchaseStats
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Select("COUNT(*) AS purchases, COALESCE(SUM(total_amount), 0) AS total_spent").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&model.TicketItem{}).
		Joins("JOIN purchases ON purchases.id = ticket_items.purchase_id").
		Where("purchases.user_id = ?", userID).
		Count(&stats.Tickets).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
