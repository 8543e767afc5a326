package repository

import (
	"context"
	"infinity-park/internal/model"

	"gorm.io/gorm"
)

type TicketTypeRepository interface {
	FindByID(ctx context.Context, id uint) (*model.TicketType, error)
	ListActive(ctx context.Context) ([]*model.TicketType, error)
}

type ticketTypeRepoImpl struct {
	db *gorm.DB
}

func NewTicketTypeRepository(db *gorm.DB) TicketTypeRepository {
	return &ticketTypeRepoImpl{
		db: db,
	}
}

func (r *ticketTypeRepoImpl) FindByID(ctx context.Context, id uint) (*model.TicketType, error) {
	var ticketType model.TicketType
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ticketType).Error

	if err != nil {
		return nil, err
	}

	return &ticketType, nil
}

func (r *ticketTypeRepoImpl) ListActive(ctx context.Context) ([]*model.TicketType, error) {
	var ticketTypes []*model.TicketType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id").
		Find(&ticketTypes).
		Error

	if err != nil {
		return nil, err
	}

	return ticketTypes, nil
}
