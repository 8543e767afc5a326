package service

import (
	"context"
	"errors"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"infinity-park/internal/dto"
	"infinity-park/internal/logger"
	"infinity-park/internal/model"
	"infinity-park/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CodeGenerator returns a new transaction code for each call.
type CodeGenerator func() string

// NewTransactionCode is the default generator: a random UUIDv4.
func NewTransactionCode() string {
	return uuid.NewString()
}

type PurchaseService interface {
	VisitDates() []string
	Purchase(ctx context.Context, sess *auth.Session, req dto.PurchaseRequest) (*model.Purchase, error)
	ListPurchases(ctx context.Context, sess *auth.Session) ([]*model.PurchaseSummary, error)
	GetPurchase(ctx context.Context, sess *auth.Session, purchaseID uint) (*model.Purchase, error)
}

type purchaseServiceImpl struct {
	db             *gorm.DB
	ticketTypeRepo repository.TicketTypeRepository
	purchaseRepo   repository.PurchaseRepository
	gateway        PaymentGateway
	window         VisitWindow
	newCode        CodeGenerator
	log            *logger.Logger
}

func NewPurchaseService(
	db *gorm.DB,
	ticketTypeRepo repository.TicketTypeRepository,
	purchaseRepo repository.PurchaseRepository,
	gateway PaymentGateway,
	window VisitWindow,
	newCode CodeGenerator,
	log *logger.Logger,
) PurchaseService {
	if newCode == nil {
		newCode = NewTransactionCode
	}
	return &purchaseServiceImpl{
		db:             db,
		ticketTypeRepo: ticketTypeRepo,
		purchaseRepo:   purchaseRepo,
		gateway:        gateway,
		window:         window,
		newCode:        newCode,
		log:            log,
	}
}

func (s *purchaseServiceImpl) VisitDates() []string {
	return s.window.Dates()
}

func (s *purchaseServiceImpl) Purchase(ctx context.Context, sess *auth.Session, req dto.PurchaseRequest) (*model.Purchase, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	if req.Quantity < 1 {
		return nil, apperr.Validation("quantity", "must be at least 1")
	}
	method := model.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return nil, apperr.Validation("payment_method", "choose a payment method")
	}
	if err := s.window.Check("visit_date", req.VisitDate); err != nil {
		return nil, err
	}

	ticketType, err := s.ticketTypeRepo.FindByID(ctx, req.TicketTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("ticket_type_id", "choose a ticket type")
	}
	if err != nil {
		return nil, apperr.Persistence("load ticket type", err)
	}
	if !ticketType.Active {
		return nil, apperr.Validation("ticket_type_id", "ticket type is no longer sold")
	}

	total := ticketType.BasePrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	code := s.newCode()

	charge, err := s.gateway.Charge(ctx, ChargeRequest{
		TransactionCode: code,
		Method:          method,
		Amount:          total,
		Nonce:           req.PaymentNonce,
	})
	if err != nil {
		return nil, fmt.Errorf("charge purchase %s: %w", code, err)
	}

	purchase := &model.Purchase{
		UserID:           sess.UserID,
		PurchasedAt:      s.window.Now().UTC(),
		TotalAmount:      total,
		PaymentMethod:    method,
		Status:           charge.Status,
		TransactionCode:  code,
		GatewayReference: charge.Reference,
	}

	items := make([]*model.TicketItem, req.Quantity)
	for i := range items {
		items[i] = &model.TicketItem{
			TicketTypeID: ticketType.ID,
			Quantity:     1,
			UnitPrice:    ticketType.BasePrice,
			VisitDate:    req.VisitDate,
			Code:         fmt.Sprintf("%s-%d", code, i+1),
			Status:       model.TicketUnused,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.Create(ctx, tx, purchase); err != nil {
			return apperr.Persistence("store purchase", err)
		}

		for _, item := range items {
			item.PurchaseID = purchase.ID
		}
		if err := s.purchaseRepo.CreateTicketItems(ctx, tx, items); err != nil {
			return apperr.Persistence("store ticket items", err)
		}
		return nil
	})
	if err != nil {
		s.voidCharge(ctx, sess.UserID, charge)
		return nil, dbError("commit purchase", err)
	}

	purchase.Tickets = make([]model.TicketItem, len(items))
	for i, item := range items {
		item.TicketType = ticketType
		purchase.Tickets[i] = *item
	}

	return purchase, nil
}

func (s *purchaseServiceImpl) voidCharge(ctx context.Context, userID uint, charge *ChargeResult) {
	if charge.Reference == nil {
		return
	}
	if err := s.gateway.Void(context.WithoutCancel(ctx), *charge.Reference); err != nil {
		s.log.WithUserID(userID).WithError(err).Error("void charge after failed purchase", "reference", *charge.Reference)
	}
}

func (s *purchaseServiceImpl) ListPurchases(ctx context.Context, sess *auth.Session) ([]*model.PurchaseSummary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	summaries, err := s.purchaseRepo.ListSummaries(ctx, sess.UserID)
	if err != nil {
		return nil, dbError("list purchases", err)
	}
	return summaries, nil
}

func (s *purchaseServiceImpl) GetPurchase(ctx context.Context, sess *auth.Session, purchaseID uint) (*model.Purchase, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.FindForUser(ctx, sess.UserID, purchaseID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get purchase %d", purchaseID), err)
	}
	return purchase, nil
}
