package service

import (
	"context"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/client"
	"infinity-park/internal/model"

	"github.com/shopspring/decimal"
)

type ChargeRequest struct {
	TransactionCode string
	Method          model.PaymentMethod
	Amount          decimal.Decimal
	Nonce           string
}

type ChargeResult struct {
	Status    model.PaymentStatus
	Reference *string
}

// PaymentGateway takes the money for a purchase. Charge returns
// apperr.ErrPaymentDeclined when the payment is refused.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Void(ctx context.Context, reference string) error
}

type instantGateway struct{}

// NewInstantGateway approves every payment on the spot.
func NewInstantGateway() PaymentGateway {
	return instantGateway{}
}

func (instantGateway) Charge(context.Context, ChargeRequest) (*ChargeResult, error) {
	return &ChargeResult{Status: model.PaymentApproved}, nil
}

func (instantGateway) Void(context.Context, string) error { return nil }

type braintreeGateway struct {
	client   client.BraintreeClient
	fallback PaymentGateway
}

// NewBraintreeGateway charges card payments that carry a nonce through
// Braintree. Everything else goes to fallback.
func NewBraintreeGateway(btClient client.BraintreeClient, fallback PaymentGateway) PaymentGateway {
	return &braintreeGateway{
		client:   btClient,
		fallback: fallback,
	}
}

func (g *braintreeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if !req.Method.IsCard() || req.Nonce == "" || !req.Amount.IsPositive() {
		return g.fallback.Charge(ctx, req)
	}

	txID, declined, err := g.client.Sale(ctx, req.Nonce, req.Amount, req.TransactionCode)
	if err != nil {
		return nil, fmt.Errorf("braintree sale: %w", err)
	}
	if declined {
		return nil, apperr.ErrPaymentDeclined
	}

	return &ChargeResult{Status: model.PaymentApproved, Reference: &txID}, nil
}

func (g *braintreeGateway) Void(ctx context.Context, reference string) error {
	return g.client.Void(ctx, reference)
}
