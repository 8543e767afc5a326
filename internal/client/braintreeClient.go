package client

import (
	"context"
	"errors"
	"fmt"
	"infinity-park/internal/config"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

type BraintreeClient interface {
	// Sale charges a card nonce and settles immediately. declined is true when
	// the processor or gateway refused the card.
	Sale(ctx context.Context, nonce string, amount decimal.Decimal, orderID string) (txID string, declined bool, err error)

	// Void cancels an unsettled sale.
	Void(ctx context.Context, txID string) error
}

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) Sale(ctx context.Context, nonce string, amount decimal.Decimal, orderID string) (string, bool, error) {
	// braintree wants unscaled cents + scale: 225.00 -> NewDecimal(22500, 2)
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		PaymentMethodNonce: nonce,
		OrderId:            orderID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		// a refused card comes back as an api-error-response carrying the transaction
		var bte *braintree.BraintreeError
		if errors.As(err, &bte) && bte.Transaction != nil && declined(bte.Transaction.Status) {
			return bte.Transaction.Id, true, nil
		}
		return "", false, fmt.Errorf("braintree create transaction: %w", err)
	}

	return tx.Id, declined(tx.Status), nil
}

func declined(status braintree.TransactionStatus) bool {
	switch status {
	case braintree.TransactionStatusProcessorDeclined, braintree.TransactionStatusGatewayRejected:
		return true
	}
	return false
}

func (c *braintreeClientImpl) Void(ctx context.Context, txID string) error {
	if _, err := c.gateway.Transaction().Void(ctx, txID); err != nil {
		return fmt.Errorf("braintree void %s: %w", txID, err)
	}
	return nil
}
