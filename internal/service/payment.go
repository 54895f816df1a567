package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/types"
)

// PaymentResult is what the simulator hands back for one charge
type PaymentResult struct {
	PaymentID   string
	Status      types.PaymentStatus
	Amount      decimal.Decimal
	ProcessedAt time.Time
}

// PaymentService simulates a payment provider. It either accepts or
// declines a charge according to the configured success rate; there is
// no pending state and no retry, the caller decides what a declined
// payment means.
type PaymentService interface {
	ProcessPayment(ctx context.Context, reference string, amount decimal.Decimal) *PaymentResult
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

func (s *paymentService) ProcessPayment(ctx context.Context, reference string, amount decimal.Decimal) *PaymentResult {
	status := types.PaymentStatusFailed
	if rand.Float64() < s.Config.Payment.SuccessRate {
		status = types.PaymentStatusPaid
	}

	result := &PaymentResult{
		PaymentID:   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		Status:      status,
		Amount:      amount,
		ProcessedAt: time.Now().UTC(),
	}

	s.Logger.Infow("payment processed",
		"payment_id", result.PaymentID,
		"reference", reference,
		"amount", amount,
		"status", status)

	return result
}
