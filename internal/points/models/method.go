package models

import (
	"context"
	"strings"

	dErrors "toonpass/pkg/domain-errors"
)

const (
	MethodCreditCard   = "credit_card"
	MethodBankTransfer = "bank_transfer"
)

// PaymentMethod settles a top-up with an outside provider.
type PaymentMethod interface {
	Name() string
	Process(ctx context.Context, amountWon int64) error
}

// CreditCard is a simulated card payment. It always succeeds.
type CreditCard struct{}

func (CreditCard) Name() string { return MethodCreditCard }

func (CreditCard) Process(ctx context.Context, _ int64) error {
	return ctx.Err()
}

// BankTransfer is a simulated account transfer. It always succeeds.
type BankTransfer struct{}

func (BankTransfer) Name() string { return MethodBankTransfer }

func (BankTransfer) Process(ctx context.Context, _ int64) error {
	return ctx.Err()
}

// ParseMethod resolves a method by name, case-insensitively.
func ParseMethod(name string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MethodCreditCard:
		return CreditCard{}, nil
	case MethodBankTransfer:
		return BankTransfer{}, nil
	}
	return nil, dErrors.Validation("unsupported payment method: " + name)
}
