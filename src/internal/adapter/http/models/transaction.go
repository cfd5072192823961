package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if !positiveCents(r.Amount) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r WithdrawRequest) Validate() error {
	if !positiveCents(r.Amount) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

// positiveCents reports whether the amount is still positive once rounded to
// the cent precision the engine works in.
func positiveCents(amount decimal.Decimal) bool {
	return amount.Round(2).IsPositive()
}
