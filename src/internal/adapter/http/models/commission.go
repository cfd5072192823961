package models

import (
	"errors"
	"strings"
	"time"

	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CommissionRequest struct {
	AccountType string          `json:"accountType"`
	Monto       decimal.Decimal `json:"monto"`
	CustomerID  *string         `json:"customerId,omitempty"`
}

func (r CommissionRequest) Validate() error {
	var errs []string

	if !domain.AccountType(normalizeEnum(r.AccountType)).Valid() {
		errs = append(errs, "accountType must be one of AHORRO, CORRIENTE, PLAZO_FIJO")
	}
	if r.Monto.IsNegative() {
		errs = append(errs, "monto cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r CommissionRequest) ToDomain() domain.CommissionRule {
	rule := domain.CommissionRule{
		AccountType: domain.AccountType(normalizeEnum(r.AccountType)),
		Monto:       r.Monto.Round(2),
	}
	if r.CustomerID != nil && strings.TrimSpace(*r.CustomerID) != "" {
		customerID := strings.TrimSpace(*r.CustomerID)
		rule.CustomerID = &customerID
	}
	return rule
}

type UpdateCommissionRequest struct {
	Monto decimal.Decimal `json:"monto"`
}

func (r UpdateCommissionRequest) Validate() error {
	if r.Monto.IsNegative() {
		return errors.New("monto cannot be negative")
	}
	return nil
}

type CommissionResponse struct {
	ID          string          `json:"id"`
	AccountType string          `json:"accountType"`
	Monto       decimal.Decimal `json:"monto"`
	CustomerID  *string         `json:"customerId,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func NewCommissionResponse(rule domain.CommissionRule) CommissionResponse {
	return CommissionResponse{
		ID:          rule.ID,
		AccountType: string(rule.AccountType),
		Monto:       rule.Monto,
		CustomerID:  rule.CustomerID,
		CreatedAt:   rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rule.UpdatedAt.Format(time.RFC3339),
	}
}
