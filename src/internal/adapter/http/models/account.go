package models

import (
	"errors"
	"strings"
	"time"

	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type AccountRequest struct {
	CustomerID      string           `json:"customerId"`
	Dni             string           `json:"dni"`
	CustomerType    string           `json:"customerType"`
	ClientType      string           `json:"clientType,omitempty"`
	AccountType     string           `json:"accountType"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	MonthlyLimit    int              `json:"monthlyLimit"`
	LastDepositDate string           `json:"lastDepositDate,omitempty"`
	Holders         []string         `json:"holders,omitempty"`
}

func (r AccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, "customerId is required")
	}
	if !domain.CustomerType(normalizeEnum(r.CustomerType)).Valid() {
		errs = append(errs, "customerType must be one of PERSONAL, EMPRESARIAL")
	}
	if !domain.AccountType(normalizeEnum(r.AccountType)).Valid() {
		errs = append(errs, "accountType must be one of AHORRO, CORRIENTE, PLAZO_FIJO")
	}
	if !domain.ClientType(normalizeEnum(r.ClientType)).Valid() {
		errs = append(errs, "clientType must be VIP, PYME or empty")
	}
	if domain.ClientType(normalizeEnum(r.ClientType)).Premium() && strings.TrimSpace(r.Dni) == "" {
		errs = append(errs, "dni is required for VIP and PYME accounts")
	}
	if r.Balance != nil && r.Balance.IsNegative() {
		errs = append(errs, "balance cannot be negative")
	}
	if r.MonthlyLimit < 0 {
		errs = append(errs, "monthlyLimit cannot be negative")
	}
	if strings.TrimSpace(r.LastDepositDate) != "" {
		if _, err := time.Parse(dateLayout, strings.TrimSpace(r.LastDepositDate)); err != nil {
			errs = append(errs, "lastDepositDate must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// ToDomain maps a validated request onto an account without id or counters.
func (r AccountRequest) ToDomain() domain.Account {
	account := domain.Account{
		CustomerID:   strings.TrimSpace(r.CustomerID),
		NationalID:   strings.TrimSpace(r.Dni),
		CustomerType: domain.CustomerType(normalizeEnum(r.CustomerType)),
		ClientType:   domain.ClientType(normalizeEnum(r.ClientType)),
		AccountType:  domain.AccountType(normalizeEnum(r.AccountType)),
		Balance:      decimal.Zero,
		MonthlyLimit: r.MonthlyLimit,
	}

	if r.Balance != nil {
		account.Balance = r.Balance.Round(2)
	}
	if d, err := time.Parse(dateLayout, strings.TrimSpace(r.LastDepositDate)); err == nil {
		account.LastDepositDate = &d
	}
	for _, holder := range r.Holders {
		if h := strings.TrimSpace(holder); h != "" {
			account.Holders = append(account.Holders, h)
		}
	}

	return account
}

type AccountResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	Dni              string          `json:"dni,omitempty"`
	CustomerType     string          `json:"customerType"`
	ClientType       string          `json:"clientType,omitempty"`
	AccountType      string          `json:"accountType"`
	Balance          decimal.Decimal `json:"balance"`
	MonthlyLimit     int             `json:"monthlyLimit"`
	LastDepositDate  string          `json:"lastDepositDate,omitempty"`
	Holders          []string        `json:"holders"`
	LimitTransaction int             `json:"limitTransaction"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	response := AccountResponse{
		ID:               account.ID,
		CustomerID:       account.CustomerID,
		Dni:              account.NationalID,
		CustomerType:     string(account.CustomerType),
		ClientType:       string(account.ClientType),
		AccountType:      string(account.AccountType),
		Balance:          account.Balance,
		MonthlyLimit:     account.MonthlyLimit,
		Holders:          account.Holders,
		LimitTransaction: account.LimitTransaction,
		CreatedAt:        account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        account.UpdatedAt.Format(time.RFC3339),
	}
	if response.Holders == nil {
		response.Holders = []string{}
	}
	if account.LastDepositDate != nil {
		response.LastDepositDate = account.LastDepositDate.Format(dateLayout)
	}
	return response
}

func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, NewAccountResponse(account))
	}
	return out
}

func normalizeEnum(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
