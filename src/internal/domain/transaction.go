package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposito TransactionType = "DEPOSITO"
	TransactionTypeRetiro   TransactionType = "RETIRO"
)

// TransactionRecord is an immutable ledger entry. CustomerIDDestination is nil for withdrawals.
type TransactionRecord struct {
	ID                    string
	OriginAccountID       string
	CustomerIDOrigin      string
	CustomerIDDestination *string
	NationalID            string
	Amount                decimal.Decimal
	CommissionAmount      decimal.Decimal
	TransactionDate       time.Time
	TransactionType       TransactionType
	CreatedAt             time.Time
}

// Date truncates t to a calendar day in UTC, the granularity ledger dates are kept at.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
