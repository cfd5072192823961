package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRule is the per-transaction fee charged on an account type once the
// free transaction allowance is exhausted. At most one rule exists per account type.
type CommissionRule struct {
	ID          string
	AccountType AccountType
	Monto       decimal.Decimal
	CustomerID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
