package service_interfaces

import (
	"context"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/commons"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CommissionService interface {
	CreateCommission(ctx context.Context, req models.CommissionRequest) (commons.Response[models.CommissionResponse], error)
	UpdateCommission(ctx context.Context, accountType string, req models.UpdateCommissionRequest) (commons.Response[models.CommissionResponse], error)
	DeleteCommission(ctx context.Context, id string) (commons.Response[string], error)
	ListCommissions(ctx context.Context) (commons.Response[[]models.CommissionResponse], error)
	GetCommission(ctx context.Context, accountType string) (commons.Response[models.CommissionResponse], error)
}

// CommissionLookup resolves the commission configured for an account type.
// ok is false when no rule exists, which is distinct from a rule of zero.
type CommissionLookup interface {
	CommissionFor(ctx context.Context, accountType domain.AccountType) (amount decimal.Decimal, ok bool, err error)
}
