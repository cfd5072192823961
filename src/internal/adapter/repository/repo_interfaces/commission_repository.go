package repo_interfaces

import (
	"context"

	"github.com/nttbank/msaccount/src/internal/domain"
)

type CommissionRepository interface {
	GetByID(ctx context.Context, id string) (domain.CommissionRule, error)
	Save(ctx context.Context, rule domain.CommissionRule) (domain.CommissionRule, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.CommissionRule, error)
	FindByAccountType(ctx context.Context, accountType domain.AccountType) (domain.CommissionRule, error)
}
