package repo_interfaces

import (
	"context"

	"github.com/nttbank/msaccount/src/internal/domain"
)

// TransactionRepository is the append-only ledger.
type TransactionRepository interface {
	Save(ctx context.Context, record domain.TransactionRecord) (domain.TransactionRecord, error)
	FindByNationalID(ctx context.Context, nationalID string) ([]domain.TransactionRecord, error)
	FindByCustomerIDOrigin(ctx context.Context, customerID string) ([]domain.TransactionRecord, error)
}
