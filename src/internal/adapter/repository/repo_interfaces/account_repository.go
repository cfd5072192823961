package repo_interfaces

import (
	"context"

	"github.com/nttbank/msaccount/src/internal/domain"
)

// AccountRepository returns domain.ErrRecordNotFound for single-record lookups that match nothing.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	Save(ctx context.Context, account domain.Account) (domain.Account, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Account, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error)
	FindByNationalID(ctx context.Context, nationalID string) ([]domain.Account, error)
	// FindFirstByCustomerID returns an arbitrary account of the customer (the oldest one).
	FindFirstByCustomerID(ctx context.Context, customerID string) (domain.Account, error)
}
