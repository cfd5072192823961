package service_interfaces

import (
	"context"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/commons"
)

type AccountService interface {
	GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error)
	CreateAccount(ctx context.Context, req models.AccountRequest) (commons.Response[models.AccountResponse], error)
	UpdateAccount(ctx context.Context, id string, req models.AccountRequest) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, id string) (commons.Response[string], error)
}

// CreditCardChecker reports whether any of the customer ids holds an active credit card.
type CreditCardChecker interface {
	HasCreditCard(ctx context.Context, customerIDs []string) (bool, error)
}

// FallbackNotifier raises a side-channel alert. It must not block the caller.
type FallbackNotifier interface {
	NotifyFallback(source string, cause error)
}
