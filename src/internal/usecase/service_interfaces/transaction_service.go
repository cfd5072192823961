package service_interfaces

import (
	"context"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/commons"
)

type TransactionService interface {
	Deposit(ctx context.Context, accountID string, req models.DepositRequest) (commons.Response[models.AccountResponse], error)
	Withdraw(ctx context.Context, customerID string, req models.WithdrawRequest) (commons.Response[models.AccountResponse], error)
}
