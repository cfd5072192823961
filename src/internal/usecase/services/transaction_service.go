package services

import (
	"context"
	"strings"
	"time"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/repo_interfaces"
	"github.com/nttbank/msaccount/src/internal/commons"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
	"github.com/nttbank/msaccount/src/internal/metrics"
	"github.com/nttbank/msaccount/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

// TransactionService moves money between accounts and appends the ledger.
//
// Accounts are read, mutated in memory and written back without any version
// check, so two concurrent operations on the same account can lose an update.
// The account and ledger writes are independent; a failure part way through
// is compensated where possible and otherwise logged for reconciliation.
type TransactionService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	commissions     service_interfaces.CommissionLookup
	policy          domain.FeePolicy
	metrics         *metrics.Collector
	now             func() time.Time
}

func NewTransactionService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	commissions service_interfaces.CommissionLookup,
	freeTransactions int,
	collector *metrics.Collector,
) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		commissions:     commissions,
		policy:          domain.FeePolicy{FreeTransactions: freeTransactions},
		metrics:         collector,
		now:             time.Now,
	}
}

// Deposit debits the first account of req.CustomerID and credits accountID.
func (s *TransactionService) Deposit(ctx context.Context, accountID string, req models.DepositRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("transaction service deposit request", logger.Fields{
		"accountId": accountID,
		"payload":   logger.SanitizePayload(req),
	})

	destination, err := s.deposit(ctx, strings.TrimSpace(accountID), req)
	s.metrics.RecordTransaction(string(domain.TransactionTypeDeposito), outcomeOf(err))
	if err != nil {
		logger.Error("transaction service deposit failed", err, logger.Fields{
			"accountId": accountID,
		})
		return failed[models.AccountResponse](err)
	}

	logger.Info("transaction service deposit success", logger.Fields{
		"accountId": destination.ID,
	})

	return commons.SuccessResponse("deposit processed successfully", models.NewAccountResponse(destination)), nil
}

func (s *TransactionService) deposit(ctx context.Context, accountID string, req models.DepositRequest) (domain.Account, error) {
	if err := req.Validate(); err != nil {
		return domain.Account{}, domain.BusinessRule("%s", err.Error())
	}

	destination, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Account{}, lookupError(err, "Account not found with id: "+accountID, "Error processing deposit")
	}
	customerID := strings.TrimSpace(req.CustomerID)
	origin, err := s.accountRepo.FindFirstByCustomerID(ctx, customerID)
	if err != nil {
		return domain.Account{}, lookupError(err, "Account not found with customer id: "+customerID, "Error processing deposit")
	}
	if origin.ID == destination.ID {
		return domain.Account{}, domain.BusinessRule("Origin and destination accounts must be different")
	}

	amount := req.Amount.Round(2)
	if origin.Balance.LessThan(amount) {
		return domain.Account{}, domain.BusinessRule("insufficient balance")
	}

	commission, err := s.commissionFor(ctx, destination.AccountType)
	if err != nil {
		return domain.Account{}, err
	}
	transfer, err := s.policy.DepositTransfer(origin.LimitTransaction, amount, commission)
	if err != nil {
		return domain.Account{}, err
	}

	before := destination
	origin.Balance = origin.Balance.Sub(transfer.Debit)
	origin.LimitTransaction++
	destination.Balance = destination.Balance.Add(transfer.Credit)

	saved, err := s.accountRepo.Save(ctx, destination)
	if err != nil {
		return domain.Account{}, domain.Internal("Error processing deposit", err)
	}

	destinationCustomer := destination.CustomerID
	record := domain.TransactionRecord{
		OriginAccountID:       origin.ID,
		CustomerIDOrigin:      origin.CustomerID,
		CustomerIDDestination: &destinationCustomer,
		NationalID:            origin.NationalID,
		Amount:                amount,
		CommissionAmount:      transfer.Commission,
		TransactionDate:       domain.Date(s.now()),
		TransactionType:       domain.TransactionTypeDeposito,
	}
	if _, err := s.transactionRepo.Save(ctx, record); err != nil {
		s.restore(ctx, before, "deposit ledger write failed")
		return domain.Account{}, domain.Internal("Error processing deposit", err)
	}

	if _, err := s.accountRepo.Save(ctx, origin); err != nil {
		logger.Error("transaction service deposit partially applied", err, logger.Fields{
			"originAccountId":      origin.ID,
			"destinationAccountId": destination.ID,
			"amount":               transfer.Debit.String(),
		})
		return domain.Account{}, domain.Internal("Error processing deposit", err)
	}

	s.metrics.RecordCommission(string(destination.AccountType), transfer.Commission)
	return saved, nil
}

// Withdraw debits the first account found for customerID.
func (s *TransactionService) Withdraw(ctx context.Context, customerID string, req models.WithdrawRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("transaction service withdraw request", logger.Fields{
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	account, err := s.withdraw(ctx, strings.TrimSpace(customerID), req)
	s.metrics.RecordTransaction(string(domain.TransactionTypeRetiro), outcomeOf(err))
	if err != nil {
		logger.Error("transaction service withdraw failed", err, logger.Fields{
			"customerId": customerID,
		})
		return failed[models.AccountResponse](err)
	}

	logger.Info("transaction service withdraw success", logger.Fields{
		"accountId": account.ID,
	})

	return commons.SuccessResponse("withdrawal processed successfully", models.NewAccountResponse(account)), nil
}

func (s *TransactionService) withdraw(ctx context.Context, customerID string, req models.WithdrawRequest) (domain.Account, error) {
	if err := req.Validate(); err != nil {
		return domain.Account{}, domain.BusinessRule("%s", err.Error())
	}

	account, err := s.accountRepo.FindFirstByCustomerID(ctx, customerID)
	if err != nil {
		return domain.Account{}, lookupError(err, "Account not found with customer id: "+customerID, "Error processing withdrawal")
	}

	amount := req.Amount.Round(2)
	commission, err := s.commissionFor(ctx, account.AccountType)
	if err != nil {
		return domain.Account{}, err
	}
	debit, err := s.policy.WithdrawDebit(account.LimitTransaction, amount, commission)
	if err != nil {
		return domain.Account{}, err
	}
	if account.Balance.LessThan(debit.Debit) {
		return domain.Account{}, domain.BusinessRule("insufficient balance")
	}

	before := account
	account.Balance = account.Balance.Sub(debit.Debit)
	account.LimitTransaction++

	saved, err := s.accountRepo.Save(ctx, account)
	if err != nil {
		return domain.Account{}, domain.Internal("Error processing withdrawal", err)
	}

	record := domain.TransactionRecord{
		OriginAccountID:  account.ID,
		CustomerIDOrigin: account.CustomerID,
		NationalID:       account.NationalID,
		Amount:           amount,
		CommissionAmount: debit.Commission,
		TransactionDate:  domain.Date(s.now()),
		TransactionType:  domain.TransactionTypeRetiro,
	}
	if _, err := s.transactionRepo.Save(ctx, record); err != nil {
		s.restore(ctx, before, "withdraw ledger write failed")
		return domain.Account{}, domain.Internal("Error processing withdrawal", err)
	}

	s.metrics.RecordCommission(string(account.AccountType), debit.Commission)
	return saved, nil
}

func (s *TransactionService) commissionFor(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, error) {
	amount, ok, err := s.commissions.CommissionFor(ctx, accountType)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}
	return amount, nil
}

// restore writes back the pre-operation state of an account after a later step failed.
func (s *TransactionService) restore(ctx context.Context, account domain.Account, reason string) {
	if _, err := s.accountRepo.Save(ctx, account); err != nil {
		logger.Error("transaction service compensation failed", err, logger.Fields{
			"accountId": account.ID,
			"reason":    reason,
		})
		return
	}
	logger.Warn("transaction service compensation applied", logger.Fields{
		"accountId": account.ID,
		"reason":    reason,
	})
}

func outcomeOf(err error) string {
	switch domain.KindOf(err) {
	case "":
		return metrics.OutcomeSuccess
	case domain.KindBusinessRule, domain.KindNotFound:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeFailed
	}
}
