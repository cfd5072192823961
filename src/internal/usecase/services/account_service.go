package services

import (
	"context"
	"strings"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/repo_interfaces"
	"github.com/nttbank/msaccount/src/internal/commons"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
	"github.com/nttbank/msaccount/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

const accountServiceSource = "AccountService"

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	cardChecker service_interfaces.CreditCardChecker
	notifier    service_interfaces.FallbackNotifier
	minBalances map[domain.ClientType]decimal.Decimal
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	cardChecker service_interfaces.CreditCardChecker,
	notifier service_interfaces.FallbackNotifier,
	vipMinBalance decimal.Decimal,
	pymeMinBalance decimal.Decimal,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		cardChecker: cardChecker,
		notifier:    notifier,
		minBalances: map[domain.ClientType]decimal.Decimal{
			domain.ClientTypeVIP:  vipMinBalance,
			domain.ClientTypePYME: pymeMinBalance,
		},
	}
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service get account request", logger.Fields{
		"accountId": id,
	})

	account, err := s.accountRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountId": id,
		})
		return failed[models.AccountResponse](lookupError(err,
			"Failed to retrieve the account with ID: "+id,
			"Unexpected error occurred while retrieving account"))
	}

	return commons.SuccessResponse("account fetched successfully", models.NewAccountResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return failed[[]models.AccountResponse](domain.Internal("Unexpected error occurred while listing accounts", err))
	}

	logger.Info("account service list accounts success", logger.Fields{
		"count": len(accounts),
	})

	return commons.SuccessResponse("accounts fetched successfully", models.NewAccountResponses(accounts)), nil
}

// CreateAccount opens an account. VIP and PYME accounts must meet the opening
// balance of their tier before the credit card service is consulted.
func (s *AccountService) CreateAccount(ctx context.Context, req models.AccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return validationFailed[models.AccountResponse](err)
	}

	proposed := req.ToDomain()
	if proposed.ClientType.Premium() {
		minimum := s.minBalances[proposed.ClientType]
		if proposed.Balance.LessThan(minimum) {
			err := domain.BusinessRule("Minimum balance for %s not met", proposed.ClientType)
			logger.Error("account service create account minimum balance failed", err, logger.Fields{
				"customerId": proposed.CustomerID,
				"minimum":    minimum.String(),
			})
			return failed[models.AccountResponse](err)
		}
	}

	existing, err := s.accountRepo.FindByCustomerID(ctx, proposed.CustomerID)
	if err != nil {
		logger.Error("account service create account existing accounts lookup failed", err, logger.Fields{
			"customerId": proposed.CustomerID,
		})
		return s.creationFailed(domain.Internal("Error validating account", err))
	}
	if !domain.ValidateCreation(proposed, existing) {
		err := domain.BusinessRule("Account creation does not meet business rules")
		logger.Error("account service create account rules rejected", err, logger.Fields{
			"customerId":   proposed.CustomerID,
			"customerType": proposed.CustomerType,
			"accountType":  proposed.AccountType,
		})
		return failed[models.AccountResponse](err)
	}

	if proposed.ClientType.Premium() {
		if err := s.requireCreditCard(ctx, proposed); err != nil {
			return s.creationFailed(err)
		}
	}

	created, err := s.accountRepo.Save(ctx, proposed)
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"customerId": proposed.CustomerID,
		})
		return s.creationFailed(domain.Internal("Error saving account", err))
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":   created.ID,
		"customerId":  created.CustomerID,
		"accountType": created.AccountType,
	})

	return commons.SuccessResponse("account created successfully", models.NewAccountResponse(created)), nil
}

func (s *AccountService) requireCreditCard(ctx context.Context, proposed domain.Account) error {
	sameIdentity, err := s.accountRepo.FindByNationalID(ctx, proposed.NationalID)
	if err != nil {
		logger.Error("account service national id lookup failed", err, nil)
		return domain.Internal("Error validating account", err)
	}

	customerIDs := customerIDsOf(proposed.CustomerID, sameIdentity)
	hasCard, err := s.cardChecker.HasCreditCard(ctx, customerIDs)
	if err != nil {
		logger.Error("account service credit card check failed", err, logger.Fields{
			"customerIds": customerIDs,
		})
		return err
	}
	if !hasCard {
		return domain.BusinessRule("Customer has no credit card")
	}
	return nil
}

// creationFailed raises the fallback alert for technical failures only.
func (s *AccountService) creationFailed(err error) (commons.Response[models.AccountResponse], error) {
	switch domain.KindOf(err) {
	case domain.KindServiceUnavailable, domain.KindInternal:
		logger.Warn("account service create account fallback enabled", logger.Fields{
			"kind": domain.KindOf(err),
		})
		if s.notifier != nil {
			s.notifier.NotifyFallback(accountServiceSource, err)
		}
	}
	return failed[models.AccountResponse](err)
}

// UpdateAccount re-runs the rule table only when the account or customer type
// changes. Other fields are copied as given; an omitted balance is kept.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, req models.AccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update account request", logger.Fields{
		"accountId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service update account validation failed", err, nil)
		return validationFailed[models.AccountResponse](err)
	}

	current, err := s.accountRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		logger.Error("account service update account lookup failed", err, logger.Fields{
			"accountId": id,
		})
		return failed[models.AccountResponse](lookupError(err,
			"Account not found with ID: "+id,
			"Unexpected error occurred while updating account"))
	}

	changes := req.ToDomain()
	updated := current
	updated.AccountType = changes.AccountType
	updated.CustomerType = changes.CustomerType
	updated.Holders = changes.Holders
	if req.Balance != nil {
		updated.Balance = changes.Balance
	}
	updated.MonthlyLimit = changes.MonthlyLimit
	updated.LastDepositDate = changes.LastDepositDate

	if updated.AccountType != current.AccountType || updated.CustomerType != current.CustomerType {
		others, err := s.accountRepo.FindByCustomerID(ctx, current.CustomerID)
		if err != nil {
			logger.Error("account service update account existing accounts lookup failed", err, logger.Fields{
				"customerId": current.CustomerID,
			})
			return failed[models.AccountResponse](domain.Internal("Unexpected error occurred while updating account", err))
		}
		if !domain.ValidateUpdate(current, updated, others) {
			err := domain.BusinessRule("Account update does not meet business rules")
			logger.Error("account service update account rules rejected", err, logger.Fields{
				"accountId": current.ID,
			})
			return failed[models.AccountResponse](err)
		}
	}

	saved, err := s.accountRepo.Save(ctx, updated)
	if err != nil {
		logger.Error("account service update account repository failed", err, logger.Fields{
			"accountId": current.ID,
		})
		return failed[models.AccountResponse](domain.Internal("Unexpected error occurred while updating account", err))
	}

	logger.Info("account service update account success", logger.Fields{
		"accountId": saved.ID,
	})

	return commons.SuccessResponse("account updated successfully", models.NewAccountResponse(saved)), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, id string) (commons.Response[string], error) {
	logger.Info("account service delete account request", logger.Fields{
		"accountId": id,
	})

	id = strings.TrimSpace(id)
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		logger.Error("account service delete account failed", err, logger.Fields{
			"accountId": id,
		})
		return failed[string](lookupError(err,
			"Account not found with ID: "+id,
			"Unexpected error occurred while deleting account"))
	}

	logger.Info("account service delete account success", logger.Fields{
		"accountId": id,
	})

	return commons.SuccessResponse("account deleted successfully", id), nil
}

func customerIDsOf(customerID string, accounts []domain.Account) []string {
	seen := map[string]struct{}{customerID: {}}
	ids := []string{customerID}
	for _, account := range accounts {
		if _, ok := seen[account.CustomerID]; ok {
			continue
		}
		seen[account.CustomerID] = struct{}{}
		ids = append(ids, account.CustomerID)
	}
	return ids
}
