package services

import (
	"context"
	"errors"
	"strings"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/repo_interfaces"
	"github.com/nttbank/msaccount/src/internal/commons"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
	"github.com/shopspring/decimal"
)

type CommissionService struct {
	commissionRepo repo_interfaces.CommissionRepository
}

func NewCommissionService(commissionRepo repo_interfaces.CommissionRepository) *CommissionService {
	return &CommissionService{commissionRepo: commissionRepo}
}

// CommissionFor returns the configured commission for accountType. A missing
// rule yields ok=false rather than a zero amount.
func (s *CommissionService) CommissionFor(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, bool, error) {
	rule, err := s.commissionRepo.FindByAccountType(ctx, accountType)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, domain.Internal("Error retrieving commission", err)
	}
	return rule.Monto, true, nil
}

func (s *CommissionService) CreateCommission(ctx context.Context, req models.CommissionRequest) (commons.Response[models.CommissionResponse], error) {
	logger.Info("commission service create commission request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("commission service create commission validation failed", err, nil)
		return validationFailed[models.CommissionResponse](err)
	}

	rule := req.ToDomain()
	_, err := s.commissionRepo.FindByAccountType(ctx, rule.AccountType)
	switch {
	case err == nil:
		return failed[models.CommissionResponse](domain.BusinessRule("Commission already exists for account type %s", rule.AccountType))
	case !errors.Is(err, domain.ErrRecordNotFound):
		logger.Error("commission service create commission lookup failed", err, logger.Fields{
			"accountType": rule.AccountType,
		})
		return failed[models.CommissionResponse](domain.Internal("Error creating commission", err))
	}

	created, err := s.commissionRepo.Save(ctx, rule)
	if err != nil {
		logger.Error("commission service create commission repository failed", err, logger.Fields{
			"accountType": rule.AccountType,
		})
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return failed[models.CommissionResponse](domain.BusinessRule("Commission already exists for account type %s", rule.AccountType))
		}
		return failed[models.CommissionResponse](domain.Internal("Error creating commission", err))
	}

	logger.Info("commission service create commission success", logger.Fields{
		"commissionId": created.ID,
		"accountType":  created.AccountType,
		"monto":        created.Monto.String(),
	})

	return commons.SuccessResponse("commission created successfully", models.NewCommissionResponse(created)), nil
}

func (s *CommissionService) UpdateCommission(ctx context.Context, accountType string, req models.UpdateCommissionRequest) (commons.Response[models.CommissionResponse], error) {
	logger.Info("commission service update commission request", logger.Fields{
		"accountType": accountType,
		"payload":     logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("commission service update commission validation failed", err, nil)
		return validationFailed[models.CommissionResponse](err)
	}

	kind := domain.AccountType(strings.ToUpper(strings.TrimSpace(accountType)))
	rule, err := s.commissionRepo.FindByAccountType(ctx, kind)
	if err != nil {
		logger.Error("commission service update commission lookup failed", err, logger.Fields{
			"accountType": kind,
		})
		return failed[models.CommissionResponse](lookupError(err,
			"Commission not found for account type "+string(kind),
			"Error updating commission"))
	}

	rule.Monto = req.Monto.Round(2)
	saved, err := s.commissionRepo.Save(ctx, rule)
	if err != nil {
		logger.Error("commission service update commission repository failed", err, logger.Fields{
			"commissionId": rule.ID,
		})
		return failed[models.CommissionResponse](domain.Internal("Error updating commission", err))
	}

	logger.Info("commission service update commission success", logger.Fields{
		"commissionId": saved.ID,
		"monto":        saved.Monto.String(),
	})

	return commons.SuccessResponse("commission updated successfully", models.NewCommissionResponse(saved)), nil
}

func (s *CommissionService) DeleteCommission(ctx context.Context, id string) (commons.Response[string], error) {
	logger.Info("commission service delete commission request", logger.Fields{
		"commissionId": id,
	})

	id = strings.TrimSpace(id)
	rule, err := s.commissionRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("commission service delete commission lookup failed", err, logger.Fields{
			"commissionId": id,
		})
		return failed[string](lookupError(err,
			"Commission not found with ID: "+id,
			"Error deleting commission"))
	}

	if err := s.commissionRepo.Delete(ctx, rule.ID); err != nil {
		logger.Error("commission service delete commission failed", err, logger.Fields{
			"commissionId": id,
		})
		return failed[string](lookupError(err,
			"Commission not found with ID: "+id,
			"Error deleting commission"))
	}

	logger.Info("commission service delete commission success", logger.Fields{
		"commissionId": rule.ID,
		"accountType":  rule.AccountType,
	})

	return commons.SuccessResponse("commission deleted successfully", rule.ID), nil
}

func (s *CommissionService) ListCommissions(ctx context.Context) (commons.Response[[]models.CommissionResponse], error) {
	rules, err := s.commissionRepo.ListAll(ctx)
	if err != nil {
		logger.Error("commission service list commissions failed", err, nil)
		return failed[[]models.CommissionResponse](domain.Internal("Error listing commissions", err))
	}

	response := make([]models.CommissionResponse, 0, len(rules))
	for _, rule := range rules {
		response = append(response, models.NewCommissionResponse(rule))
	}

	return commons.SuccessResponse("commissions fetched successfully", response), nil
}

func (s *CommissionService) GetCommission(ctx context.Context, accountType string) (commons.Response[models.CommissionResponse], error) {
	kind := domain.AccountType(strings.ToUpper(strings.TrimSpace(accountType)))
	rule, err := s.commissionRepo.FindByAccountType(ctx, kind)
	if err != nil {
		logger.Error("commission service get commission failed", err, logger.Fields{
			"accountType": kind,
		})
		return failed[models.CommissionResponse](lookupError(err,
			"Commission not found for account type "+string(kind),
			"Error retrieving commission"))
	}

	return commons.SuccessResponse("commission fetched successfully", models.NewCommissionResponse(rule)), nil
}
