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
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const reportLookupConcurrency = 8

type ReportService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	now             func() time.Time
}

// NewReportService builds the report engine. now defaults to time.Now.
func NewReportService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	now func() time.Time,
) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		now:             now,
	}
}

// ReportAccount averages the amounts moved under a national id per day of the
// current calendar month. A month without movements is an error, not zero.
func (s *ReportService) ReportAccount(ctx context.Context, req models.ReportOperationsRequest) (commons.Response[models.ReportOperationsResponse], error) {
	logger.Info("report service account report request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("report service account report validation failed", err, nil)
		return validationFailed[models.ReportOperationsResponse](err)
	}

	nationalID := strings.TrimSpace(req.Dni)
	records, err := s.transactionRepo.FindByNationalID(ctx, nationalID)
	if err != nil {
		logger.Error("report service account report ledger lookup failed", err, nil)
		return failed[models.ReportOperationsResponse](domain.Internal("Error generating report", err))
	}

	today := domain.Date(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	total := decimal.Zero
	matched := 0
	for _, record := range records {
		if withinPeriod(record.TransactionDate, monthStart, monthEnd) {
			total = total.Add(record.Amount)
			matched++
		}
	}
	if matched == 0 {
		err := domain.BusinessRule("No transactions found for the current month")
		logger.Error("report service account report empty", err, nil)
		return failed[models.ReportOperationsResponse](err)
	}

	daysInMonth := decimal.NewFromInt(int64(monthEnd.Day()))
	response := models.ReportOperationsResponse{
		Dni:        nationalID,
		Amount:     total.DivRound(daysInMonth, 2),
		ReportDate: today.Format("2006-01-02"),
	}

	logger.Info("report service account report success", logger.Fields{
		"transactions": matched,
		"amount":       response.Amount.String(),
	})

	return commons.SuccessResponse("report generated successfully", response), nil
}

// ReportProduct lists every commission charged between the two dates, inclusive.
// An empty period is a successful empty report.
func (s *ReportService) ReportProduct(ctx context.Context, req models.ReportProductRequest) (commons.Response[[]models.ReportProductResponse], error) {
	logger.Info("report service product report request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	start, end, err := req.Period()
	if err != nil {
		logger.Error("report service product report validation failed", err, nil)
		return validationFailed[[]models.ReportProductResponse](err)
	}

	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		logger.Error("report service product report accounts lookup failed", err, nil)
		return failed[[]models.ReportProductResponse](domain.Internal("Error generating report", err))
	}

	perAccount := make([][]models.ReportProductResponse, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reportLookupConcurrency)
	for i, account := range accounts {
		g.Go(func() error {
			records, err := s.transactionRepo.FindByCustomerIDOrigin(gctx, account.CustomerID)
			if err != nil {
				return err
			}
			perAccount[i] = commissionRows(account, records, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("report service product report ledger lookup failed", err, nil)
		return failed[[]models.ReportProductResponse](domain.Internal("Error generating report", err))
	}

	rows := make([]models.ReportProductResponse, 0)
	for _, accountRows := range perAccount {
		rows = append(rows, accountRows...)
	}

	logger.Info("report service product report success", logger.Fields{
		"rows": len(rows),
	})

	return commons.SuccessResponse("report generated successfully", rows), nil
}

// commissionRows keeps the taxed records of account inside the period. Records
// written without an origin account id are attributed by customer id alone.
func commissionRows(account domain.Account, records []domain.TransactionRecord, start time.Time, end time.Time) []models.ReportProductResponse {
	var rows []models.ReportProductResponse
	for _, record := range records {
		if record.OriginAccountID != "" && record.OriginAccountID != account.ID {
			continue
		}
		if !record.CommissionAmount.IsPositive() || !withinPeriod(record.TransactionDate, start, end) {
			continue
		}
		rows = append(rows, models.ReportProductResponse{
			AccountType:      string(account.AccountType),
			CustomerID:       account.CustomerID,
			CommissionAmount: record.CommissionAmount,
		})
	}
	return rows
}

func withinPeriod(date time.Time, start time.Time, end time.Time) bool {
	day := domain.Date(date)
	return !day.Before(domain.Date(start)) && !day.After(domain.Date(end))
}
