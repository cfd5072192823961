package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ReportOperationsRequest struct {
	Dni string `json:"dni"`
}

func (r ReportOperationsRequest) Validate() error {
	if strings.TrimSpace(r.Dni) == "" {
		return errors.New("dni is required")
	}
	return nil
}

type ReportOperationsResponse struct {
	Dni        string          `json:"dni"`
	Amount     decimal.Decimal `json:"amount"`
	ReportDate string          `json:"reportDate"`
}

type ReportProductRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Period parses the inclusive date range of the request.
func (r ReportProductRequest) Period() (time.Time, time.Time, error) {
	var errs []string

	start, startErr := time.Parse(dateLayout, strings.TrimSpace(r.StartDate))
	if startErr != nil {
		errs = append(errs, "startDate must be in YYYY-MM-DD format")
	}
	end, endErr := time.Parse(dateLayout, strings.TrimSpace(r.EndDate))
	if endErr != nil {
		errs = append(errs, "endDate must be in YYYY-MM-DD format")
	}
	if startErr == nil && endErr == nil && start.After(end) {
		errs = append(errs, "startDate cannot be after endDate")
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errors.New(strings.Join(errs, "; "))
	}
	return start, end, nil
}

func (r ReportProductRequest) Validate() error {
	_, _, err := r.Period()
	return err
}

type ReportProductResponse struct {
	AccountType      string          `json:"accountType"`
	CustomerID       string          `json:"customerId"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
}
