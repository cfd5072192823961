package service_interfaces

import (
	"context"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/commons"
)

type ReportService interface {
	ReportAccount(ctx context.Context, req models.ReportOperationsRequest) (commons.Response[models.ReportOperationsResponse], error)
	ReportProduct(ctx context.Context, req models.ReportProductRequest) (commons.Response[[]models.ReportProductResponse], error)
}
