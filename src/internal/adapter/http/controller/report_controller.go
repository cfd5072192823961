package controller

import (
	"net/http"
	"time"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/usecase/service_interfaces"
)

type ReportController struct {
	service service_interfaces.ReportService
}

func NewReportController(service service_interfaces.ReportService) *ReportController {
	return &ReportController{service: service}
}

func (c *ReportController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handle(mux, "POST /reports/operations", c.reportOperations, authMiddleware)
	handle(mux, "POST /reports/products", c.reportProducts, authMiddleware)
}

func (c *ReportController) reportOperations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ReportOperationsRequest
	if !decodeBody[models.ReportOperationsRequest, models.ReportOperationsResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.ReportAccount(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *ReportController) reportProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ReportProductRequest
	if !decodeBody[models.ReportProductRequest, []models.ReportProductResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.ReportProduct(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}
