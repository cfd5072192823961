package controller

import (
	"net/http"
	"time"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/usecase/service_interfaces"
)

type CommissionController struct {
	service service_interfaces.CommissionService
}

func NewCommissionController(service service_interfaces.CommissionService) *CommissionController {
	return &CommissionController{service: service}
}

func (c *CommissionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handle(mux, "GET /commissions", c.listCommissions, authMiddleware)
	handle(mux, "POST /commissions", c.createCommission, authMiddleware)
	handle(mux, "GET /commissions/{accountType}", c.getCommission, authMiddleware)
	handle(mux, "PUT /commissions/{accountType}", c.updateCommission, authMiddleware)
	handle(mux, "DELETE /commissions/{id}", c.deleteCommission, authMiddleware)
}

func (c *CommissionController) listCommissions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListCommissions(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CommissionController) getCommission(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetCommission(r.Context(), r.PathValue("accountType"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CommissionController) createCommission(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CommissionRequest
	if !decodeBody[models.CommissionRequest, models.CommissionResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.CreateCommission(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *CommissionController) updateCommission(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateCommissionRequest
	if !decodeBody[models.UpdateCommissionRequest, models.CommissionResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.UpdateCommission(r.Context(), r.PathValue("accountType"), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *CommissionController) deleteCommission(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeleteCommission(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}
