package controller

import (
	"net/http"
	"time"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/usecase/service_interfaces"
)

type TransactionController struct {
	service service_interfaces.TransactionService
}

func NewTransactionController(service service_interfaces.TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handle(mux, "POST /accounts/{id}/deposit", c.deposit, authMiddleware)
	handle(mux, "POST /accounts/customer/{customerId}/withdraw", c.withdraw, authMiddleware)
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.DepositRequest
	if !decodeBody[models.DepositRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Deposit(r.Context(), r.PathValue("id"), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.WithdrawRequest
	if !decodeBody[models.WithdrawRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.Withdraw(r.Context(), r.PathValue("customerId"), req)
	respond(w, r, start, http.StatusOK, response, err)
}
