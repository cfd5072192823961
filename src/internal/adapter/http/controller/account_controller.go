package controller

import (
	"net/http"
	"time"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handle(mux, "GET /accounts", c.listAccounts, authMiddleware)
	handle(mux, "POST /accounts", c.createAccount, authMiddleware)
	handle(mux, "GET /accounts/{id}", c.getAccount, authMiddleware)
	handle(mux, "PUT /accounts/{id}", c.updateAccount, authMiddleware)
	handle(mux, "DELETE /accounts/{id}", c.deleteAccount, authMiddleware)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListAccounts(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AccountRequest
	if !decodeBody[models.AccountRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.CreateAccount(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *AccountController) updateAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AccountRequest
	if !decodeBody[models.AccountRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	response, err := c.service.UpdateAccount(r.Context(), r.PathValue("id"), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AccountController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeleteAccount(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}
