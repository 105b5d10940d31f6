package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubworks/ledger_service/internal/core/domain"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
)

// accountHandler exposes the chart of accounts.
type accountHandler struct {
	accountSvc portssvc.AccountSvc
}

func newAccountHandler(accountSvc portssvc.AccountSvc) *accountHandler {
	return &accountHandler{accountSvc: accountSvc}
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountSvc.ListAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountSvc.GetAccount(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *accountHandler) upsertAccount(c *gin.Context) {
	var account domain.Account
	if !bindJSONOrAbort(c, &account) {
		return
	}
	stored, err := h.accountSvc.UpsertAccount(c.Request.Context(), account)
	if err != nil {
		respondServiceError(c, err, "Failed to upsert account")
		return
	}
	c.JSON(http.StatusOK, stored)
}

// registerAccountRoutes registers chart-of-accounts routes
func registerAccountRoutes(group *gin.RouterGroup, accountSvc portssvc.AccountSvc) {
	h := newAccountHandler(accountSvc)

	accounts := group.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.PUT("", h.upsertAccount)
	}
}
