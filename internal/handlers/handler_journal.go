package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
	"github.com/clubworks/ledger_service/internal/middleware"
)

// journalHandler handles HTTP requests against the transaction log.
type journalHandler struct {
	journalSvc portssvc.JournalSvcFacade
}

func newJournalHandler(journalSvc portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalSvc: journalSvc}
}

// postJournal posts an arbitrary balanced journal. Reposting the same docNo
// returns the stored transaction with 200 instead of creating a duplicate.
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostJournalRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	txn, err := h.journalSvc.PostBalancedJournal(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post journal")
		return
	}

	logger.Info("Journal posted", slog.String("doc_no", txn.DocNo))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *journalHandler) getTransaction(c *gin.Context) {
	txn, err := h.journalSvc.GetTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *journalHandler) getTransactionByDocNo(c *gin.Context) {
	txn, err := h.journalSvc.GetTransactionByDocNo(c.Request.Context(), c.Param("docNo"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *journalHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	resp, err := h.journalSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// registerJournalRoutes registers transaction log routes
func registerJournalRoutes(group *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalSvc)

	journals := group.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("", h.listTransactions)
		journals.GET("/:transactionID", h.getTransaction)
		journals.GET("/by-doc-no/:docNo", h.getTransactionByDocNo)
	}
}
