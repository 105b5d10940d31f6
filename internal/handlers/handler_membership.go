package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubworks/ledger_service/internal/core/domain"
	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
)

// membershipHandler exposes the derived membership document operations.
type membershipHandler struct {
	membershipSvc portssvc.MembershipSvc
}

func newMembershipHandler(membershipSvc portssvc.MembershipSvc) *membershipHandler {
	return &membershipHandler{membershipSvc: membershipSvc}
}

func (h *membershipHandler) invoice(c *gin.Context) {
	var req dto.InvoiceRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txns, err := h.membershipSvc.Invoice(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post invoice")
		return
	}
	c.JSON(http.StatusCreated, toTransactionList(txns))
}

func (h *membershipHandler) creditNote(c *gin.Context) {
	var req dto.CreditNoteRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txn, err := h.membershipSvc.CreditNote(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post credit note")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *membershipHandler) receipt(c *gin.Context) {
	var req dto.ReceiptRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txn, err := h.membershipSvc.Receipt(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post receipt")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *membershipHandler) claim(c *gin.Context) {
	var req dto.ClaimRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txn, err := h.membershipSvc.ClaimApplicationCredit(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post claim")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *membershipHandler) writeOff(c *gin.Context) {
	var req dto.WriteOffRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txn, err := h.membershipSvc.WriteOff(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post write-off")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *membershipHandler) changeCategory(c *gin.Context) {
	var req dto.ChangeCategoryRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txns, err := h.membershipSvc.ChangeCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post category change")
		return
	}
	c.JSON(http.StatusCreated, toTransactionList(txns))
}

func (h *membershipHandler) settlement(c *gin.Context) {
	var req dto.SettlementRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txn, err := h.membershipSvc.Settlement(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post settlement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func toTransactionList(txns []*domain.JournalTransaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, len(txns))
	for i, txn := range txns {
		out[i] = dto.ToTransactionResponse(txn)
	}
	return out
}

// registerMembershipRoutes registers the derived document routes
func registerMembershipRoutes(group *gin.RouterGroup, membershipSvc portssvc.MembershipSvc) {
	h := newMembershipHandler(membershipSvc)

	membership := group.Group("/membership")
	{
		membership.POST("/invoices", h.invoice)
		membership.POST("/credit-notes", h.creditNote)
		membership.POST("/receipts", h.receipt)
		membership.POST("/claims", h.claim)
		membership.POST("/write-offs", h.writeOff)
		membership.POST("/category-changes", h.changeCategory)
		membership.POST("/settlements", h.settlement)
	}
}
