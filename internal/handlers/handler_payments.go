package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
)

// paymentHandler receives normalized settled-payment notifications.
type paymentHandler struct {
	paymentSvc portssvc.PaymentSvc
}

func newPaymentHandler(paymentSvc portssvc.PaymentSvc) *paymentHandler {
	return &paymentHandler{paymentSvc: paymentSvc}
}

// recordSettledPayment posts the receipt journal for a settled payment.
// Non-settled statuses are acknowledged without posting anything.
func (h *paymentHandler) recordSettledPayment(c *gin.Context) {
	var req dto.SettledPaymentRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}
	txn, err := h.paymentSvc.RecordSettledPayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to record settled payment")
		return
	}
	if txn == nil {
		c.JSON(http.StatusOK, gin.H{"posted": false, "status": req.Status})
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// registerPaymentRoutes registers payment integration routes
func registerPaymentRoutes(group *gin.RouterGroup, paymentSvc portssvc.PaymentSvc) {
	h := newPaymentHandler(paymentSvc)

	payments := group.Group("/payments")
	{
		payments.POST("/settled", h.recordSettledPayment)
	}
}
