package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
	"github.com/clubworks/ledger_service/internal/dto"
)

// reportHandler exposes derived reports and period snapshots.
type reportHandler struct {
	reportingSvc portssvc.ReportingSvc
	snapshotSvc  portssvc.SnapshotSvc
}

func newReportHandler(reportingSvc portssvc.ReportingSvc, snapshotSvc portssvc.SnapshotSvc) *reportHandler {
	return &reportHandler{reportingSvc: reportingSvc, snapshotSvc: snapshotSvc}
}

func (h *reportHandler) trialBalance(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQueryOrAbort(c, &params) {
		return
	}
	rows, err := h.reportingSvc.TrialBalance(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondServiceError(c, err, "Failed to compute trial balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": params.From, "to": params.To, "rows": rows})
}

func (h *reportHandler) incomeStatement(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQueryOrAbort(c, &params) {
		return
	}
	stmt, err := h.reportingSvc.IncomeStatement(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondServiceError(c, err, "Failed to compute income statement")
		return
	}
	c.JSON(http.StatusOK, stmt)
}

func (h *reportHandler) memberBalances(c *gin.Context) {
	var params dto.AsOfParams
	if !bindQueryOrAbort(c, &params) {
		return
	}
	rows, err := h.reportingSvc.MemberBalances(c.Request.Context(), params.AsOf)
	if err != nil {
		respondServiceError(c, err, "Failed to compute member balances")
		return
	}
	c.JSON(http.StatusOK, gin.H{"asOf": params.AsOf, "rows": rows})
}

func (h *reportHandler) clearingReconciliation(c *gin.Context) {
	var params dto.DateRangeParams
	if !bindQueryOrAbort(c, &params) {
		return
	}
	rows, err := h.reportingSvc.ClearingReconciliation(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondServiceError(c, err, "Failed to compute clearing reconciliation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": params.From, "to": params.To, "rows": rows})
}

func (h *reportHandler) memberStatement(c *gin.Context) {
	memberID := c.Param("memberID")

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		to = &t
	}

	stmt, err := h.reportingSvc.MemberStatement(c.Request.Context(), memberID, from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to compute member statement")
		return
	}
	c.JSON(http.StatusOK, stmt)
}

// monthEnd returns the locked month-end snapshot, computing it on first request.
func (h *reportHandler) monthEnd(c *gin.Context) {
	var req dto.MonthEndParams
	if !bindJSONOrAbort(c, &req) {
		return
	}
	snap, err := h.snapshotSvc.MonthEnd(c.Request.Context(), req.Period, req.LockedBy, req.Notes)
	if err != nil {
		respondServiceError(c, err, "Failed to lock month-end snapshot")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// yearEnd returns the locked year-end snapshot, computing it on first request.
func (h *reportHandler) yearEnd(c *gin.Context) {
	var req dto.YearEndParams
	if !bindJSONOrAbort(c, &req) {
		return
	}
	snap, err := h.snapshotSvc.YearEnd(c.Request.Context(), req.Year, req.LockedBy, req.Notes)
	if err != nil {
		respondServiceError(c, err, "Failed to lock year-end snapshot")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// registerReportRoutes registers report and snapshot routes
func registerReportRoutes(group *gin.RouterGroup, reportingSvc portssvc.ReportingSvc, snapshotSvc portssvc.SnapshotSvc) {
	h := newReportHandler(reportingSvc, snapshotSvc)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/member-balances", h.memberBalances)
		reports.GET("/clearing-reconciliation", h.clearingReconciliation)
		reports.GET("/member-statements/:memberID", h.memberStatement)
		reports.POST("/month-end", h.monthEnd)
		reports.POST("/year-end", h.yearEnd)
	}
}
