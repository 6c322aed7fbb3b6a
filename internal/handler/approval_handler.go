package handler

import (
	"net/http"
	"strconv"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	prService service.PurchaseRequestService
}

func NewApprovalHandler(prService service.PurchaseRequestService) *ApprovalHandler {
	return &ApprovalHandler{prService: prService}
}

func (h *ApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/api/approvals")
	{
		approvals.GET("/pending", h.PendingApprovals)
		approvals.GET("/urgent", h.UrgentApprovals)
		approvals.GET("/overdue", h.OverdueApprovals)
		approvals.GET("/history", h.ApprovalHistory)
		approvals.GET("/statistics", h.Statistics)
		approvals.PUT("/bulk-approve", h.BulkApprove)
		approvals.PUT("/bulk-reject", h.BulkReject)
	}
}

// PendingApprovals returns requests still awaiting a decision
func (h *ApprovalHandler) PendingApprovals(c *gin.Context) {
	prs := h.prService.PendingApprovals(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, prs))
}

// UrgentApprovals returns pending requests with HIGH or URGENT priority
func (h *ApprovalHandler) UrgentApprovals(c *gin.Context) {
	prs := h.prService.UrgentApprovals(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, prs))
}

// OverdueApprovals returns pending requests past their due date
func (h *ApprovalHandler) OverdueApprovals(c *gin.Context) {
	prs := h.prService.OverdueApprovals(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, prs))
}

// ApprovalHistory returns processed requests inside the window, newest first
func (h *ApprovalHandler) ApprovalHistory(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	history := h.prService.ApprovalHistory(c.Request.Context(), days)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, history))
}

// Statistics returns the approval workload and throughput numbers
func (h *ApprovalHandler) Statistics(c *gin.Context) {
	stats := h.prService.Statistics(c.Request.Context())
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// BulkApprove approves each listed id; the result counts the ones that went
// through
func (h *ApprovalHandler) BulkApprove(c *gin.Context) {
	var req service.BulkDecisionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	count := h.prService.BulkApprove(c.Request.Context(), req.IDs, req.Approver, req.Comment)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"approved":  count,
		"requested": len(req.IDs),
	}))
}

// BulkReject rejects each listed id; the result counts the ones that went
// through
func (h *ApprovalHandler) BulkReject(c *gin.Context) {
	var req service.BulkDecisionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	count := h.prService.BulkReject(c.Request.Context(), req.IDs, req.Approver, req.Comment)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"rejected":  count,
		"requested": len(req.IDs),
	}))
}
