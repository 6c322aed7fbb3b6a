package handler

import (
	"errors"
	"net/http"

	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PurchaseRequestHandler struct {
	prService service.PurchaseRequestService
}

func NewPurchaseRequestHandler(prService service.PurchaseRequestService) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{prService: prService}
}

func (h *PurchaseRequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	prs := router.Group("/api/purchase-requests")
	{
		prs.GET("", h.ListPurchaseRequests)
		prs.POST("", h.CreatePurchaseRequest)
		prs.GET("/by-number/:number", h.GetPurchaseRequestByNumber)
		prs.GET("/:id", h.GetPurchaseRequest)
		prs.PATCH("/:id", h.UpdatePurchaseRequest)
		prs.DELETE("/:id", h.DeletePurchaseRequest)
		prs.PUT("/:id/approve", h.ApprovePurchaseRequest)
		prs.PUT("/:id/reject", h.RejectPurchaseRequest)
		prs.PUT("/:id/delegate", h.DelegatePurchaseRequest)
		prs.POST("/:id/comments", h.AddComment)
	}
}

// ListPurchaseRequests returns the collection, newest first, optionally
// filtered by status/priority/department/search and paginated
func (h *PurchaseRequestHandler) ListPurchaseRequests(c *gin.Context) {
	filter := service.ListFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Department: c.Query("department"),
		SearchText: c.Query("search"),
	}

	prs := h.prService.List(c.Request.Context(), filter)

	params := pagination.Parse(c)
	total := len(prs)
	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   prs[start:end],
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

// CreatePurchaseRequest creates a request; status may be DRAFT or SUBMITTED
func (h *PurchaseRequestHandler) CreatePurchaseRequest(c *gin.Context) {
	var req service.CreatePurchaseRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pr, err := h.prService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, pr))
}

func (h *PurchaseRequestHandler) GetPurchaseRequest(c *gin.Context) {
	pr, err := h.prService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pr))
}

func (h *PurchaseRequestHandler) GetPurchaseRequestByNumber(c *gin.Context) {
	pr, err := h.prService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pr))
}

// UpdatePurchaseRequest shallow-merges the given fields onto the record
func (h *PurchaseRequestHandler) UpdatePurchaseRequest(c *gin.Context) {
	var req service.UpdatePurchaseRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pr, err := h.prService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pr))
}

func (h *PurchaseRequestHandler) DeletePurchaseRequest(c *gin.Context) {
	if err := h.prService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// ApprovePurchaseRequest approves a pending request
func (h *PurchaseRequestHandler) ApprovePurchaseRequest(c *gin.Context) {
	var req service.DecisionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		// Empty body is fine, approver and comment are optional
		req = service.DecisionDTO{}
	}

	pr, err := h.prService.Approve(c.Request.Context(), c.Param("id"), req.Approver, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pr))
}

// RejectPurchaseRequest rejects a pending request
func (h *PurchaseRequestHandler) RejectPurchaseRequest(c *gin.Context) {
	var req service.DecisionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		req = service.DecisionDTO{}
	}

	pr, err := h.prService.Reject(c.Request.Context(), c.Param("id"), req.Approver, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pr))
}

// DelegatePurchaseRequest hands a pending request to another approver
func (h *PurchaseRequestHandler) DelegatePurchaseRequest(c *gin.Context) {
	var req service.DelegateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pr, err := h.prService.Delegate(c.Request.Context(), c.Param("id"), req.DelegateTo, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pr))
}

// AddComment appends a comment to a request
func (h *PurchaseRequestHandler) AddComment(c *gin.Context) {
	var req service.CommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pr, err := h.prService.AddComment(c.Request.Context(), c.Param("id"), req.Comment, req.Commenter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, pr))
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, model.ErrAlreadyResolved), errors.Is(err, model.ErrIllegalTransition):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, model.ErrUnknownSettingKey), errors.Is(err, model.ErrInvalidSettingValue), errors.Is(err, model.ErrInvalidImport):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	}
}
