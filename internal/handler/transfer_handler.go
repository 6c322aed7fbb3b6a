package handler

import (
	"io"
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxImportSize caps upload payloads at 10 MiB.
const maxImportSize = 10 << 20

type TransferHandler struct {
	transferService service.TransferService
}

func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) RegisterRoutes(router *gin.RouterGroup) {
	transfer := router.Group("/api/transfer")
	{
		transfer.GET("/export", h.Export)
		transfer.POST("/import", h.Import)
	}
}

// Export streams the full state as a downloadable .json file
func (h *TransferHandler) Export(c *gin.Context) {
	bundle := h.transferService.Export(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="procurement-hub-export.json"`)
	c.JSON(http.StatusOK, bundle)
}

// Import replaces the full state from an uploaded export. All-or-nothing: a
// bad payload changes nothing
func (h *TransferHandler) Import(c *gin.Context) {
	blob, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Could not read payload: "+err.Error()))
		return
	}

	summary, err := h.transferService.Import(c.Request.Context(), blob)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
