package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/invoice-renderer/internal/application/service"
	"github.com/garyjia/invoice-renderer/internal/domain/entity"
	"github.com/garyjia/invoice-renderer/internal/layout"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypePNG  = "image/png"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	invoices service.InvoiceService
	health   HealthChecker
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(invoices service.InvoiceService, health HealthChecker, logger Logger) *Handlers {
	return &Handlers{
		invoices: invoices,
		health:   health,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Components map[string]string `json:"components,omitempty"`
}

// ListInvoicesRequest represents query parameters for listing saved invoices
type ListInvoicesRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.health != nil {
		ok, components := h.health.Healthy()
		resp.Components = components
		if !ok {
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, Response{
		Success: status == http.StatusOK,
		Data:    resp,
	})
}

// DefaultInvoice handles GET /api/invoices/default
func (h *Handlers) DefaultInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.invoices.Default(),
	})
}

// RenderInline handles POST /api/invoices/render
func (h *Handlers) RenderInline(c *gin.Context) {
	h.render(c, "inline")
}

// Download handles POST /api/invoices/download
func (h *Handlers) Download(c *gin.Context) {
	h.render(c, "attachment")
}

func (h *Handlers) render(c *gin.Context, disposition string) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	result, err := h.invoices.Render(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, result.FileName))
	c.Header("X-Invoice-Total", strconv.FormatFloat(result.Totals.GrandTotal, 'f', 2, 64))
	c.Data(http.StatusOK, contentTypePDF, result.PDF)
}

// Preview handles POST /api/invoices/preview.png
func (h *Handlers) Preview(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	png, err := h.invoices.Preview(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentTypePNG, png)
}

// Export handles POST /api/invoices/export.xlsx
func (h *Handlers) Export(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	content, name, err := h.invoices.Export(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentTypeXLSX, content)
}

// SaveInvoice handles POST /api/invoices
func (h *Handlers) SaveInvoice(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	saved, err := h.invoices.Save(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    saved,
	})
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	invoices, err := h.invoices.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"invoices": invoices,
			"limit":    req.Limit,
			"offset":   req.Offset,
		},
	})
}

// GetInvoiceFile handles GET /api/invoices/:uuid/file
func (h *Handlers) GetInvoiceFile(c *gin.Context) {
	saved, content, err := h.invoices.GetFile(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", saved.FileName))
	c.Data(http.StatusOK, contentTypePDF, content)
}

func (h *Handlers) bindForm(c *gin.Context) (entity.InvoiceForm, bool) {
	var form entity.InvoiceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Error("Invalid invoice form", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid invoice form: " + err.Error(),
		})
		return form, false
	}
	return form, true
}

// fail maps service errors to status codes
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrInvoiceNotFound):
		status, message = http.StatusNotFound, "invoice not found"
	case errors.Is(err, service.ErrFeatureDisabled):
		status, message = http.StatusNotImplemented, err.Error()
	case errors.Is(err, layout.ErrRenderFailed):
		status, message = http.StatusUnprocessableEntity, "invoice could not be rendered"
	case errors.Is(err, context.Canceled):
		status, message = 499, "request cancelled"
	}

	h.logger.Error("Request failed", "path", c.Request.URL.Path, "status", status, "error", err)
	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}
