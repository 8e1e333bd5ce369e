package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/beniamp/orders-tracking/internal/service"
	"github.com/gin-gonic/gin"
)

type BalanceHandler struct {
	service *service.BalanceService
	orders  *service.OrderTrackingService
}

func NewBalanceHandler(balance *service.BalanceService, orders *service.OrderTrackingService) *BalanceHandler {
	return &BalanceHandler{service: balance, orders: orders}
}

func (h *BalanceHandler) GetDashboard(c *gin.Context) {
	bounds, hasData := h.orders.Bounds()
	rng, ok := parseRange(c, bounds, hasData)
	if !ok {
		return
	}

	dash, err := h.service.Dashboard(c.Request.Context(), rng, parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance dashboard"})
		return
	}

	c.JSON(http.StatusOK, dash)
}

func (h *BalanceHandler) GetProducts(c *gin.Context) {
	bounds, hasData := h.orders.Bounds()
	rng, ok := parseRange(c, bounds, hasData)
	if !ok {
		return
	}

	var status domain.ActionStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		parsed, ok := domain.ParseActionStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status: " + raw})
			return
		}
		status = parsed
	}

	rows, err := h.service.Products(c.Request.Context(), rng, parseFilter(c), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance products"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *BalanceHandler) Export(c *gin.Context) {
	bounds, hasData := h.orders.Bounds()
	rng, ok := parseRange(c, bounds, hasData)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportXLSX(c.Request.Context(), rng, parseFilter(c), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export balance report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="balance_report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
