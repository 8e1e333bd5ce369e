package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beniamp/orders-tracking/internal/calendar"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/beniamp/orders-tracking/internal/report"
	"github.com/beniamp/orders-tracking/internal/service"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type OrdersHandler struct {
	service *service.OrderTrackingService
}

func NewOrdersHandler(service *service.OrderTrackingService) *OrdersHandler {
	return &OrdersHandler{service: service}
}

// parseRange resolves the requested date range. Endpoints arrive as
// Gregorian YYYY-MM-DD query params; missing endpoints fall back to the
// bounds of the loaded table, mirroring the dashboard date widget.
func parseRange(c *gin.Context, bounds calendar.Range, hasData bool) (calendar.Range, bool) {
	startStr := strings.TrimSpace(c.Query("start"))
	endStr := strings.TrimSpace(c.Query("end"))

	if startStr == "" && endStr == "" {
		if !hasData {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no dated rows in snapshot"})
			return calendar.Range{}, false
		}
		return bounds, true
	}

	start := bounds.Start
	end := bounds.End
	var err error

	if startStr != "" {
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
			return calendar.Range{}, false
		}
	}
	if endStr != "" {
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
			return calendar.Range{}, false
		}
	}

	rng, err := calendar.NewRange(start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return calendar.Range{}, false
	}
	return rng, true
}

func parseFilter(c *gin.Context) domain.Filter {
	return domain.Filter{
		Category: strings.TrimSpace(c.Query("category")),
		Brand:    strings.TrimSpace(c.Query("brand")),
	}
}

func parseShadows(c *gin.Context) int {
	shadows, err := strconv.Atoi(c.DefaultQuery("shadows", "1"))
	if err != nil || shadows < 1 {
		return 1
	}
	return shadows
}

func (h *OrdersHandler) GetSummary(c *gin.Context) {
	bounds, hasData := h.service.Bounds()
	rng, ok := parseRange(c, bounds, hasData)
	if !ok {
		return
	}

	summary, err := h.service.Compare(c.Request.Context(), rng, parseFilter(c), parseShadows(c))
	if err != nil {
		if errors.Is(err, report.ErrRangeOutsideData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *OrdersHandler) GetTrend(c *gin.Context) {
	bounds, hasData := h.service.Bounds()
	rng, ok := parseRange(c, bounds, hasData)
	if !ok {
		return
	}

	summary, err := h.service.Compare(c.Request.Context(), rng, parseFilter(c), parseShadows(c))
	if err != nil {
		if errors.Is(err, report.ErrRangeOutsideData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute trend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":    summary.Days,
		"shadows": summary.Shadows,
	})
}

func (h *OrdersHandler) GetDaily(c *gin.Context) {
	bounds, hasData := h.service.Bounds()
	rng, ok := parseRange(c, bounds, hasData)
	if !ok {
		return
	}

	daily, err := h.service.Daily(rng, parseFilter(c))
	if err != nil {
		if errors.Is(err, report.ErrRangeOutsideData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute daily breakdown"})
		return
	}

	c.JSON(http.StatusOK, daily)
}

func (h *OrdersHandler) GetProducts(c *gin.Context) {
	bounds, hasData := h.service.Bounds()
	rng, ok := parseRange(c, bounds, hasData)
	if !ok {
		return
	}

	products, err := h.service.Products(rng, parseFilter(c), parseShadows(c))
	if err != nil {
		if errors.Is(err, report.ErrRangeOutsideData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute product breakdown"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *OrdersHandler) GetCategories(c *gin.Context) {
	categories := append([]string{domain.AllCategories}, h.service.Categories()...)
	c.JSON(http.StatusOK, categories)
}

func (h *OrdersHandler) GetAvailableDates(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.AvailableDates())
}
