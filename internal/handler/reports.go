package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Vaibhav-12521/Invento/internal/apierror"
	"github.com/Vaibhav-12521/Invento/internal/dto"
	"github.com/Vaibhav-12521/Invento/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardCacheKey = "reports:dashboard"
	dashboardCacheTTL = 30 * time.Second
)

type ReportsHandler struct {
	svc service.ReportService
	rdb *redis.Client
}

func NewReportsHandler(svc service.ReportService, rdb *redis.Client) *ReportsHandler {
	return &ReportsHandler{svc: svc, rdb: rdb}
}

// Dashboard serves the main dashboard aggregates, cached in redis for a short
// TTL. The service degrades broken aggregates to zero values, so this endpoint
// always returns 200.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
		var summary dto.DashboardSummary
		if jsonErr := json.Unmarshal(cached, &summary); jsonErr == nil {
			c.JSON(http.StatusOK, summary)
			return
		}
	}

	summary := h.svc.DashboardSummary(ctx)

	if b, jsonErr := json.Marshal(summary); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), dashboardCacheKey, b, dashboardCacheTTL).Err()
	}

	c.JSON(http.StatusOK, summary)
}

// Windowed serves the trailing-window sales report. ?days= defaults to 30.
func (h *ReportsHandler) Windowed(c *gin.Context) {
	days := service.DefaultReportDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("days must be a positive integer"))
			return
		}
		days = parsed
	}
	c.JSON(http.StatusOK, h.svc.WindowedReport(c.Request.Context(), days))
}
