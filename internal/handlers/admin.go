// internal/handlers/admin.go
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/outfit-backend/internal/i18n"
	"github.com/javajoker/outfit-backend/internal/services"
	"github.com/javajoker/outfit-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	// Parse date range
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")
	metricsStr := c.Query("metrics")

	if startDateStr == "" || endDateStr == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "start_date and end_date"), nil)
		return
	}

	startDate, err := time.ParseInLocation("2006-01-02", startDateStr, time.Local)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "start_date (YYYY-MM-DD)"), nil)
		return
	}

	endDate, err := time.ParseInLocation("2006-01-02", endDateStr, time.Local)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "end_date (YYYY-MM-DD)"), nil)
		return
	}

	// end_date is inclusive
	endOfDay := endDate.Add(24*time.Hour - time.Nanosecond)

	// Parse metrics
	var metrics []string
	if metricsStr != "" {
		metrics = strings.Split(metricsStr, ",")
	} else {
		metrics = services.AnalyticsMetrics
	}

	analytics, err := h.adminService.GetAnalytics(c.Request.Context(), startDate, endOfDay, metrics)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"analytics":  analytics,
		"start_date": startDate.Format("2006-01-02"),
		"end_date":   endDate.Format("2006-01-02"),
		"metrics":    metrics,
	})
}
