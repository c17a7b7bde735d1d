package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	reminderService  *service.ReminderService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, reminderService *service.ReminderService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, reminderService: reminderService}
}

// GetStats handles getting dashboard statistics for an optional
// start_date/end_date period, end inclusive
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var fieldErrors []apperror.FieldError
	from := queryDate(c, "start_date", &fieldErrors)
	to := queryDate(c, "end_date", &fieldErrors)
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// RunReminders sends today's service-due reminders immediately
func (h *DashboardHandler) RunReminders(c *gin.Context) {
	run, err := h.reminderService.SendDueReminders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Reminders processed", run)
}
