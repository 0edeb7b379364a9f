package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type DashboardHandler struct {
	log              *logger.Logger
	dashboardService services.DashboardService
}

func NewDashboardHandler(baseLog *logger.Logger, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		log:              baseLog.With("handler", "DashboardHandler"),
		dashboardService: dashboardService,
	}
}

func (dh *DashboardHandler) Summary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	summary, err := dh.dashboardService.Summary(c.Request.Context(), date)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}
