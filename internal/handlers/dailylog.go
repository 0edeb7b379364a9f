package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type DailyLogHandler struct {
	log             *logger.Logger
	dailyLogService services.DailyLogService
}

func NewDailyLogHandler(baseLog *logger.Logger, dailyLogService services.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{
		log:             baseLog.With("handler", "DailyLogHandler"),
		dailyLogService: dailyLogService,
	}
}

func (dlh *DailyLogHandler) Create(c *gin.Context) {
	var input services.DailyLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	log, err := dlh.dailyLogService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, log)
}

func (dlh *DailyLogHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.DailyLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	log, err := dlh.dailyLogService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, log)
}

func (dlh *DailyLogHandler) ListRange(c *gin.Context) {
	logs, err := dlh.dailyLogService.ListRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, logs)
}

func (dlh *DailyLogHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := dlh.dailyLogService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
