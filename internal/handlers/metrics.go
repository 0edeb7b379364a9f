package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type BodyMetricHandler struct {
	log               *logger.Logger
	bodyMetricService services.BodyMetricService
}

func NewBodyMetricHandler(baseLog *logger.Logger, bodyMetricService services.BodyMetricService) *BodyMetricHandler {
	return &BodyMetricHandler{
		log:               baseLog.With("handler", "BodyMetricHandler"),
		bodyMetricService: bodyMetricService,
	}
}

func (bmh *BodyMetricHandler) Upsert(c *gin.Context) {
	var input services.BodyMetricInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	metric, err := bmh.bodyMetricService.Upsert(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, metric)
}

func (bmh *BodyMetricHandler) ListRange(c *gin.Context) {
	metrics, err := bmh.bodyMetricService.ListRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, metrics)
}

func (bmh *BodyMetricHandler) Latest(c *gin.Context) {
	metric, err := bmh.bodyMetricService.Latest(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, metric)
}

func (bmh *BodyMetricHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bmh.bodyMetricService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
