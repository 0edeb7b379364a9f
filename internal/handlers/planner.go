package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type PlannerHandler struct {
	log            *logger.Logger
	plannerService services.PlannerService
}

func NewPlannerHandler(baseLog *logger.Logger, plannerService services.PlannerService) *PlannerHandler {
	return &PlannerHandler{
		log:            baseLog.With("handler", "PlannerHandler"),
		plannerService: plannerService,
	}
}

func (plh *PlannerHandler) Create(c *gin.Context) {
	var input services.PlannerEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	event, err := plh.plannerService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, event)
}

func (plh *PlannerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.PlannerEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	event, err := plh.plannerService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, event)
}

func (plh *PlannerHandler) ListRange(c *gin.Context) {
	events, err := plh.plannerService.ListRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, events)
}

func (plh *PlannerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := plh.plannerService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
