package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type WorkoutHandler struct {
	log            *logger.Logger
	workoutService services.WorkoutService
}

func NewWorkoutHandler(baseLog *logger.Logger, workoutService services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		log:            baseLog.With("handler", "WorkoutHandler"),
		workoutService: workoutService,
	}
}

func (wh *WorkoutHandler) Create(c *gin.Context) {
	var input services.WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	workout, err := wh.workoutService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, workout)
}

func (wh *WorkoutHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.WorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	workout, err := wh.workoutService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, workout)
}

func (wh *WorkoutHandler) ListRange(c *gin.Context) {
	workouts, err := wh.workoutService.ListRange(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, workouts)
}

func (wh *WorkoutHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := wh.workoutService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
