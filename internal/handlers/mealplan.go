package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type MealPlanHandler struct {
	log             *logger.Logger
	mealPlanService services.MealPlanService
}

func NewMealPlanHandler(baseLog *logger.Logger, mealPlanService services.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{
		log:             baseLog.With("handler", "MealPlanHandler"),
		mealPlanService: mealPlanService,
	}
}

func (mph *MealPlanHandler) ReplaceWeek(c *gin.Context) {
	var input struct {
		WeekStart string                   `json:"week_start" binding:"required"`
		Slots     []services.MealSlotInput `json:"slots"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	plan, err := mph.mealPlanService.ReplaceWeek(c.Request.Context(), input.WeekStart, input.Slots)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, plan)
}

func (mph *MealPlanHandler) GetWeek(c *gin.Context) {
	plan, err := mph.mealPlanService.GetWeek(c.Request.Context(), c.Query("week_start"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, plan)
}
