package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type PantryHandler struct {
	log           *logger.Logger
	pantryService services.PantryService
}

func NewPantryHandler(baseLog *logger.Logger, pantryService services.PantryService) *PantryHandler {
	return &PantryHandler{
		log:           baseLog.With("handler", "PantryHandler"),
		pantryService: pantryService,
	}
}

func (ph *PantryHandler) List(c *gin.Context) {
	items, err := ph.pantryService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, items)
}

func (ph *PantryHandler) Upsert(c *gin.Context) {
	var input struct {
		Name     string  `json:"name" binding:"required"`
		Quantity float64 `json:"quantity"`
		Unit     *string `json:"unit,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	item, err := ph.pantryService.Upsert(c.Request.Context(), input.Name, input.Quantity, input.Unit)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, item)
}

func (ph *PantryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ph.pantryService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
