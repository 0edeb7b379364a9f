package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

type ShoppingListHandler struct {
	log                 *logger.Logger
	shoppingListService services.ShoppingListService
}

func NewShoppingListHandler(baseLog *logger.Logger, shoppingListService services.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{
		log:                 baseLog.With("handler", "ShoppingListHandler"),
		shoppingListService: shoppingListService,
	}
}

func (slh *ShoppingListHandler) List(c *gin.Context) {
	items, err := slh.shoppingListService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, items)
}

func (slh *ShoppingListHandler) Generate(c *gin.Context) {
	var input struct {
		WeekStart string `json:"week_start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	items, err := slh.shoppingListService.Generate(c.Request.Context(), input.WeekStart)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, items)
}

func (slh *ShoppingListHandler) ToggleChecked(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Checked bool `json:"checked"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	item, err := slh.shoppingListService.ToggleChecked(c.Request.Context(), id, input.Checked)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, item)
}

func (slh *ShoppingListHandler) AddManual(c *gin.Context) {
	var input services.ManualItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	item, err := slh.shoppingListService.AddManual(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, item)
}

func (slh *ShoppingListHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := slh.shoppingListService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
