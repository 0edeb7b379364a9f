package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/services"
)

// NutritionHandler covers the ingredient catalog and recipes.
type NutritionHandler struct {
	log               *logger.Logger
	ingredientService services.IngredientService
	recipeService     services.RecipeService
}

func NewNutritionHandler(baseLog *logger.Logger, ingredientService services.IngredientService, recipeService services.RecipeService) *NutritionHandler {
	return &NutritionHandler{
		log:               baseLog.With("handler", "NutritionHandler"),
		ingredientService: ingredientService,
		recipeService:     recipeService,
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondBadRequest(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func (nh *NutritionHandler) ListIngredients(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		ingredients, err := nh.ingredientService.Search(c.Request.Context(), q)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, ingredients)
		return
	}
	ingredients, err := nh.ingredientService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ingredients)
}

func (nh *NutritionHandler) CreateRecipe(c *gin.Context) {
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	recipe, err := nh.recipeService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, recipe)
}

func (nh *NutritionHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondBadRequest(c, err)
		return
	}
	recipe, err := nh.recipeService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, recipe)
}

func (nh *NutritionHandler) DuplicateRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	recipe, err := nh.recipeService.Duplicate(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, recipe)
}

func (nh *NutritionHandler) GetRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	recipe, err := nh.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, recipe)
}

func (nh *NutritionHandler) ListRecipes(c *gin.Context) {
	recipes, err := nh.recipeService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, recipes)
}

func (nh *NutritionHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := nh.recipeService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}
