package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/repos/testutil"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

// harness wires the full service graph against a fresh test database.
type harness struct {
	db *gorm.DB

	ingredientRepo   repos.IngredientRepo
	recipeRepo       repos.RecipeRepo
	mealPlanRepo     repos.MealPlanRepo
	pantryRepo       repos.PantryRepo
	shoppingListRepo repos.ShoppingListRepo
	dailyLogRepo     repos.DailyLogRepo

	ingredients  IngredientService
	recipes      RecipeService
	mealPlans    MealPlanService
	pantry       PantryService
	shoppingList ShoppingListService
	dailyLogs    DailyLogService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gormDB := testutil.DB(t)
	log := testutil.Logger(t)

	h := &harness{
		db:               gormDB,
		ingredientRepo:   repos.NewIngredientRepo(gormDB, log),
		recipeRepo:       repos.NewRecipeRepo(gormDB, log),
		mealPlanRepo:     repos.NewMealPlanRepo(gormDB, log),
		pantryRepo:       repos.NewPantryRepo(gormDB, log),
		shoppingListRepo: repos.NewShoppingListRepo(gormDB, log),
		dailyLogRepo:     repos.NewDailyLogRepo(gormDB, log),
	}
	h.ingredients = NewIngredientService(gormDB, log, h.ingredientRepo)
	h.recipes = NewRecipeService(gormDB, log, h.recipeRepo, h.ingredients)
	h.mealPlans = NewMealPlanService(gormDB, log, h.mealPlanRepo, h.recipeRepo)
	h.pantry = NewPantryService(gormDB, log, h.pantryRepo)
	h.shoppingList = NewShoppingListService(gormDB, log, h.shoppingListRepo, h.mealPlanRepo, h.recipeRepo, h.pantryRepo, h.pantry)
	h.dailyLogs = NewDailyLogService(gormDB, log, h.dailyLogRepo, h.recipeRepo, h.pantry)
	return h
}

// userCtx creates a user row and returns a context acting as that user.
func (h *harness) userCtx(t *testing.T) (context.Context, uuid.UUID) {
	t.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Email:    uuid.New().String() + "@example.com",
		Password: "irrelevant",
	}
	if err := h.db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: user.ID,
	})
	return ctx, user.ID
}

func strPtr(s string) *string { return &s }

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}
