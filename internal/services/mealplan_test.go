package services

import (
	"testing"

	"github.com/lifeos-app/lifeos-backend/internal/types"
)

func TestReplaceWeekIsFullReplace(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Stir Fry",
		Servings: 2,
		Ingredients: []RecipeLineInput{
			{Name: "Noodles", Quantity: 200, Unit: strPtr("g"), Calories: 280},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if _, err := h.mealPlans.ReplaceWeek(ctx, testWeek, []MealSlotInput{
		{Date: testWeek, MealType: types.MealTypeLunch, RecipeID: &recipe.ID},
		{Date: testWeek, MealType: types.MealTypeDinner, RecipeID: &recipe.ID},
	}); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	plan, err := h.mealPlans.ReplaceWeek(ctx, testWeek, []MealSlotInput{
		{Date: testWeek, MealType: types.MealTypeBreakfast, RecipeID: &recipe.ID},
	})
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if len(plan.Slots) != 1 {
		t.Fatalf("slots = %d, want 1 after full replace", len(plan.Slots))
	}
	if plan.Slots[0].MealType != types.MealTypeBreakfast {
		t.Fatalf("meal type = %q, want breakfast", plan.Slots[0].MealType)
	}
}

func TestReplaceWeekRejectsForeignRecipe(t *testing.T) {
	h := newHarness(t)
	ctxA, _ := h.userCtx(t)
	ctxB, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctxA, RecipeInput{
		Name:     "Private Dish",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Spice", Quantity: 5, Unit: strPtr("g"), Calories: 10},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if _, err := h.mealPlans.ReplaceWeek(ctxB, testWeek, []MealSlotInput{
		{Date: testWeek, MealType: types.MealTypeDinner, RecipeID: &recipe.ID},
	}); err == nil {
		t.Fatal("expected error planning another user's recipe")
	}
}

func TestReplaceWeekValidatesSlots(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	if _, err := h.mealPlans.ReplaceWeek(ctx, "not-a-date", nil); err == nil {
		t.Fatal("expected error for invalid week start")
	}
	if _, err := h.mealPlans.ReplaceWeek(ctx, testWeek, []MealSlotInput{
		{Date: testWeek, MealType: "brunch"},
	}); err == nil {
		t.Fatal("expected error for invalid meal type")
	}
}

func TestGetWeekMissingPlanIsNotFound(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	if _, err := h.mealPlans.GetWeek(ctx, testWeek); err == nil {
		t.Fatal("expected not-found for missing week")
	}
}
