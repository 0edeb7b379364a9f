package services

import (
	"testing"
)

func TestCreateRecipeLogConsumesPantry(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Omelette",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Egg", Quantity: 3, Unit: strPtr("piece"), Calories: 210, Protein: 18},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if _, err := h.pantry.Upsert(ctx, "Egg", 10, strPtr("piece")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	log, err := h.dailyLogs.Create(ctx, DailyLogInput{
		Date:     "2026-08-30",
		MealType: "breakfast",
		RecipeID: &recipe.ID,
		Servings: 1,
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if log.Calories != 210 {
		t.Fatalf("calories = %v, want 210", log.Calories)
	}
	if log.Protein != 18 {
		t.Fatalf("protein = %v, want 18", log.Protein)
	}

	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "egg")
	if item.Quantity != 7 {
		t.Fatalf("pantry = %v, want 7 after consuming 3", item.Quantity)
	}
}

func TestRecipeLogScalesByServings(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Chili",
		Servings: 4,
		Ingredients: []RecipeLineInput{
			{Name: "Beans", Quantity: 800, Unit: strPtr("g"), Calories: 1000, Protein: 60, Carbs: 160, Fat: 8},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if _, err := h.pantry.Upsert(ctx, "Beans", 1000, strPtr("g")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	// One of four servings: quarter of the lines and the macros.
	log, err := h.dailyLogs.Create(ctx, DailyLogInput{
		Date:     "2026-08-30",
		RecipeID: &recipe.ID,
		Servings: 1,
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if log.Calories != 250 {
		t.Fatalf("calories = %v, want 250", log.Calories)
	}
	if log.Protein != 15 {
		t.Fatalf("protein = %v, want 15", log.Protein)
	}

	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "beans")
	if item.Quantity != 800 {
		t.Fatalf("pantry = %v, want 800 after consuming 200", item.Quantity)
	}
}

func TestUpdateLogReversesThenApplies(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Scramble",
		Servings: 4,
		Ingredients: []RecipeLineInput{
			{Name: "Egg", Quantity: 4, Unit: strPtr("piece"), Calories: 280},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if _, err := h.pantry.Upsert(ctx, "Egg", 10, strPtr("piece")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	// Four servings consumes all 4 eggs: 10 -> 6.
	log, err := h.dailyLogs.Create(ctx, DailyLogInput{
		Date:     "2026-08-30",
		RecipeID: &recipe.ID,
		Servings: 4,
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "egg")
	if item.Quantity != 6 {
		t.Fatalf("pantry = %v, want 6", item.Quantity)
	}

	// Shrinking to one serving reverses the 4 and applies 1: net 10 - 1.
	if _, err := h.dailyLogs.Update(ctx, log.ID, DailyLogInput{
		Date:     "2026-08-30",
		RecipeID: &recipe.ID,
		Servings: 1,
	}); err != nil {
		t.Fatalf("update log: %v", err)
	}
	item, _ = h.pantryRepo.GetByUserAndName(ctx, nil, userID, "egg")
	if item.Quantity != 9 {
		t.Fatalf("pantry = %v, want 9 after reverse-then-apply", item.Quantity)
	}
}

func TestDeleteLogRestoresPantry(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Smoothie",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Banana", Quantity: 2, Unit: strPtr("piece"), Calories: 180},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if _, err := h.pantry.Upsert(ctx, "Banana", 5, strPtr("piece")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	log, err := h.dailyLogs.Create(ctx, DailyLogInput{
		Date:     "2026-08-30",
		RecipeID: &recipe.ID,
		Servings: 1,
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "banana")
	if item.Quantity != 3 {
		t.Fatalf("pantry = %v, want 3", item.Quantity)
	}

	if err := h.dailyLogs.Delete(ctx, log.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	item, _ = h.pantryRepo.GetByUserAndName(ctx, nil, userID, "banana")
	if item.Quantity != 5 {
		t.Fatalf("pantry = %v, want 5 restored", item.Quantity)
	}

	logs, err := h.dailyLogs.ListRange(ctx, "2026-08-30", "2026-08-30")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("logs = %d, want 0", len(logs))
	}
}

func TestManualLogDoesNotTouchPantry(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	if _, err := h.pantry.Upsert(ctx, "Chicken", 500, strPtr("g")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	log, err := h.dailyLogs.Create(ctx, DailyLogInput{
		Date:     "2026-08-30",
		MealType: "lunch",
		Calories: 650.456,
		Protein:  42.123,
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if log.Calories != 650 {
		t.Fatalf("calories = %v, want 650 (integer)", log.Calories)
	}
	if log.Protein != 42.12 {
		t.Fatalf("protein = %v, want 42.12", log.Protein)
	}

	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "chicken")
	if item.Quantity != 500 {
		t.Fatalf("pantry = %v, want untouched 500", item.Quantity)
	}
}

func TestLogWithMismatchedUnitSkipsPantryLine(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Latte",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Milk", Quantity: 200, Unit: strPtr("ml"), Calories: 84},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	// Stock tracked in grams; the ml consumption cannot apply.
	if _, err := h.pantry.Upsert(ctx, "Milk", 1000, strPtr("g")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	if _, err := h.dailyLogs.Create(ctx, DailyLogInput{
		Date:     "2026-08-30",
		RecipeID: &recipe.ID,
		Servings: 1,
	}); err != nil {
		t.Fatalf("create log: %v", err)
	}
	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "milk")
	if item.Quantity != 1000 {
		t.Fatalf("pantry = %v, want unchanged 1000", item.Quantity)
	}
}
