package services

import (
	"testing"
)

func TestCreateRecipeDerivesPerUnitIngredient(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	_, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Fried Rice",
		Servings: 2,
		Ingredients: []RecipeLineInput{
			{Name: "Rice", Quantity: 200, Unit: strPtr("g"), Calories: 260, Protein: 5.4, Carbs: 56, Fat: 0.6},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	ing, err := h.ingredientRepo.GetByNormalizedName(ctx, nil, "rice")
	if err != nil {
		t.Fatalf("lookup ingredient: %v", err)
	}
	if ing == nil {
		t.Fatal("expected rice ingredient in catalog")
	}
	if !almostEqual(ing.Calories, 1.3) {
		t.Fatalf("per-unit calories = %v, want 1.3", ing.Calories)
	}
	if ing.Unit == nil || *ing.Unit != "g" {
		t.Fatalf("unit = %v, want g", ing.Unit)
	}
}

func TestRecipeTotalsEqualSumOfLines(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Omelette",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Egg", Quantity: 3, Unit: strPtr("piece"), Calories: 210, Protein: 18, Carbs: 1.5, Fat: 15},
			{Name: "Butter", Quantity: 10, Unit: strPtr("g"), Calories: 72, Protein: 0.1, Carbs: 0, Fat: 8.1},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if !almostEqual(recipe.TotalCalories, 282) {
		t.Fatalf("total calories = %v, want 282", recipe.TotalCalories)
	}
	if !almostEqual(recipe.TotalProtein, 18.1) {
		t.Fatalf("total protein = %v, want 18.1", recipe.TotalProtein)
	}
	if len(recipe.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(recipe.Lines))
	}
	if recipe.Lines[0].Name != "Egg" || recipe.Lines[1].Name != "Butter" {
		t.Fatalf("line ordering not preserved: %s, %s", recipe.Lines[0].Name, recipe.Lines[1].Name)
	}
}

func TestUpdateRecipeReplacesLinesAndRecomputesTotals(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Toast",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Bread", Quantity: 2, Unit: strPtr("slice"), Calories: 160},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	updated, err := h.recipes.Update(ctx, recipe.ID, RecipeInput{
		Name:     "Toast with Jam",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Bread", Quantity: 2, Unit: strPtr("slice"), Calories: 160},
			{Name: "Jam", Quantity: 20, Unit: strPtr("g"), Calories: 50, Carbs: 13},
		},
	})
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}
	if !almostEqual(updated.TotalCalories, 210) {
		t.Fatalf("total calories = %v, want 210", updated.TotalCalories)
	}
	if len(updated.Lines) != 2 {
		t.Fatalf("lines = %d, want 2 after replacement", len(updated.Lines))
	}
}

func TestZeroQuantityLineDoesNotDeriveInfinity(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	// Quantity must be positive through the validated API, so seed the
	// catalog update path directly.
	tx := h.db
	ing, err := h.ingredients.UpsertFromRecipeLine(ctx, tx, "Salt", 0, strPtr("g"), 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if ing.Calories != 0 {
		t.Fatalf("calories = %v, want 0 for zero quantity", ing.Calories)
	}
}

func TestDuplicateRecipeCopiesLinesAndTotals(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	original, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Pancakes",
		Servings: 4,
		Ingredients: []RecipeLineInput{
			{Name: "Flour", Quantity: 250, Unit: strPtr("g"), Calories: 910, Protein: 25, Carbs: 190, Fat: 2.5},
			{Name: "Milk", Quantity: 300, Unit: strPtr("ml"), Calories: 126, Protein: 9.9, Carbs: 14.4, Fat: 3},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	dup, err := h.recipes.Duplicate(ctx, original.ID)
	if err != nil {
		t.Fatalf("duplicate recipe: %v", err)
	}
	if dup.ID == original.ID {
		t.Fatal("duplicate shares the original's id")
	}
	if dup.Name != "Pancakes (copy)" {
		t.Fatalf("name = %q, want %q", dup.Name, "Pancakes (copy)")
	}
	if !almostEqual(dup.TotalCalories, original.TotalCalories) {
		t.Fatalf("totals differ: %v vs %v", dup.TotalCalories, original.TotalCalories)
	}
	if len(dup.Lines) != len(original.Lines) {
		t.Fatalf("line count differs: %d vs %d", len(dup.Lines), len(original.Lines))
	}
	if dup.Lines[0].ID == original.Lines[0].ID {
		t.Fatal("duplicate lines share original row ids")
	}
}

func TestRecipeOwnershipEnforced(t *testing.T) {
	h := newHarness(t)
	ctxA, _ := h.userCtx(t)
	ctxB, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctxA, RecipeInput{
		Name:     "Secret Sauce",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Tomato", Quantity: 2, Unit: strPtr("piece"), Calories: 44},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if _, err := h.recipes.Get(ctxB, recipe.ID); err == nil {
		t.Fatal("expected not-found for another user's recipe")
	}
	if err := h.recipes.Delete(ctxB, recipe.ID); err == nil {
		t.Fatal("expected not-found deleting another user's recipe")
	}
	if _, err := h.recipes.Get(ctxA, recipe.ID); err != nil {
		t.Fatalf("owner lost access: %v", err)
	}
}

func TestRecipeValidationCollectsFieldErrors(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	_, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "  ",
		Servings: 0,
		Ingredients: []RecipeLineInput{
			{Name: "", Quantity: -1},
		},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
