package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/lifeos-app/lifeos-backend/internal/types"
)

const testWeek = "2026-08-31"

func (h *harness) seedWeek(t *testing.T, ctx context.Context, recipeIDs ...uuid.UUID) {
	t.Helper()
	slots := make([]MealSlotInput, 0, len(recipeIDs))
	for i := range recipeIDs {
		slots = append(slots, MealSlotInput{
			Date:     testWeek,
			MealType: types.MealTypeDinner,
			RecipeID: &recipeIDs[i],
		})
	}
	if _, err := h.mealPlans.ReplaceWeek(ctx, testWeek, slots); err != nil {
		t.Fatalf("replace week: %v", err)
	}
}

func TestGenerateSubtractsPantryStock(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Fried Rice",
		Servings: 2,
		Ingredients: []RecipeLineInput{
			{Name: "Rice", Quantity: 300, Unit: strPtr("g"), Calories: 390},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	h.seedWeek(t, ctx, recipe.ID)

	if _, err := h.pantry.Upsert(ctx, "Rice", 100, strPtr("g")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	items, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Name != "Rice" || items[0].Quantity != 200 {
		t.Fatalf("item = %q %v, want Rice 200", items[0].Name, items[0].Quantity)
	}
	if items[0].Source != types.ShoppingSourceAuto {
		t.Fatalf("source = %q, want AUTO", items[0].Source)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Porridge",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Oats", Quantity: 80, Unit: strPtr("g"), Calories: 300},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	h.seedWeek(t, ctx, recipe.ID)

	first, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("item counts = %d, %d; want 1, 1", len(first), len(second))
	}
	if second[0].Name != first[0].Name || second[0].Quantity != first[0].Quantity {
		t.Fatalf("regenerated item differs: %+v vs %+v", second[0], first[0])
	}
}

func TestGenerateIgnoresIncommensurablePantryStock(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Milkshake",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Milk", Quantity: 500, Unit: strPtr("ml"), Calories: 210},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	h.seedWeek(t, ctx, recipe.ID)

	// Pantry stock in grams cannot satisfy a requirement in ml.
	if _, err := h.pantry.Upsert(ctx, "Milk", 1000, strPtr("g")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	items, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Quantity != 500 || items[0].Unit == nil || *items[0].Unit != "ml" {
		t.Fatalf("item = %v %v, want full 500 ml", items[0].Quantity, items[0].Unit)
	}
}

func TestGenerateDropsFullyCoveredItems(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Rice Bowl",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Rice", Quantity: 150, Unit: strPtr("g"), Calories: 195},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	h.seedWeek(t, ctx, recipe.ID)

	if _, err := h.pantry.Upsert(ctx, "Rice", 500, strPtr("g")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	items, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %d, want 0 (pantry covers requirement)", len(items))
	}
}

func TestGeneratePreservesManualItems(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	manual, err := h.shoppingList.AddManual(ctx, ManualItemInput{Name: "Batteries", Quantity: 4})
	if err != nil {
		t.Fatalf("add manual: %v", err)
	}

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Soup",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Carrot", Quantity: 3, Unit: strPtr("piece"), Calories: 75},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	h.seedWeek(t, ctx, recipe.ID)

	items, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var foundManual bool
	for _, item := range items {
		if item.ID == manual.ID {
			foundManual = true
		}
	}
	if !foundManual {
		t.Fatal("manual item was removed by generation")
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (manual + auto)", len(items))
	}
}

func TestGenerateAggregatesRepeatedRecipes(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Omelette",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Egg", Quantity: 3, Unit: strPtr("piece"), Calories: 210},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	// Same recipe twice in the week doubles the requirement.
	h.seedWeek(t, ctx, recipe.ID, recipe.ID)

	items, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Quantity != 6 {
		t.Fatalf("quantity = %v, want 6", items[0].Quantity)
	}
}

func TestToggleCheckedHandsOffToPantryOnce(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	item, err := h.shoppingList.AddManual(ctx, ManualItemInput{Name: "Pasta", Quantity: 500, Unit: strPtr("g")})
	if err != nil {
		t.Fatalf("add manual: %v", err)
	}

	if _, err := h.shoppingList.ToggleChecked(ctx, item.ID, true); err != nil {
		t.Fatalf("check: %v", err)
	}
	pantryItem, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "pasta")
	if pantryItem == nil || pantryItem.Quantity != 500 {
		t.Fatalf("pantry after check = %+v, want 500", pantryItem)
	}

	// Unchecking does not take the quantity back out.
	if _, err := h.shoppingList.ToggleChecked(ctx, item.ID, false); err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	pantryItem, _ = h.pantryRepo.GetByUserAndName(ctx, nil, userID, "pasta")
	if pantryItem.Quantity != 500 {
		t.Fatalf("pantry after uncheck = %v, want unchanged 500", pantryItem.Quantity)
	}

	// Re-checking an already handed-off item increments again only on the
	// false->true transition.
	if _, err := h.shoppingList.ToggleChecked(ctx, item.ID, true); err != nil {
		t.Fatalf("re-check: %v", err)
	}
	pantryItem, _ = h.pantryRepo.GetByUserAndName(ctx, nil, userID, "pasta")
	if pantryItem.Quantity != 1000 {
		t.Fatalf("pantry after re-check = %v, want 1000", pantryItem.Quantity)
	}
}

func TestToggleCheckedTrueToTrueIsNoOp(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	item, err := h.shoppingList.AddManual(ctx, ManualItemInput{Name: "Beans", Quantity: 2, Unit: strPtr("can")})
	if err != nil {
		t.Fatalf("add manual: %v", err)
	}
	if _, err := h.shoppingList.ToggleChecked(ctx, item.ID, true); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := h.shoppingList.ToggleChecked(ctx, item.ID, true); err != nil {
		t.Fatalf("second check: %v", err)
	}
	pantryItem, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "beans")
	if pantryItem.Quantity != 2 {
		t.Fatalf("pantry = %v, want 2 (no double hand-off)", pantryItem.Quantity)
	}
}

func TestGenerateLogRegenerateWeekRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Omelette",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Egg", Quantity: 3, Unit: strPtr("pcs"), Calories: 210},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	h.seedWeek(t, ctx, recipe.ID)

	if _, err := h.pantry.Upsert(ctx, "Egg", 5, strPtr("pcs")); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	// Stock covers the week's requirement, nothing to buy.
	items, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %d, want 0 while pantry covers the week", len(items))
	}

	// Two servings consume six eggs against a stock of five: floored to 0.
	if _, err := h.dailyLogs.Create(ctx, DailyLogInput{
		Date:     testWeek,
		RecipeID: &recipe.ID,
		Servings: 2,
	}); err != nil {
		t.Fatalf("create log: %v", err)
	}
	pantryItem, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "egg")
	if pantryItem.Quantity != 0 {
		t.Fatalf("pantry = %v, want 0 after logging", pantryItem.Quantity)
	}

	// With the stock consumed, regeneration surfaces the full requirement.
	items, err = h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 after stock was consumed", len(items))
	}
	if items[0].Name != "Egg" || items[0].Quantity != 3 {
		t.Fatalf("item = %q %v, want Egg 3", items[0].Name, items[0].Quantity)
	}
	if items[0].Unit == nil || *items[0].Unit != "pcs" {
		t.Fatalf("unit = %v, want pcs", items[0].Unit)
	}
	if items[0].Source != types.ShoppingSourceAuto {
		t.Fatalf("source = %q, want AUTO", items[0].Source)
	}
}

func TestGenerateUnitlessPantryCountsAgainstEachBucket(t *testing.T) {
	h := newHarness(t)
	ctx, _ := h.userCtx(t)

	recipe, err := h.recipes.Create(ctx, RecipeInput{
		Name:     "Bechamel",
		Servings: 1,
		Ingredients: []RecipeLineInput{
			{Name: "Milk", Quantity: 500, Unit: strPtr("ml"), Calories: 210},
			{Name: "Milk", Quantity: 300, Unit: strPtr("g"), Calories: 150},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	h.seedWeek(t, ctx, recipe.ID)

	// A unit-less row is a wildcard: it is subtracted from every bucket
	// that shares the name, not consumed by just one of them.
	if _, err := h.pantry.Upsert(ctx, "Milk", 200, nil); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	items, err := h.shoppingList.Generate(ctx, testWeek)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (one per unit bucket)", len(items))
	}
	byUnit := map[string]float64{}
	for _, item := range items {
		if item.Unit == nil {
			t.Fatalf("item %q has no unit", item.Name)
		}
		byUnit[*item.Unit] = item.Quantity
	}
	if byUnit["ml"] != 300 {
		t.Fatalf("ml bucket = %v, want 300 (500 - 200 wildcard)", byUnit["ml"])
	}
	if byUnit["g"] != 100 {
		t.Fatalf("g bucket = %v, want 100 (300 - 200 wildcard)", byUnit["g"])
	}
}
