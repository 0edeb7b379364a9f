package services

import (
	"testing"
)

func TestPantryDecrementFloorsAtZero(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	if _, err := h.pantry.Upsert(ctx, "Rice", 100, strPtr("g")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	outcome, err := h.pantry.Decrement(ctx, nil, userID, "Rice", 250, strPtr("g"))
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if outcome != LedgerApplied {
		t.Fatalf("outcome = %q, want %q", outcome, LedgerApplied)
	}

	item, err := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "rice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if item.Quantity != 0 {
		t.Fatalf("quantity = %v, want 0 (floored)", item.Quantity)
	}
}

func TestPantryIncrementCreatesMissingItem(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	outcome, err := h.pantry.Increment(ctx, nil, userID, "Oats", 500, strPtr("g"))
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if outcome != LedgerCreatedNew {
		t.Fatalf("outcome = %q, want %q", outcome, LedgerCreatedNew)
	}

	item, err := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "oats")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if item == nil || item.Quantity != 500 {
		t.Fatalf("item = %+v, want quantity 500", item)
	}
}

func TestPantryDecrementAbsentItemIsNoOp(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	outcome, err := h.pantry.Decrement(ctx, nil, userID, "Ghost", 5, nil)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if outcome != LedgerNoOp {
		t.Fatalf("outcome = %q, want %q", outcome, LedgerNoOp)
	}
	if item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "ghost"); item != nil {
		t.Fatal("no-op decrement created a row")
	}
}

func TestPantryIncommensurableUnitsSkip(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	if _, err := h.pantry.Upsert(ctx, "Milk", 1000, strPtr("ml")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	outcome, err := h.pantry.Decrement(ctx, nil, userID, "Milk", 200, strPtr("g"))
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if outcome != LedgerSkippedIncommensurable {
		t.Fatalf("outcome = %q, want %q", outcome, LedgerSkippedIncommensurable)
	}

	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "milk")
	if item.Quantity != 1000 {
		t.Fatalf("quantity = %v, want unchanged 1000", item.Quantity)
	}
}

func TestPantryNilUnitIsWildcard(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	if _, err := h.pantry.Upsert(ctx, "Sugar", 500, strPtr("g")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Delta with no unit matches any stored unit.
	outcome, err := h.pantry.Decrement(ctx, nil, userID, "Sugar", 100, nil)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if outcome != LedgerApplied {
		t.Fatalf("outcome = %q, want %q", outcome, LedgerApplied)
	}
	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "sugar")
	if item.Quantity != 400 {
		t.Fatalf("quantity = %v, want 400", item.Quantity)
	}
}

func TestPantryQuantitiesRoundToThreeDecimals(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	if _, err := h.pantry.Upsert(ctx, "Flour", 1, strPtr("kg")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := h.pantry.Decrement(ctx, nil, userID, "Flour", 0.3333333, strPtr("kg")); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "flour")
	if !almostEqual(item.Quantity, 0.667) {
		t.Fatalf("quantity = %v, want 0.667", item.Quantity)
	}
}

func TestPantryUpsertMatchesCaseInsensitively(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	if _, err := h.pantry.Upsert(ctx, "Olive Oil", 250, strPtr("ml")); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := h.pantry.Upsert(ctx, "olive oil", 400, strPtr("ml")); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	items, err := h.pantryRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1 (same normalized name)", len(items))
	}
	if items[0].Quantity != 400 {
		t.Fatalf("quantity = %v, want 400 (set, not added)", items[0].Quantity)
	}
	if items[0].Name != "Olive Oil" {
		t.Fatalf("name = %q, want original casing preserved", items[0].Name)
	}
}

func TestIncrementBackfillsUnitOnUnitlessRow(t *testing.T) {
	h := newHarness(t)
	ctx, userID := h.userCtx(t)

	if _, err := h.pantry.Upsert(ctx, "Flour", 100, nil); err != nil {
		t.Fatalf("seed pantry: %v", err)
	}

	outcome, err := h.pantry.Increment(ctx, nil, userID, "Flour", 50, strPtr("g"))
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if outcome != LedgerApplied {
		t.Fatalf("outcome = %q, want applied", outcome)
	}
	item, _ := h.pantryRepo.GetByUserAndName(ctx, nil, userID, "flour")
	if item.Unit == nil || *item.Unit != "g" {
		t.Fatalf("unit = %v, want backfilled g", item.Unit)
	}
	if item.Quantity != 150 {
		t.Fatalf("quantity = %v, want 150", item.Quantity)
	}

	// Once the unit is recorded the row stops matching everything.
	outcome, err = h.pantry.Increment(ctx, nil, userID, "Flour", 25, strPtr("ml"))
	if err != nil {
		t.Fatalf("second increment: %v", err)
	}
	if outcome != LedgerSkippedIncommensurable {
		t.Fatalf("outcome = %q, want skipped_incommensurable", outcome)
	}
	item, _ = h.pantryRepo.GetByUserAndName(ctx, nil, userID, "flour")
	if item.Quantity != 150 {
		t.Fatalf("quantity = %v, want unchanged 150", item.Quantity)
	}
}
