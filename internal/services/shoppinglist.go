package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/normalization"
	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

// requirementKey buckets weekly ingredient requirements. Same name with
// different units stays in separate buckets: merging would silently
// conflate incommensurable quantities.
type requirementKey struct {
	name string
	unit string
}

// requirement keeps the display name and original unit pointer alongside
// the aggregated quantity so generated items read naturally.
type requirement struct {
	displayName string
	unit        *string
	quantity    float64
}

type ManualItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     *string `json:"unit,omitempty"`
}

type ShoppingListService interface {
	List(ctx context.Context) ([]*types.ShoppingListItem, error)
	// Generate reconciles the week's aggregated requirements against
	// current pantry stock and fully replaces all AUTO items. Idempotent:
	// re-running with unchanged state produces the same set.
	Generate(ctx context.Context, weekStart string) ([]*types.ShoppingListItem, error)
	ToggleChecked(ctx context.Context, itemID uuid.UUID, checked bool) (*types.ShoppingListItem, error)
	AddManual(ctx context.Context, input ManualItemInput) (*types.ShoppingListItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

type shoppingListService struct {
	db               *gorm.DB
	log              *logger.Logger
	shoppingListRepo repos.ShoppingListRepo
	mealPlanRepo     repos.MealPlanRepo
	recipeRepo       repos.RecipeRepo
	pantryRepo       repos.PantryRepo
	pantryService    PantryService
}

func NewShoppingListService(
	db *gorm.DB,
	baseLog *logger.Logger,
	shoppingListRepo repos.ShoppingListRepo,
	mealPlanRepo repos.MealPlanRepo,
	recipeRepo repos.RecipeRepo,
	pantryRepo repos.PantryRepo,
	pantryService PantryService,
) ShoppingListService {
	return &shoppingListService{
		db:               db,
		log:              baseLog.With("service", "ShoppingListService"),
		shoppingListRepo: shoppingListRepo,
		mealPlanRepo:     mealPlanRepo,
		recipeRepo:       recipeRepo,
		pantryRepo:       pantryRepo,
		pantryService:    pantryService,
	}
}

func (sls *shoppingListService) List(ctx context.Context) ([]*types.ShoppingListItem, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	return sls.shoppingListRepo.ListByUserID(ctx, nil, rd.UserID)
}

// aggregateWeek sums required ingredient quantities across the week's meal
// slots, bucketed by (normalized name, normalized unit). Slots without a
// resolved recipe contribute nothing. Pure read, no persisted state.
func (sls *shoppingListService) aggregateWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (map[requirementKey]*requirement, error) {
	plan, err := sls.mealPlanRepo.GetByUserAndWeek(ctx, tx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	required := map[requirementKey]*requirement{}
	if plan == nil {
		return required, nil
	}

	weekEnd := weekStart.AddDate(0, 0, 7)
	slots, err := sls.mealPlanRepo.GetSlotsInRange(ctx, tx, plan.ID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	recipeIDSet := map[uuid.UUID]int{}
	recipeIDs := make([]uuid.UUID, 0, len(slots))
	for _, slot := range slots {
		if slot.RecipeID == nil {
			continue
		}
		recipeIDSet[*slot.RecipeID]++
		if recipeIDSet[*slot.RecipeID] == 1 {
			recipeIDs = append(recipeIDs, *slot.RecipeID)
		}
	}

	lines, err := sls.recipeRepo.GetLinesByRecipeIDs(ctx, tx, recipeIDs)
	if err != nil {
		return nil, err
	}
	linesByRecipe := map[uuid.UUID][]*types.RecipeIngredient{}
	for _, line := range lines {
		linesByRecipe[line.RecipeID] = append(linesByRecipe[line.RecipeID], line)
	}

	for _, slot := range slots {
		if slot.RecipeID == nil {
			continue
		}
		for _, line := range linesByRecipe[*slot.RecipeID] {
			key := requirementKey{
				name: normalization.NormalizeName(line.Name),
				unit: derefUnit(normalization.NormalizeUnit(line.Unit)),
			}
			if bucket, ok := required[key]; ok {
				bucket.quantity += line.Quantity
			} else {
				required[key] = &requirement{
					displayName: line.Name,
					unit:        normalization.NormalizeUnit(line.Unit),
					quantity:    line.Quantity,
				}
			}
		}
	}
	return required, nil
}

func (sls *shoppingListService) Generate(ctx context.Context, weekStart string) ([]*types.ShoppingListItem, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	week, err := ParseDate(weekStart)
	if err != nil {
		return nil, pkgerrors.NewValidationError().Add("week_start", "must be a date in YYYY-MM-DD form").ErrOrNil()
	}

	err = sls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		required, err := sls.aggregateWeek(ctx, tx, rd.UserID, week)
		if err != nil {
			return fmt.Errorf("aggregate week: %w", err)
		}

		pantryItems, err := sls.pantryRepo.ListByUserID(ctx, tx, rd.UserID)
		if err != nil {
			return err
		}
		for _, item := range pantryItems {
			for key, bucket := range required {
				if key.name != normalization.NormalizeName(item.Name) {
					continue
				}
				if !normalization.Commensurable(item.Unit, bucket.unit) {
					// Incommensurable pantry stock is ignored, not
					// subtracted: the required quantity stands.
					continue
				}
				bucket.quantity = clampNonNegative(bucket.quantity - item.Quantity)
			}
		}

		if err := sls.shoppingListRepo.DeleteAutoByUserID(ctx, tx, rd.UserID); err != nil {
			return fmt.Errorf("clear auto items: %w", err)
		}

		keys := make([]requirementKey, 0, len(required))
		for key := range required {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].name != keys[j].name {
				return keys[i].name < keys[j].name
			}
			return keys[i].unit < keys[j].unit
		})

		newItems := make([]*types.ShoppingListItem, 0, len(keys))
		for _, key := range keys {
			bucket := required[key]
			if bucket.quantity <= 0 {
				continue
			}
			newItems = append(newItems, &types.ShoppingListItem{
				ID:       uuid.New(),
				UserID:   rd.UserID,
				Name:     bucket.displayName,
				Quantity: round2(bucket.quantity),
				Unit:     bucket.unit,
				Source:   types.ShoppingSourceAuto,
			})
		}
		return sls.shoppingListRepo.CreateBatch(ctx, tx, newItems)
	})
	if err != nil {
		return nil, err
	}
	return sls.shoppingListRepo.ListByUserID(ctx, nil, rd.UserID)
}

// ToggleChecked hands a checked item's quantity off to the pantry.
// Unchecking does not reverse the earlier increment; that asymmetry is
// long-standing observed behavior.
func (sls *shoppingListService) ToggleChecked(ctx context.Context, itemID uuid.UUID, checked bool) (*types.ShoppingListItem, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}

	var out *types.ShoppingListItem
	err := sls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := sls.shoppingListRepo.GetByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.UserID != rd.UserID {
			return fmt.Errorf("shopping item %s: %w", itemID, pkgerrors.ErrNotFound)
		}

		becameChecked := checked && !item.Checked
		item.Checked = checked
		if err := sls.shoppingListRepo.Update(ctx, tx, item); err != nil {
			return err
		}
		if becameChecked {
			if _, err := sls.pantryService.Increment(ctx, tx, rd.UserID, item.Name, item.Quantity, item.Unit); err != nil {
				return fmt.Errorf("hand off to pantry: %w", err)
			}
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (sls *shoppingListService) AddManual(ctx context.Context, input ManualItemInput) (*types.ShoppingListItem, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	v := pkgerrors.NewValidationError()
	if strings.TrimSpace(input.Name) == "" {
		v.Add("name", "must not be empty")
	}
	if input.Quantity <= 0 {
		v.Add("quantity", "must be positive")
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	item := &types.ShoppingListItem{
		ID:       uuid.New(),
		UserID:   rd.UserID,
		Name:     strings.TrimSpace(input.Name),
		Quantity: round2(input.Quantity),
		Unit:     normalization.NormalizeUnit(input.Unit),
		Source:   types.ShoppingSourceManual,
	}
	if _, err := sls.shoppingListRepo.Create(ctx, nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (sls *shoppingListService) Delete(ctx context.Context, itemID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	item, err := sls.shoppingListRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != rd.UserID {
		return fmt.Errorf("shopping item %s: %w", itemID, pkgerrors.ErrNotFound)
	}
	return sls.shoppingListRepo.Delete(ctx, nil, itemID)
}
