package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

// DailyLogInput either references a recipe (macros derived, pantry
// adjusted) or carries authored macros directly (pantry untouched).
type DailyLogInput struct {
	Date     string     `json:"date" binding:"required"`
	MealType string     `json:"meal_type"`
	RecipeID *uuid.UUID `json:"recipe_id,omitempty"`
	Servings float64    `json:"servings"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein"`
	Carbs    float64    `json:"carbs"`
	Fat      float64    `json:"fat"`
	Notes    string     `json:"notes"`
}

type DailyLogService interface {
	Create(ctx context.Context, input DailyLogInput) (*types.DailyLog, error)
	// Update reverses the old log's pantry effect and applies the new one
	// inside a single transaction, so a failure partway leaves the ledger
	// exactly as it was.
	Update(ctx context.Context, logID uuid.UUID, input DailyLogInput) (*types.DailyLog, error)
	Delete(ctx context.Context, logID uuid.UUID) error
	ListRange(ctx context.Context, from, to string) ([]*types.DailyLog, error)
}

type dailyLogService struct {
	db            *gorm.DB
	log           *logger.Logger
	dailyLogRepo  repos.DailyLogRepo
	recipeRepo    repos.RecipeRepo
	pantryService PantryService
}

func NewDailyLogService(db *gorm.DB, baseLog *logger.Logger, dailyLogRepo repos.DailyLogRepo, recipeRepo repos.RecipeRepo, pantryService PantryService) DailyLogService {
	return &dailyLogService{
		db:            db,
		log:           baseLog.With("service", "DailyLogService"),
		dailyLogRepo:  dailyLogRepo,
		recipeRepo:    recipeRepo,
		pantryService: pantryService,
	}
}

func validateDailyLogInput(input DailyLogInput) (time.Time, error) {
	v := pkgerrors.NewValidationError()
	date, err := ParseDate(input.Date)
	if err != nil {
		v.Add("date", "must be a date in YYYY-MM-DD form")
	}
	if input.MealType != "" {
		if _, ok := validMealTypes[input.MealType]; !ok {
			v.Add("meal_type", "must be one of breakfast, lunch, dinner, snack")
		}
	}
	if input.RecipeID != nil && input.Servings <= 0 {
		v.Add("servings", "must be positive when a recipe is logged")
	}
	return date, v.ErrOrNil()
}

// scaleFor maps logged servings to the fraction of the whole recipe
// consumed. Recipe.Servings is validated positive on write, but an old row
// could carry zero; treat that as scale 1 rather than dividing by it.
func scaleFor(recipe *types.Recipe, servings float64) float64 {
	if recipe.Servings <= 0 {
		return 1
	}
	return servings / float64(recipe.Servings)
}

// applyRecipe fills the log's derived macro fields and consumes pantry
// stock for each recipe line, scaled to the logged servings.
func (dls *dailyLogService) applyRecipe(ctx context.Context, tx *gorm.DB, userID uuid.UUID, log *types.DailyLog, recipe *types.Recipe) error {
	scale := scaleFor(recipe, log.Servings)
	log.Calories = roundCalories(recipe.TotalCalories * scale)
	log.Protein = round2(recipe.TotalProtein * scale)
	log.Carbs = round2(recipe.TotalCarbs * scale)
	log.Fat = round2(recipe.TotalFat * scale)

	for _, line := range recipe.Lines {
		if _, err := dls.pantryService.Decrement(ctx, tx, userID, line.Name, line.Quantity*scale, line.Unit); err != nil {
			return fmt.Errorf("consume %q: %w", line.Name, err)
		}
	}
	return nil
}

// reverseRecipeEffect puts back what an earlier log consumed. The recipe's
// CURRENT lines are used; if the recipe changed since the log was written
// the reversal is best-effort against today's definition.
func (dls *dailyLogService) reverseRecipeEffect(ctx context.Context, tx *gorm.DB, userID uuid.UUID, log *types.DailyLog) error {
	if log.RecipeID == nil {
		return nil
	}
	recipe, err := dls.recipeRepo.GetByIDWithLines(ctx, tx, *log.RecipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		// Recipe deleted since logging; nothing to restore.
		return nil
	}
	scale := scaleFor(recipe, log.Servings)
	for _, line := range recipe.Lines {
		if _, err := dls.pantryService.Increment(ctx, tx, userID, line.Name, line.Quantity*scale, line.Unit); err != nil {
			return fmt.Errorf("restore %q: %w", line.Name, err)
		}
	}
	return nil
}

func (dls *dailyLogService) Create(ctx context.Context, input DailyLogInput) (*types.DailyLog, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	date, err := validateDailyLogInput(input)
	if err != nil {
		return nil, err
	}

	var out *types.DailyLog
	err = dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		log := &types.DailyLog{
			ID:       uuid.New(),
			UserID:   rd.UserID,
			Date:     date,
			MealType: input.MealType,
			RecipeID: input.RecipeID,
			Servings: input.Servings,
			Notes:    input.Notes,
		}
		if input.RecipeID != nil {
			recipe, err := dls.recipeRepo.GetByIDWithLines(ctx, tx, *input.RecipeID)
			if err != nil {
				return err
			}
			if recipe == nil || recipe.UserID != rd.UserID {
				return fmt.Errorf("recipe %s: %w", *input.RecipeID, pkgerrors.ErrNotFound)
			}
			if err := dls.applyRecipe(ctx, tx, rd.UserID, log, recipe); err != nil {
				return err
			}
		} else {
			if log.Servings <= 0 {
				log.Servings = 1
			}
			log.Calories = roundCalories(input.Calories)
			log.Protein = round2(input.Protein)
			log.Carbs = round2(input.Carbs)
			log.Fat = round2(input.Fat)
		}
		if _, err := dls.dailyLogRepo.Create(ctx, tx, log); err != nil {
			return fmt.Errorf("create daily log: %w", err)
		}
		out = log
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (dls *dailyLogService) Update(ctx context.Context, logID uuid.UUID, input DailyLogInput) (*types.DailyLog, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	date, err := validateDailyLogInput(input)
	if err != nil {
		return nil, err
	}

	var out *types.DailyLog
	err = dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := dls.dailyLogRepo.GetByID(ctx, tx, logID)
		if err != nil {
			return err
		}
		if existing == nil || existing.UserID != rd.UserID {
			return fmt.Errorf("daily log %s: %w", logID, pkgerrors.ErrNotFound)
		}

		if err := dls.reverseRecipeEffect(ctx, tx, rd.UserID, existing); err != nil {
			return err
		}

		existing.Date = date
		existing.MealType = input.MealType
		existing.RecipeID = input.RecipeID
		existing.Servings = input.Servings
		existing.Notes = input.Notes
		if input.RecipeID != nil {
			recipe, err := dls.recipeRepo.GetByIDWithLines(ctx, tx, *input.RecipeID)
			if err != nil {
				return err
			}
			if recipe == nil || recipe.UserID != rd.UserID {
				return fmt.Errorf("recipe %s: %w", *input.RecipeID, pkgerrors.ErrNotFound)
			}
			if err := dls.applyRecipe(ctx, tx, rd.UserID, existing, recipe); err != nil {
				return err
			}
		} else {
			if existing.Servings <= 0 {
				existing.Servings = 1
			}
			existing.Calories = roundCalories(input.Calories)
			existing.Protein = round2(input.Protein)
			existing.Carbs = round2(input.Carbs)
			existing.Fat = round2(input.Fat)
		}
		if err := dls.dailyLogRepo.Update(ctx, tx, existing); err != nil {
			return fmt.Errorf("update daily log: %w", err)
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (dls *dailyLogService) Delete(ctx context.Context, logID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	return dls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := dls.dailyLogRepo.GetByID(ctx, tx, logID)
		if err != nil {
			return err
		}
		if existing == nil || existing.UserID != rd.UserID {
			return fmt.Errorf("daily log %s: %w", logID, pkgerrors.ErrNotFound)
		}
		if err := dls.reverseRecipeEffect(ctx, tx, rd.UserID, existing); err != nil {
			return err
		}
		return dls.dailyLogRepo.Delete(ctx, tx, logID)
	})
}

func (dls *dailyLogService) ListRange(ctx context.Context, from, to string) ([]*types.DailyLog, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return dls.dailyLogRepo.ListByUserAndRange(ctx, nil, rd.UserID, start, end)
}
