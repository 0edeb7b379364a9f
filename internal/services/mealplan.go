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

type MealSlotInput struct {
	Date     string     `json:"date" binding:"required"`
	MealType string     `json:"meal_type" binding:"required"`
	RecipeID *uuid.UUID `json:"recipe_id,omitempty"`
	Notes    string     `json:"notes"`
}

var validMealTypes = map[string]struct{}{
	types.MealTypeBreakfast: {},
	types.MealTypeLunch:     {},
	types.MealTypeDinner:    {},
	types.MealTypeSnack:     {},
}

const dateLayout = "2006-01-02"

// ParseDate parses the wire date format used by every module (plain
// calendar dates, no time component).
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

type MealPlanService interface {
	// ReplaceWeek is full-replace: all prior slots for the week are
	// deleted and the given set recreated.
	ReplaceWeek(ctx context.Context, weekStart string, slots []MealSlotInput) (*types.MealPlan, error)
	GetWeek(ctx context.Context, weekStart string) (*types.MealPlan, error)
}

type mealPlanService struct {
	db           *gorm.DB
	log          *logger.Logger
	mealPlanRepo repos.MealPlanRepo
	recipeRepo   repos.RecipeRepo
}

func NewMealPlanService(db *gorm.DB, baseLog *logger.Logger, mealPlanRepo repos.MealPlanRepo, recipeRepo repos.RecipeRepo) MealPlanService {
	return &mealPlanService{
		db:           db,
		log:          baseLog.With("service", "MealPlanService"),
		mealPlanRepo: mealPlanRepo,
		recipeRepo:   recipeRepo,
	}
}

func (mps *mealPlanService) ReplaceWeek(ctx context.Context, weekStart string, slots []MealSlotInput) (*types.MealPlan, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}

	v := pkgerrors.NewValidationError()
	week, err := ParseDate(weekStart)
	if err != nil {
		v.Add("week_start", "must be a date in YYYY-MM-DD form")
	}
	parsedDates := make([]time.Time, len(slots))
	for i, slot := range slots {
		date, dErr := ParseDate(slot.Date)
		if dErr != nil {
			v.Add(fmt.Sprintf("slots[%d].date", i), "must be a date in YYYY-MM-DD form")
			continue
		}
		parsedDates[i] = date
		if _, ok := validMealTypes[slot.MealType]; !ok {
			v.Add(fmt.Sprintf("slots[%d].meal_type", i), "must be one of breakfast, lunch, dinner, snack")
		}
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	err = mps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := mps.mealPlanRepo.GetByUserAndWeek(ctx, tx, rd.UserID, week)
		if err != nil {
			return err
		}
		if plan == nil {
			plan = &types.MealPlan{
				ID:        uuid.New(),
				UserID:    rd.UserID,
				WeekStart: week,
			}
			if _, err := mps.mealPlanRepo.Create(ctx, tx, plan); err != nil {
				return fmt.Errorf("create meal plan: %w", err)
			}
		}

		if err := mps.mealPlanRepo.DeleteSlotsByPlanID(ctx, tx, plan.ID); err != nil {
			return fmt.Errorf("delete prior slots: %w", err)
		}

		newSlots := make([]*types.MealSlot, 0, len(slots))
		for i, slot := range slots {
			if slot.RecipeID != nil {
				recipe, err := mps.recipeRepo.GetByID(ctx, tx, *slot.RecipeID)
				if err != nil {
					return err
				}
				if recipe == nil || recipe.UserID != rd.UserID {
					return fmt.Errorf("slot recipe %s: %w", *slot.RecipeID, pkgerrors.ErrNotFound)
				}
			}
			newSlots = append(newSlots, &types.MealSlot{
				ID:         uuid.New(),
				MealPlanID: plan.ID,
				Date:       parsedDates[i],
				MealType:   slot.MealType,
				RecipeID:   slot.RecipeID,
				Notes:      slot.Notes,
			})
		}
		return mps.mealPlanRepo.CreateSlots(ctx, tx, newSlots)
	})
	if err != nil {
		return nil, err
	}
	return mps.mealPlanRepo.GetByUserAndWeek(ctx, nil, rd.UserID, week)
}

func (mps *mealPlanService) GetWeek(ctx context.Context, weekStart string) (*types.MealPlan, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	week, err := ParseDate(weekStart)
	if err != nil {
		return nil, pkgerrors.NewValidationError().Add("week_start", "must be a date in YYYY-MM-DD form").ErrOrNil()
	}
	plan, err := mps.mealPlanRepo.GetByUserAndWeek(ctx, nil, rd.UserID, week)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("meal plan for week %s: %w", weekStart, pkgerrors.ErrNotFound)
	}
	return plan, nil
}
