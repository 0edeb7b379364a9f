package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/normalization"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type IngredientService interface {
	// UpsertFromRecipeLine runs inside the caller's transaction: recipe
	// line replacement and catalog maintenance commit or roll back
	// together.
	UpsertFromRecipeLine(ctx context.Context, tx *gorm.DB, name string, quantity float64, unit *string, absCalories, absProtein, absCarbs, absFat float64) (*types.Ingredient, error)
	List(ctx context.Context) ([]*types.Ingredient, error)
	Search(ctx context.Context, query string) ([]*types.Ingredient, error)
}

type ingredientService struct {
	db             *gorm.DB
	log            *logger.Logger
	ingredientRepo repos.IngredientRepo
}

func NewIngredientService(db *gorm.DB, baseLog *logger.Logger, ingredientRepo repos.IngredientRepo) IngredientService {
	return &ingredientService{
		db:             db,
		log:            baseLog.With("service", "IngredientService"),
		ingredientRepo: ingredientRepo,
	}
}

// UpsertFromRecipeLine back-computes per-unit macros from a line's absolute
// macros and quantity. Recipes are authored with absolute per-line macros;
// the inversion to per-unit facts happens once, here, so any later recipe
// can reference the same ingredient at a different quantity.
func (is *ingredientService) UpsertFromRecipeLine(ctx context.Context, tx *gorm.DB, name string, quantity float64, unit *string, absCalories, absProtein, absCarbs, absFat float64) (*types.Ingredient, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, fmt.Errorf("ingredient name is empty")
	}
	normalizedUnit := normalization.NormalizeUnit(unit)

	existing, err := is.ingredientRepo.GetByNormalizedName(ctx, tx, trimmedName)
	if err != nil {
		return nil, fmt.Errorf("lookup ingredient %q: %w", trimmedName, err)
	}

	derivable := quantity != 0 && !math.IsInf(quantity, 0) && !math.IsNaN(quantity)

	if existing != nil {
		// Quantity 0 keeps the previous per-unit values rather than
		// dividing by zero.
		if derivable {
			existing.Calories = absCalories / quantity
			existing.Protein = absProtein / quantity
			existing.Carbs = absCarbs / quantity
			existing.Fat = absFat / quantity
		}
		if normalizedUnit != nil {
			existing.Unit = normalizedUnit
		}
		if err := is.ingredientRepo.Update(ctx, tx, existing); err != nil {
			return nil, fmt.Errorf("update ingredient %q: %w", trimmedName, err)
		}
		return existing, nil
	}

	created := &types.Ingredient{
		ID:   uuid.New(),
		Name: trimmedName,
		Unit: normalizedUnit,
	}
	if derivable {
		created.Calories = absCalories / quantity
		created.Protein = absProtein / quantity
		created.Carbs = absCarbs / quantity
		created.Fat = absFat / quantity
	}
	if _, err := is.ingredientRepo.Create(ctx, tx, created); err != nil {
		return nil, fmt.Errorf("create ingredient %q: %w", trimmedName, err)
	}
	return created, nil
}

func (is *ingredientService) List(ctx context.Context) ([]*types.Ingredient, error) {
	return is.ingredientRepo.List(ctx, nil)
}

func (is *ingredientService) Search(ctx context.Context, query string) ([]*types.Ingredient, error) {
	return is.ingredientRepo.Search(ctx, nil, query)
}
