package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/normalization"
	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

// RecipeLineInput carries absolute macros for the line's quantity, the way
// recipes are authored; per-unit catalog values are derived from it.
type RecipeLineInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     *string `json:"unit,omitempty"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type RecipeInput struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Servings    int               `json:"servings" binding:"required,gt=0"`
	Ingredients []RecipeLineInput `json:"ingredients"`
}

// MacroTotals is the derived sum of a recipe's lines.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type RecipeService interface {
	Create(ctx context.Context, input RecipeInput) (*types.Recipe, error)
	Update(ctx context.Context, recipeID uuid.UUID, input RecipeInput) (*types.Recipe, error)
	Duplicate(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error)
	Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error)
	List(ctx context.Context) ([]*types.Recipe, error)
	Delete(ctx context.Context, recipeID uuid.UUID) error
}

type recipeService struct {
	db                *gorm.DB
	log               *logger.Logger
	recipeRepo        repos.RecipeRepo
	ingredientService IngredientService
}

func NewRecipeService(db *gorm.DB, baseLog *logger.Logger, recipeRepo repos.RecipeRepo, ingredientService IngredientService) RecipeService {
	return &recipeService{
		db:                db,
		log:               baseLog.With("service", "RecipeService"),
		recipeRepo:        recipeRepo,
		ingredientService: ingredientService,
	}
}

// ComputeTotals sums the lines' absolute macro fields. The line values are
// authoritative as entered; per-unit ingredient facts are never consulted
// here.
func ComputeTotals(lines []RecipeLineInput) MacroTotals {
	var totals MacroTotals
	for _, line := range lines {
		totals.Calories += line.Calories
		totals.Protein += line.Protein
		totals.Carbs += line.Carbs
		totals.Fat += line.Fat
	}
	return totals
}

func validateRecipeInput(input RecipeInput) error {
	v := pkgerrors.NewValidationError()
	if strings.TrimSpace(input.Name) == "" {
		v.Add("name", "must not be empty")
	}
	if input.Servings <= 0 {
		v.Add("servings", "must be positive")
	}
	for i, line := range input.Ingredients {
		if strings.TrimSpace(line.Name) == "" {
			v.Add(fmt.Sprintf("ingredients[%d].name", i), "must not be empty")
		}
		if line.Quantity <= 0 {
			v.Add(fmt.Sprintf("ingredients[%d].quantity", i), "must be positive")
		}
	}
	return v.ErrOrNil()
}

func (rs *recipeService) Create(ctx context.Context, input RecipeInput) (*types.Recipe, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	var out *types.Recipe
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := &types.Recipe{
			ID:          uuid.New(),
			UserID:      rd.UserID,
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Servings:    input.Servings,
		}
		if _, err := rs.recipeRepo.Create(ctx, tx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := rs.replaceLines(ctx, tx, recipe, input.Ingredients); err != nil {
			return err
		}
		out = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rs.recipeRepo.GetByIDWithLines(ctx, nil, out.ID)
}

func (rs *recipeService) Update(ctx context.Context, recipeID uuid.UUID, input RecipeInput) (*types.Recipe, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}

	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := rs.recipeRepo.GetByID(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		if recipe == nil || recipe.UserID != rd.UserID {
			return fmt.Errorf("recipe %s: %w", recipeID, pkgerrors.ErrNotFound)
		}
		recipe.Name = strings.TrimSpace(input.Name)
		recipe.Description = input.Description
		recipe.Servings = input.Servings
		return rs.replaceLines(ctx, tx, recipe, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return rs.recipeRepo.GetByIDWithLines(ctx, nil, recipeID)
}

// replaceLines is the atomic line-replacement path: delete existing lines,
// upsert the ingredient catalog per line, insert the new lines in order and
// persist recomputed totals on the recipe row. A reader never observes a
// recipe whose totals disagree with its lines.
func (rs *recipeService) replaceLines(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, lines []RecipeLineInput) error {
	if err := rs.recipeRepo.DeleteLinesByRecipeID(ctx, tx, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}

	newLines := make([]*types.RecipeIngredient, 0, len(lines))
	for i, line := range lines {
		ingredient, err := rs.ingredientService.UpsertFromRecipeLine(
			ctx, tx,
			line.Name, line.Quantity, line.Unit,
			line.Calories, line.Protein, line.Carbs, line.Fat,
		)
		if err != nil {
			return err
		}
		unit := normalization.NormalizeUnit(line.Unit)
		if unit == nil {
			unit = ingredient.Unit
		}
		newLines = append(newLines, &types.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipe.ID,
			IngredientID: ingredient.ID,
			Name:         ingredient.Name,
			Quantity:     line.Quantity,
			Unit:         unit,
			Calories:     line.Calories,
			Protein:      line.Protein,
			Carbs:        line.Carbs,
			Fat:          line.Fat,
			Ordering:     i,
		})
	}
	if err := rs.recipeRepo.CreateLines(ctx, tx, newLines); err != nil {
		return fmt.Errorf("insert recipe lines: %w", err)
	}

	totals := ComputeTotals(lines)
	recipe.TotalCalories = totals.Calories
	recipe.TotalProtein = totals.Protein
	recipe.TotalCarbs = totals.Carbs
	recipe.TotalFat = totals.Fat
	if err := rs.recipeRepo.Update(ctx, tx, recipe); err != nil {
		return fmt.Errorf("persist recipe totals: %w", err)
	}
	return nil
}

// Duplicate deep-copies a recipe and its lines verbatim. Totals are copied,
// not recomputed: the lines are copied unchanged, so the invariant holds by
// construction.
func (rs *recipeService) Duplicate(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}

	var copyID uuid.UUID
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		original, err := rs.recipeRepo.GetByIDWithLines(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		if original == nil || original.UserID != rd.UserID {
			return fmt.Errorf("recipe %s: %w", recipeID, pkgerrors.ErrNotFound)
		}

		duplicate := &types.Recipe{
			ID:            uuid.New(),
			UserID:        rd.UserID,
			Name:          original.Name + " (copy)",
			Description:   original.Description,
			Servings:      original.Servings,
			TotalCalories: original.TotalCalories,
			TotalProtein:  original.TotalProtein,
			TotalCarbs:    original.TotalCarbs,
			TotalFat:      original.TotalFat,
		}
		if _, err := rs.recipeRepo.Create(ctx, tx, duplicate); err != nil {
			return fmt.Errorf("create recipe copy: %w", err)
		}

		copiedLines := make([]*types.RecipeIngredient, 0, len(original.Lines))
		for _, line := range original.Lines {
			copiedLines = append(copiedLines, &types.RecipeIngredient{
				ID:           uuid.New(),
				RecipeID:     duplicate.ID,
				IngredientID: line.IngredientID,
				Name:         line.Name,
				Quantity:     line.Quantity,
				Unit:         line.Unit,
				Calories:     line.Calories,
				Protein:      line.Protein,
				Carbs:        line.Carbs,
				Fat:          line.Fat,
				Ordering:     line.Ordering,
			})
		}
		if err := rs.recipeRepo.CreateLines(ctx, tx, copiedLines); err != nil {
			return fmt.Errorf("copy recipe lines: %w", err)
		}
		copyID = duplicate.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rs.recipeRepo.GetByIDWithLines(ctx, nil, copyID)
}

func (rs *recipeService) Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	recipe, err := rs.recipeRepo.GetByIDWithLines(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil || recipe.UserID != rd.UserID {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, pkgerrors.ErrNotFound)
	}
	return recipe, nil
}

func (rs *recipeService) List(ctx context.Context) ([]*types.Recipe, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	return rs.recipeRepo.ListByUserID(ctx, nil, rd.UserID)
}

func (rs *recipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := rs.recipeRepo.GetByID(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		if recipe == nil || recipe.UserID != rd.UserID {
			return fmt.Errorf("recipe %s: %w", recipeID, pkgerrors.ErrNotFound)
		}
		if err := rs.recipeRepo.DeleteLinesByRecipeID(ctx, tx, recipeID); err != nil {
			return err
		}
		return rs.recipeRepo.Delete(ctx, tx, recipeID)
	})
}
