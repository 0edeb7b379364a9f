package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error)
	Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error
	GetByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error)
	GetByIDWithLines(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Recipe, error)
	Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error

	GetLinesByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.RecipeIngredient, error)
	GetLinesByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeIngredient, error)
	CreateLines(ctx context.Context, tx *gorm.DB, lines []*types.RecipeIngredient) error
	DeleteLinesByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (rr *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Omit("Lines").Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (rr *recipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Omit("Lines").Save(recipe).Error
}

func (rr *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Recipe
	err := transaction.WithContext(ctx).
		Where("id = ?", recipeID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *recipeRepo) GetByIDWithLines(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Recipe
	err := transaction.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering ASC")
		}).
		Where("id = ?", recipeID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *recipeRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Recipe
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", recipeID).
		Delete(&types.Recipe{}).Error
}

func (rr *recipeRepo) GetLinesByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.RecipeIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RecipeIngredient
	if err := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("ordering ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) GetLinesByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RecipeIngredient
	if len(recipeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Order("ordering ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) CreateLines(ctx context.Context, tx *gorm.DB, lines []*types.RecipeIngredient) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(lines) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&lines).Error
}

func (rr *recipeRepo) DeleteLinesByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.RecipeIngredient{}).Error
}
