package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/normalization"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type IngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ingredient *types.Ingredient) (*types.Ingredient, error)
	Update(ctx context.Context, tx *gorm.DB, ingredient *types.Ingredient) error
	GetByID(ctx context.Context, tx *gorm.DB, ingredientID uuid.UUID) (*types.Ingredient, error)
	GetByNormalizedName(ctx context.Context, tx *gorm.DB, name string) (*types.Ingredient, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Ingredient, error)
	Search(ctx context.Context, tx *gorm.DB, query string) ([]*types.Ingredient, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (ir *ingredientRepo) Create(ctx context.Context, tx *gorm.DB, ingredient *types.Ingredient) (*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (ir *ingredientRepo) Update(ctx context.Context, tx *gorm.DB, ingredient *types.Ingredient) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).Save(ingredient).Error
}

func (ir *ingredientRepo) GetByID(ctx context.Context, tx *gorm.DB, ingredientID uuid.UUID) (*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Ingredient
	err := transaction.WithContext(ctx).
		Where("id = ?", ingredientID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByNormalizedName is the case-insensitive pseudo-identity lookup: the
// incoming name is trimmed and lowercased, and matched against LOWER(name).
func (ir *ingredientRepo) GetByNormalizedName(ctx context.Context, tx *gorm.DB, name string) (*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Ingredient
	err := transaction.WithContext(ctx).
		Where("LOWER(name) = ?", normalization.NormalizeName(name)).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *ingredientRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Ingredient
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *ingredientRepo) Search(ctx context.Context, tx *gorm.DB, query string) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Ingredient
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	if err := transaction.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
