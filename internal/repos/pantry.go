package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/normalization"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type PantryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.PantryItem) (*types.PantryItem, error)
	Update(ctx context.Context, tx *gorm.DB, item *types.PantryItem) error
	GetByUserAndName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.PantryItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.PantryItem, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PantryItem, error)
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
}

type pantryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPantryRepo(db *gorm.DB, baseLog *logger.Logger) PantryRepo {
	return &pantryRepo{db: db, log: baseLog.With("repo", "PantryRepo")}
}

func (pr *pantryRepo) Create(ctx context.Context, tx *gorm.DB, item *types.PantryItem) (*types.PantryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (pr *pantryRepo) Update(ctx context.Context, tx *gorm.DB, item *types.PantryItem) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(item).Error
}

// GetByUserAndName matches case-insensitively via the shared normalized
// name key; the stored name keeps its original casing.
func (pr *pantryRepo) GetByUserAndName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.PantryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.PantryItem
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, normalization.NormalizeName(name)).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *pantryRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.PantryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.PantryItem
	err := transaction.WithContext(ctx).
		Where("id = ?", itemID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *pantryRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PantryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.PantryItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pantryRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.PantryItem{}).Error
}
