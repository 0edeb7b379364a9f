package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type ShoppingListRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.ShoppingListItem) (*types.ShoppingListItem, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, items []*types.ShoppingListItem) error
	Update(ctx context.Context, tx *gorm.DB, item *types.ShoppingListItem) error
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.ShoppingListItem, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ShoppingListItem, error)
	DeleteAutoByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
}

type shoppingListRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShoppingListRepo(db *gorm.DB, baseLog *logger.Logger) ShoppingListRepo {
	return &shoppingListRepo{db: db, log: baseLog.With("repo", "ShoppingListRepo")}
}

func (slr *shoppingListRepo) Create(ctx context.Context, tx *gorm.DB, item *types.ShoppingListItem) (*types.ShoppingListItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (slr *shoppingListRepo) CreateBatch(ctx context.Context, tx *gorm.DB, items []*types.ShoppingListItem) error {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&items).Error
}

func (slr *shoppingListRepo) Update(ctx context.Context, tx *gorm.DB, item *types.ShoppingListItem) error {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	return transaction.WithContext(ctx).Save(item).Error
}

func (slr *shoppingListRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.ShoppingListItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	var result types.ShoppingListItem
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

func (slr *shoppingListRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ShoppingListItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	var results []*types.ShoppingListItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("source ASC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteAutoByUserID clears only reconciler-generated rows; MANUAL items
// survive regeneration.
func (slr *shoppingListRepo) DeleteAutoByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND source = ?", userID, types.ShoppingSourceAuto).
		Delete(&types.ShoppingListItem{}).Error
}

func (slr *shoppingListRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.ShoppingListItem{}).Error
}
