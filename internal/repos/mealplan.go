package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type MealPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plan *types.MealPlan) (*types.MealPlan, error)
	GetByUserAndWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.MealPlan, error)
	GetSlotsInRange(ctx context.Context, tx *gorm.DB, mealPlanID uuid.UUID, from, to time.Time) ([]*types.MealSlot, error)
	CreateSlots(ctx context.Context, tx *gorm.DB, slots []*types.MealSlot) error
	DeleteSlotsByPlanID(ctx context.Context, tx *gorm.DB, mealPlanID uuid.UUID) error
}

type mealPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealPlanRepo(db *gorm.DB, baseLog *logger.Logger) MealPlanRepo {
	return &mealPlanRepo{db: db, log: baseLog.With("repo", "MealPlanRepo")}
}

func (mpr *mealPlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.MealPlan) (*types.MealPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = mpr.db
	}
	if err := transaction.WithContext(ctx).Omit("Slots").Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (mpr *mealPlanRepo) GetByUserAndWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStart time.Time) (*types.MealPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = mpr.db
	}
	var result types.MealPlan
	err := transaction.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, meal_type ASC")
		}).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (mpr *mealPlanRepo) GetSlotsInRange(ctx context.Context, tx *gorm.DB, mealPlanID uuid.UUID, from, to time.Time) ([]*types.MealSlot, error) {
	transaction := tx
	if transaction == nil {
		transaction = mpr.db
	}
	var results []*types.MealSlot
	if err := transaction.WithContext(ctx).
		Where("meal_plan_id = ? AND date >= ? AND date < ?", mealPlanID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mpr *mealPlanRepo) CreateSlots(ctx context.Context, tx *gorm.DB, slots []*types.MealSlot) error {
	transaction := tx
	if transaction == nil {
		transaction = mpr.db
	}
	if len(slots) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&slots).Error
}

func (mpr *mealPlanRepo) DeleteSlotsByPlanID(ctx context.Context, tx *gorm.DB, mealPlanID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mpr.db
	}
	return transaction.WithContext(ctx).
		Where("meal_plan_id = ?", mealPlanID).
		Delete(&types.MealSlot{}).Error
}
