package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type PlannerEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.PlannerEvent) (*types.PlannerEvent, error)
	Update(ctx context.Context, tx *gorm.DB, event *types.PlannerEvent) error
	GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.PlannerEvent, error)
	ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.PlannerEvent, error)
	Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error
}

type plannerEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlannerEventRepo(db *gorm.DB, baseLog *logger.Logger) PlannerEventRepo {
	return &plannerEventRepo{db: db, log: baseLog.With("repo", "PlannerEventRepo")}
}

func (per *plannerEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.PlannerEvent) (*types.PlannerEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (per *plannerEventRepo) Update(ctx context.Context, tx *gorm.DB, event *types.PlannerEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}
	return transaction.WithContext(ctx).Save(event).Error
}

func (per *plannerEventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.PlannerEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}
	var result types.PlannerEvent
	err := transaction.WithContext(ctx).
		Where("id = ?", eventID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (per *plannerEventRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.PlannerEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}
	var results []*types.PlannerEvent
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND start_at >= ? AND start_at < ?", userID, from, to).
		Order("start_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (per *plannerEventRepo) Delete(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", eventID).
		Delete(&types.PlannerEvent{}).Error
}
