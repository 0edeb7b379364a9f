package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type DailyLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, log *types.DailyLog) (*types.DailyLog, error)
	Update(ctx context.Context, tx *gorm.DB, log *types.DailyLog) error
	GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.DailyLog, error)
	ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyLog, error)
	Delete(ctx context.Context, tx *gorm.DB, logID uuid.UUID) error
}

type dailyLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyLogRepo(db *gorm.DB, baseLog *logger.Logger) DailyLogRepo {
	return &dailyLogRepo{db: db, log: baseLog.With("repo", "DailyLogRepo")}
}

func (dlr *dailyLogRepo) Create(ctx context.Context, tx *gorm.DB, log *types.DailyLog) (*types.DailyLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlr.db
	}
	if err := transaction.WithContext(ctx).Create(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

func (dlr *dailyLogRepo) Update(ctx context.Context, tx *gorm.DB, log *types.DailyLog) error {
	transaction := tx
	if transaction == nil {
		transaction = dlr.db
	}
	return transaction.WithContext(ctx).Save(log).Error
}

func (dlr *dailyLogRepo) GetByID(ctx context.Context, tx *gorm.DB, logID uuid.UUID) (*types.DailyLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlr.db
	}
	var result types.DailyLog
	err := transaction.WithContext(ctx).
		Where("id = ?", logID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dlr *dailyLogRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dlr.db
	}
	var results []*types.DailyLog
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dlr *dailyLogRepo) Delete(ctx context.Context, tx *gorm.DB, logID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dlr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", logID).
		Delete(&types.DailyLog{}).Error
}
