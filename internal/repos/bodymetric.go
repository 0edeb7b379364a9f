package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type BodyMetricRepo interface {
	Create(ctx context.Context, tx *gorm.DB, metric *types.BodyMetric) (*types.BodyMetric, error)
	Update(ctx context.Context, tx *gorm.DB, metric *types.BodyMetric) error
	GetByID(ctx context.Context, tx *gorm.DB, metricID uuid.UUID) (*types.BodyMetric, error)
	GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.BodyMetric, error)
	ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.BodyMetric, error)
	GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.BodyMetric, error)
	Delete(ctx context.Context, tx *gorm.DB, metricID uuid.UUID) error
}

type bodyMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBodyMetricRepo(db *gorm.DB, baseLog *logger.Logger) BodyMetricRepo {
	return &bodyMetricRepo{db: db, log: baseLog.With("repo", "BodyMetricRepo")}
}

func (bmr *bodyMetricRepo) Create(ctx context.Context, tx *gorm.DB, metric *types.BodyMetric) (*types.BodyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = bmr.db
	}
	if err := transaction.WithContext(ctx).Create(metric).Error; err != nil {
		return nil, err
	}
	return metric, nil
}

func (bmr *bodyMetricRepo) Update(ctx context.Context, tx *gorm.DB, metric *types.BodyMetric) error {
	transaction := tx
	if transaction == nil {
		transaction = bmr.db
	}
	return transaction.WithContext(ctx).Save(metric).Error
}

func (bmr *bodyMetricRepo) GetByID(ctx context.Context, tx *gorm.DB, metricID uuid.UUID) (*types.BodyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = bmr.db
	}
	var result types.BodyMetric
	err := transaction.WithContext(ctx).
		Where("id = ?", metricID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (bmr *bodyMetricRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.BodyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = bmr.db
	}
	var result types.BodyMetric
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (bmr *bodyMetricRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.BodyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = bmr.db
	}
	var results []*types.BodyMetric
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (bmr *bodyMetricRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.BodyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = bmr.db
	}
	var result types.BodyMetric
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (bmr *bodyMetricRepo) Delete(ctx context.Context, tx *gorm.DB, metricID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = bmr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", metricID).
		Delete(&types.BodyMetric{}).Error
}
