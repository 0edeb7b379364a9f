package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type WorkoutRepo interface {
	Create(ctx context.Context, tx *gorm.DB, workout *types.Workout) (*types.Workout, error)
	Update(ctx context.Context, tx *gorm.DB, workout *types.Workout) error
	GetByID(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) (*types.Workout, error)
	ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error)
	Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error
}

type workoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkoutRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutRepo {
	return &workoutRepo{db: db, log: baseLog.With("repo", "WorkoutRepo")}
}

func (wr *workoutRepo) Create(ctx context.Context, tx *gorm.DB, workout *types.Workout) (*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if err := transaction.WithContext(ctx).Create(workout).Error; err != nil {
		return nil, err
	}
	return workout, nil
}

func (wr *workoutRepo) Update(ctx context.Context, tx *gorm.DB, workout *types.Workout) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).Save(workout).Error
}

func (wr *workoutRepo) GetByID(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) (*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.Workout
	err := transaction.WithContext(ctx).
		Where("id = ?", workoutID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *workoutRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.Workout
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workoutRepo) Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", workoutID).
		Delete(&types.Workout{}).Error
}
