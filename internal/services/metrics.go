package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type BodyMetricInput struct {
	Date       string   `json:"date" binding:"required"`
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
	Notes      string   `json:"notes"`
}

type BodyMetricService interface {
	// Upsert keys on (user, date): logging twice for the same day updates
	// the existing row.
	Upsert(ctx context.Context, input BodyMetricInput) (*types.BodyMetric, error)
	ListRange(ctx context.Context, from, to string) ([]*types.BodyMetric, error)
	Latest(ctx context.Context) (*types.BodyMetric, error)
	Delete(ctx context.Context, metricID uuid.UUID) error
}

type bodyMetricService struct {
	db             *gorm.DB
	log            *logger.Logger
	bodyMetricRepo repos.BodyMetricRepo
}

func NewBodyMetricService(db *gorm.DB, baseLog *logger.Logger, bodyMetricRepo repos.BodyMetricRepo) BodyMetricService {
	return &bodyMetricService{
		db:             db,
		log:            baseLog.With("service", "BodyMetricService"),
		bodyMetricRepo: bodyMetricRepo,
	}
}

func (bms *bodyMetricService) Upsert(ctx context.Context, input BodyMetricInput) (*types.BodyMetric, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	v := pkgerrors.NewValidationError()
	date, err := ParseDate(input.Date)
	if err != nil {
		v.Add("date", "must be a date in YYYY-MM-DD form")
	}
	if input.WeightKg != nil && *input.WeightKg <= 0 {
		v.Add("weight_kg", "must be positive")
	}
	if input.BodyFatPct != nil && (*input.BodyFatPct < 0 || *input.BodyFatPct > 100) {
		v.Add("body_fat_pct", "must be between 0 and 100")
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	var out *types.BodyMetric
	err = bms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := bms.bodyMetricRepo.GetByUserAndDate(ctx, tx, rd.UserID, date)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.WeightKg = input.WeightKg
			existing.BodyFatPct = input.BodyFatPct
			existing.Notes = input.Notes
			if err := bms.bodyMetricRepo.Update(ctx, tx, existing); err != nil {
				return err
			}
			out = existing
			return nil
		}
		created := &types.BodyMetric{
			ID:         uuid.New(),
			UserID:     rd.UserID,
			Date:       date,
			WeightKg:   input.WeightKg,
			BodyFatPct: input.BodyFatPct,
			Notes:      input.Notes,
		}
		if _, err := bms.bodyMetricRepo.Create(ctx, tx, created); err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (bms *bodyMetricService) ListRange(ctx context.Context, from, to string) ([]*types.BodyMetric, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return bms.bodyMetricRepo.ListByUserAndRange(ctx, nil, rd.UserID, start, end)
}

func (bms *bodyMetricService) Latest(ctx context.Context) (*types.BodyMetric, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	metric, err := bms.bodyMetricRepo.GetLatestByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}
	if metric == nil {
		return nil, fmt.Errorf("latest body metric: %w", pkgerrors.ErrNotFound)
	}
	return metric, nil
}

func (bms *bodyMetricService) Delete(ctx context.Context, metricID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	metric, err := bms.bodyMetricRepo.GetByID(ctx, nil, metricID)
	if err != nil {
		return err
	}
	if metric == nil || metric.UserID != rd.UserID {
		return fmt.Errorf("body metric %s: %w", metricID, pkgerrors.ErrNotFound)
	}
	return bms.bodyMetricRepo.Delete(ctx, nil, metricID)
}

// parseRange validates a from/to date pair and widens the end by one day so
// repo queries can use a half-open interval.
func parseRange(from, to string) (time.Time, time.Time, error) {
	v := pkgerrors.NewValidationError()
	start, err := ParseDate(from)
	if err != nil {
		v.Add("from", "must be a date in YYYY-MM-DD form")
	}
	end, err := ParseDate(to)
	if err != nil {
		v.Add("to", "must be a date in YYYY-MM-DD form")
	}
	if err := v.ErrOrNil(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end.AddDate(0, 0, 1), nil
}
