package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type PlannerEventInput struct {
	Title    string         `json:"title" binding:"required"`
	StartAt  time.Time      `json:"start_at" binding:"required"`
	EndAt    time.Time      `json:"end_at" binding:"required"`
	AllDay   bool           `json:"all_day"`
	Location string         `json:"location"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`
	Notes    string         `json:"notes"`
}

type PlannerService interface {
	Create(ctx context.Context, input PlannerEventInput) (*types.PlannerEvent, error)
	Update(ctx context.Context, eventID uuid.UUID, input PlannerEventInput) (*types.PlannerEvent, error)
	ListRange(ctx context.Context, from, to string) ([]*types.PlannerEvent, error)
	Delete(ctx context.Context, eventID uuid.UUID) error
}

type plannerService struct {
	db               *gorm.DB
	log              *logger.Logger
	plannerEventRepo repos.PlannerEventRepo
}

func NewPlannerService(db *gorm.DB, baseLog *logger.Logger, plannerEventRepo repos.PlannerEventRepo) PlannerService {
	return &plannerService{
		db:               db,
		log:              baseLog.With("service", "PlannerService"),
		plannerEventRepo: plannerEventRepo,
	}
}

func validatePlannerEventInput(input PlannerEventInput) error {
	v := pkgerrors.NewValidationError()
	if strings.TrimSpace(input.Title) == "" {
		v.Add("title", "must not be empty")
	}
	if input.StartAt.IsZero() {
		v.Add("start_at", "must be set")
	}
	if input.EndAt.IsZero() {
		v.Add("end_at", "must be set")
	}
	if !input.StartAt.IsZero() && !input.EndAt.IsZero() && input.EndAt.Before(input.StartAt) {
		v.Add("end_at", "must not be before start_at")
	}
	return v.ErrOrNil()
}

func (pls *plannerService) Create(ctx context.Context, input PlannerEventInput) (*types.PlannerEvent, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validatePlannerEventInput(input); err != nil {
		return nil, err
	}

	event := &types.PlannerEvent{
		ID:       uuid.New(),
		UserID:   rd.UserID,
		Title:    strings.TrimSpace(input.Title),
		StartAt:  input.StartAt,
		EndAt:    input.EndAt,
		AllDay:   input.AllDay,
		Location: input.Location,
		Metadata: input.Metadata,
		Notes:    input.Notes,
	}
	if _, err := pls.plannerEventRepo.Create(ctx, nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (pls *plannerService) Update(ctx context.Context, eventID uuid.UUID, input PlannerEventInput) (*types.PlannerEvent, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validatePlannerEventInput(input); err != nil {
		return nil, err
	}

	event, err := pls.plannerEventRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.UserID != rd.UserID {
		return nil, fmt.Errorf("planner event %s: %w", eventID, pkgerrors.ErrNotFound)
	}
	event.Title = strings.TrimSpace(input.Title)
	event.StartAt = input.StartAt
	event.EndAt = input.EndAt
	event.AllDay = input.AllDay
	event.Location = input.Location
	event.Metadata = input.Metadata
	event.Notes = input.Notes
	if err := pls.plannerEventRepo.Update(ctx, nil, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (pls *plannerService) ListRange(ctx context.Context, from, to string) ([]*types.PlannerEvent, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return pls.plannerEventRepo.ListByUserAndRange(ctx, nil, rd.UserID, start, end)
}

func (pls *plannerService) Delete(ctx context.Context, eventID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	event, err := pls.plannerEventRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		return err
	}
	if event == nil || event.UserID != rd.UserID {
		return fmt.Errorf("planner event %s: %w", eventID, pkgerrors.ErrNotFound)
	}
	return pls.plannerEventRepo.Delete(ctx, nil, eventID)
}
