package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type WorkoutInput struct {
	Date        string                  `json:"date" binding:"required"`
	Name        string                  `json:"name" binding:"required"`
	DurationMin int                     `json:"duration_min"`
	Exercises   []types.WorkoutExercise `json:"exercises"`
	Notes       string                  `json:"notes"`
}

type WorkoutService interface {
	Create(ctx context.Context, input WorkoutInput) (*types.Workout, error)
	Update(ctx context.Context, workoutID uuid.UUID, input WorkoutInput) (*types.Workout, error)
	ListRange(ctx context.Context, from, to string) ([]*types.Workout, error)
	Delete(ctx context.Context, workoutID uuid.UUID) error
}

type workoutService struct {
	db          *gorm.DB
	log         *logger.Logger
	workoutRepo repos.WorkoutRepo
}

func NewWorkoutService(db *gorm.DB, baseLog *logger.Logger, workoutRepo repos.WorkoutRepo) WorkoutService {
	return &workoutService{
		db:          db,
		log:         baseLog.With("service", "WorkoutService"),
		workoutRepo: workoutRepo,
	}
}

func validateWorkoutInput(input WorkoutInput) error {
	v := pkgerrors.NewValidationError()
	if _, err := ParseDate(input.Date); err != nil {
		v.Add("date", "must be a date in YYYY-MM-DD form")
	}
	if strings.TrimSpace(input.Name) == "" {
		v.Add("name", "must not be empty")
	}
	if input.DurationMin < 0 {
		v.Add("duration_min", "must not be negative")
	}
	for i, ex := range input.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			v.Add(fmt.Sprintf("exercises[%d].name", i), "must not be empty")
		}
	}
	return v.ErrOrNil()
}

func marshalExercises(exercises []types.WorkoutExercise) ([]byte, error) {
	if exercises == nil {
		exercises = []types.WorkoutExercise{}
	}
	return json.Marshal(exercises)
}

func (ws *workoutService) Create(ctx context.Context, input WorkoutInput) (*types.Workout, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateWorkoutInput(input); err != nil {
		return nil, err
	}
	date, _ := ParseDate(input.Date)
	raw, err := marshalExercises(input.Exercises)
	if err != nil {
		return nil, fmt.Errorf("encode exercises: %w", err)
	}

	workout := &types.Workout{
		ID:          uuid.New(),
		UserID:      rd.UserID,
		Date:        date,
		Name:        strings.TrimSpace(input.Name),
		DurationMin: input.DurationMin,
		Exercises:   raw,
		Notes:       input.Notes,
	}
	if _, err := ws.workoutRepo.Create(ctx, nil, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (ws *workoutService) Update(ctx context.Context, workoutID uuid.UUID, input WorkoutInput) (*types.Workout, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateWorkoutInput(input); err != nil {
		return nil, err
	}
	date, _ := ParseDate(input.Date)
	raw, err := marshalExercises(input.Exercises)
	if err != nil {
		return nil, fmt.Errorf("encode exercises: %w", err)
	}

	workout, err := ws.workoutRepo.GetByID(ctx, nil, workoutID)
	if err != nil {
		return nil, err
	}
	if workout == nil || workout.UserID != rd.UserID {
		return nil, fmt.Errorf("workout %s: %w", workoutID, pkgerrors.ErrNotFound)
	}
	workout.Date = date
	workout.Name = strings.TrimSpace(input.Name)
	workout.DurationMin = input.DurationMin
	workout.Exercises = raw
	workout.Notes = input.Notes
	if err := ws.workoutRepo.Update(ctx, nil, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (ws *workoutService) ListRange(ctx context.Context, from, to string) ([]*types.Workout, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return ws.workoutRepo.ListByUserAndRange(ctx, nil, rd.UserID, start, end)
}

func (ws *workoutService) Delete(ctx context.Context, workoutID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	workout, err := ws.workoutRepo.GetByID(ctx, nil, workoutID)
	if err != nil {
		return err
	}
	if workout == nil || workout.UserID != rd.UserID {
		return fmt.Errorf("workout %s: %w", workoutID, pkgerrors.ErrNotFound)
	}
	return ws.workoutRepo.Delete(ctx, nil, workoutID)
}
