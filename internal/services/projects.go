package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

type ProjectInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type ProjectTaskInput struct {
	Title    string  `json:"title" binding:"required"`
	Done     bool    `json:"done"`
	DueAt    *string `json:"due_at,omitempty"`
	Ordering int     `json:"ordering"`
}

var validProjectStatuses = map[string]struct{}{
	types.ProjectStatusActive:   {},
	types.ProjectStatusPaused:   {},
	types.ProjectStatusDone:     {},
	types.ProjectStatusArchived: {},
}

type ProjectService interface {
	Create(ctx context.Context, input ProjectInput) (*types.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, input ProjectInput) (*types.Project, error)
	Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error)
	List(ctx context.Context) ([]*types.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error

	AddTask(ctx context.Context, projectID uuid.UUID, input ProjectTaskInput) (*types.ProjectTask, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, input ProjectTaskInput) (*types.ProjectTask, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
}

func NewProjectService(db *gorm.DB, baseLog *logger.Logger, projectRepo repos.ProjectRepo) ProjectService {
	return &projectService{
		db:          db,
		log:         baseLog.With("service", "ProjectService"),
		projectRepo: projectRepo,
	}
}

func validateProjectInput(input ProjectInput) error {
	v := pkgerrors.NewValidationError()
	if strings.TrimSpace(input.Name) == "" {
		v.Add("name", "must not be empty")
	}
	if input.Status != "" {
		if _, ok := validProjectStatuses[input.Status]; !ok {
			v.Add("status", "must be one of active, paused, done, archived")
		}
	}
	return v.ErrOrNil()
}

func (ps *projectService) Create(ctx context.Context, input ProjectInput) (*types.Project, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = types.ProjectStatusActive
	}

	project := &types.Project{
		ID:          uuid.New(),
		UserID:      rd.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      status,
	}
	if _, err := ps.projectRepo.Create(ctx, nil, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (ps *projectService) Update(ctx context.Context, projectID uuid.UUID, input ProjectInput) (*types.Project, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateProjectInput(input); err != nil {
		return nil, err
	}

	project, err := ps.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != rd.UserID {
		return nil, fmt.Errorf("project %s: %w", projectID, pkgerrors.ErrNotFound)
	}
	project.Name = strings.TrimSpace(input.Name)
	project.Description = input.Description
	if input.Status != "" {
		project.Status = input.Status
	}
	if err := ps.projectRepo.Update(ctx, nil, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (ps *projectService) Get(ctx context.Context, projectID uuid.UUID) (*types.Project, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	project, err := ps.projectRepo.GetByIDWithTasks(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != rd.UserID {
		return nil, fmt.Errorf("project %s: %w", projectID, pkgerrors.ErrNotFound)
	}
	return project, nil
}

func (ps *projectService) List(ctx context.Context) ([]*types.Project, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	return ps.projectRepo.ListByUserID(ctx, nil, rd.UserID)
}

func (ps *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	project, err := ps.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return err
	}
	if project == nil || project.UserID != rd.UserID {
		return fmt.Errorf("project %s: %w", projectID, pkgerrors.ErrNotFound)
	}
	return ps.projectRepo.Delete(ctx, nil, projectID)
}

func parseTaskInput(input ProjectTaskInput) (*time.Time, error) {
	v := pkgerrors.NewValidationError()
	if strings.TrimSpace(input.Title) == "" {
		v.Add("title", "must not be empty")
	}
	var dueAt *time.Time
	if input.DueAt != nil && *input.DueAt != "" {
		parsed, err := ParseDate(*input.DueAt)
		if err != nil {
			v.Add("due_at", "must be a date in YYYY-MM-DD form")
		} else {
			dueAt = &parsed
		}
	}
	return dueAt, v.ErrOrNil()
}

func (ps *projectService) AddTask(ctx context.Context, projectID uuid.UUID, input ProjectTaskInput) (*types.ProjectTask, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	dueAt, err := parseTaskInput(input)
	if err != nil {
		return nil, err
	}

	project, err := ps.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != rd.UserID {
		return nil, fmt.Errorf("project %s: %w", projectID, pkgerrors.ErrNotFound)
	}

	task := &types.ProjectTask{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     strings.TrimSpace(input.Title),
		Done:      input.Done,
		DueAt:     dueAt,
		Ordering:  input.Ordering,
	}
	if _, err := ps.projectRepo.CreateTask(ctx, nil, task); err != nil {
		return nil, err
	}
	return task, nil
}

// getOwnedTask resolves a task and verifies the parent project belongs to
// the acting user. Tasks have no user column of their own.
func (ps *projectService) getOwnedTask(ctx context.Context, userID, taskID uuid.UUID) (*types.ProjectTask, error) {
	task, err := ps.projectRepo.GetTaskByID(ctx, nil, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, pkgerrors.ErrNotFound)
	}
	project, err := ps.projectRepo.GetByID(ctx, nil, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, fmt.Errorf("task %s: %w", taskID, pkgerrors.ErrNotFound)
	}
	return task, nil
}

func (ps *projectService) UpdateTask(ctx context.Context, taskID uuid.UUID, input ProjectTaskInput) (*types.ProjectTask, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	dueAt, err := parseTaskInput(input)
	if err != nil {
		return nil, err
	}
	task, err := ps.getOwnedTask(ctx, rd.UserID, taskID)
	if err != nil {
		return nil, err
	}
	task.Title = strings.TrimSpace(input.Title)
	task.Done = input.Done
	task.DueAt = dueAt
	task.Ordering = input.Ordering
	if err := ps.projectRepo.UpdateTask(ctx, nil, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (ps *projectService) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	if _, err := ps.getOwnedTask(ctx, rd.UserID, taskID); err != nil {
		return err
	}
	return ps.projectRepo.DeleteTask(ctx, nil, taskID)
}
