package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

// DashboardSummary is a read-only aggregation for the landing view.
type DashboardSummary struct {
	Date           string                `json:"date"`
	TodayMacros    MacroTotals           `json:"today_macros"`
	TodayLogs      []*types.DailyLog     `json:"today_logs"`
	LatestMetric   *types.BodyMetric     `json:"latest_metric,omitempty"`
	UpcomingEvents []*types.PlannerEvent `json:"upcoming_events"`
}

type DashboardService interface {
	Summary(ctx context.Context, date string) (*DashboardSummary, error)
}

type dashboardService struct {
	db               *gorm.DB
	log              *logger.Logger
	dailyLogRepo     repos.DailyLogRepo
	bodyMetricRepo   repos.BodyMetricRepo
	plannerEventRepo repos.PlannerEventRepo
}

func NewDashboardService(db *gorm.DB, baseLog *logger.Logger, dailyLogRepo repos.DailyLogRepo, bodyMetricRepo repos.BodyMetricRepo, plannerEventRepo repos.PlannerEventRepo) DashboardService {
	return &dashboardService{
		db:               db,
		log:              baseLog.With("service", "DashboardService"),
		dailyLogRepo:     dailyLogRepo,
		bodyMetricRepo:   bodyMetricRepo,
		plannerEventRepo: plannerEventRepo,
	}
}

func (ds *dashboardService) Summary(ctx context.Context, date string) (*DashboardSummary, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, pkgerrors.NewValidationError().Add("date", "must be a date in YYYY-MM-DD form").ErrOrNil()
	}

	logs, err := ds.dailyLogRepo.ListByUserAndRange(ctx, nil, rd.UserID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	var macros MacroTotals
	for _, log := range logs {
		macros.Calories += log.Calories
		macros.Protein += log.Protein
		macros.Carbs += log.Carbs
		macros.Fat += log.Fat
	}
	macros.Calories = roundCalories(macros.Calories)
	macros.Protein = round2(macros.Protein)
	macros.Carbs = round2(macros.Carbs)
	macros.Fat = round2(macros.Fat)

	metric, err := ds.bodyMetricRepo.GetLatestByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}

	events, err := ds.plannerEventRepo.ListByUserAndRange(ctx, nil, rd.UserID, day, day.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []*types.DailyLog{}
	}
	if events == nil {
		events = []*types.PlannerEvent{}
	}
	return &DashboardSummary{
		Date:           day.Format(time.DateOnly),
		TodayMacros:    macros,
		TodayLogs:      logs,
		LatestMetric:   metric,
		UpcomingEvents: events,
	}, nil
}
