package services

import (
	"context"
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

type TransactionInput struct {
	Date      string  `json:"date" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Direction string  `json:"direction" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	Notes     string  `json:"notes"`
}

// MonthlySummary aggregates one calendar month of transactions.
type MonthlySummary struct {
	Month        string               `json:"month"`
	TotalIncome  float64              `json:"total_income"`
	TotalExpense float64              `json:"total_expense"`
	Net          float64              `json:"net"`
	ByCategory   []*repos.CategorySum `json:"by_category"`
}

type TransactionService interface {
	Create(ctx context.Context, input TransactionInput) (*types.Transaction, error)
	Update(ctx context.Context, txnID uuid.UUID, input TransactionInput) (*types.Transaction, error)
	ListRange(ctx context.Context, from, to string) ([]*types.Transaction, error)
	// MonthlySummary takes a month in YYYY-MM form.
	MonthlySummary(ctx context.Context, month string) (*MonthlySummary, error)
	Delete(ctx context.Context, txnID uuid.UUID) error
}

type transactionService struct {
	db              *gorm.DB
	log             *logger.Logger
	transactionRepo repos.TransactionRepo
}

func NewTransactionService(db *gorm.DB, baseLog *logger.Logger, transactionRepo repos.TransactionRepo) TransactionService {
	return &transactionService{
		db:              db,
		log:             baseLog.With("service", "TransactionService"),
		transactionRepo: transactionRepo,
	}
}

func validateTransactionInput(input TransactionInput) error {
	v := pkgerrors.NewValidationError()
	if _, err := ParseDate(input.Date); err != nil {
		v.Add("date", "must be a date in YYYY-MM-DD form")
	}
	if input.Amount <= 0 {
		v.Add("amount", "must be positive")
	}
	if input.Direction != types.TransactionDirectionIncome && input.Direction != types.TransactionDirectionExpense {
		v.Add("direction", "must be income or expense")
	}
	if strings.TrimSpace(input.Category) == "" {
		v.Add("category", "must not be empty")
	}
	return v.ErrOrNil()
}

func (ts *transactionService) Create(ctx context.Context, input TransactionInput) (*types.Transaction, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}
	date, _ := ParseDate(input.Date)

	txn := &types.Transaction{
		ID:        uuid.New(),
		UserID:    rd.UserID,
		Date:      date,
		Amount:    round2(input.Amount),
		Direction: input.Direction,
		Category:  strings.TrimSpace(input.Category),
		Notes:     input.Notes,
	}
	if _, err := ts.transactionRepo.Create(ctx, nil, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (ts *transactionService) Update(ctx context.Context, txnID uuid.UUID, input TransactionInput) (*types.Transaction, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}
	date, _ := ParseDate(input.Date)

	txn, err := ts.transactionRepo.GetByID(ctx, nil, txnID)
	if err != nil {
		return nil, err
	}
	if txn == nil || txn.UserID != rd.UserID {
		return nil, fmt.Errorf("transaction %s: %w", txnID, pkgerrors.ErrNotFound)
	}
	txn.Date = date
	txn.Amount = round2(input.Amount)
	txn.Direction = input.Direction
	txn.Category = strings.TrimSpace(input.Category)
	txn.Notes = input.Notes
	if err := ts.transactionRepo.Update(ctx, nil, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (ts *transactionService) ListRange(ctx context.Context, from, to string) ([]*types.Transaction, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	return ts.transactionRepo.ListByUserAndRange(ctx, nil, rd.UserID, start, end)
}

func (ts *transactionService) MonthlySummary(ctx context.Context, month string) (*MonthlySummary, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	start, err := ParseDate(month + "-01")
	if err != nil {
		return nil, pkgerrors.NewValidationError().Add("month", "must be a month in YYYY-MM form").ErrOrNil()
	}
	end := start.AddDate(0, 1, 0)

	sums, err := ts.transactionRepo.SumByCategory(ctx, nil, rd.UserID, start, end)
	if err != nil {
		return nil, err
	}
	summary := &MonthlySummary{Month: month, ByCategory: sums}
	for _, sum := range sums {
		switch sum.Direction {
		case types.TransactionDirectionIncome:
			summary.TotalIncome += sum.Total
		case types.TransactionDirectionExpense:
			summary.TotalExpense += sum.Total
		}
	}
	summary.TotalIncome = round2(summary.TotalIncome)
	summary.TotalExpense = round2(summary.TotalExpense)
	summary.Net = round2(summary.TotalIncome - summary.TotalExpense)
	return summary, nil
}

func (ts *transactionService) Delete(ctx context.Context, txnID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	txn, err := ts.transactionRepo.GetByID(ctx, nil, txnID)
	if err != nil {
		return err
	}
	if txn == nil || txn.UserID != rd.UserID {
		return fmt.Errorf("transaction %s: %w", txnID, pkgerrors.ErrNotFound)
	}
	return ts.transactionRepo.Delete(ctx, nil, txnID)
}
