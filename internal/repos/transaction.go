package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

// CategorySum is one row of the monthly finance summary.
type CategorySum struct {
	Category  string  `json:"category"`
	Direction string  `json:"direction"`
	Total     float64 `json:"total"`
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, txn *types.Transaction) (*types.Transaction, error)
	Update(ctx context.Context, tx *gorm.DB, txn *types.Transaction) error
	GetByID(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (*types.Transaction, error)
	ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Transaction, error)
	SumByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*CategorySum, error)
	Delete(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) error
}

type transactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	return &transactionRepo{db: db, log: baseLog.With("repo", "TransactionRepo")}
}

func (tr *transactionRepo) Create(ctx context.Context, tx *gorm.DB, txn *types.Transaction) (*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func (tr *transactionRepo) Update(ctx context.Context, tx *gorm.DB, txn *types.Transaction) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Save(txn).Error
}

func (tr *transactionRepo) GetByID(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Transaction
	err := transaction.WithContext(ctx).
		Where("id = ?", txnID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *transactionRepo) ListByUserAndRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Transaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Transaction
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *transactionRepo) SumByCategory(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*CategorySum, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*CategorySum
	if err := transaction.WithContext(ctx).
		Model(&types.Transaction{}).
		Select("category, direction, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Group("category, direction").
		Order("category ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *transactionRepo) Delete(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", txnID).
		Delete(&types.Transaction{}).Error
}
