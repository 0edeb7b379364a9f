package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifeos-app/lifeos-backend/internal/normalization"
	pkgerrors "github.com/lifeos-app/lifeos-backend/internal/pkg/errors"
	"github.com/lifeos-app/lifeos-backend/internal/pkg/logger"
	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
	"github.com/lifeos-app/lifeos-backend/internal/types"
)

// LedgerOutcome tags what a ledger mutation actually did, so the skip
// policies are observable instead of being inferred from the absence of an
// error.
type LedgerOutcome string

const (
	LedgerApplied               LedgerOutcome = "applied"
	LedgerCreatedNew            LedgerOutcome = "created_new"
	LedgerSkippedIncommensurable LedgerOutcome = "skipped_incommensurable"
	LedgerNoOp                  LedgerOutcome = "noop"
)

type PantryService interface {
	List(ctx context.Context) ([]*types.PantryItem, error)
	// Upsert is the direct set-stock operation, distinct from the
	// increment/decrement ledger paths.
	Upsert(ctx context.Context, name string, quantity float64, unit *string) (*types.PantryItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error

	// Increment and Decrement run inside the caller's transaction so a
	// multi-line adjustment commits or rolls back as one unit.
	Increment(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, delta float64, unit *string) (LedgerOutcome, error)
	Decrement(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, delta float64, unit *string) (LedgerOutcome, error)
}

type pantryService struct {
	db         *gorm.DB
	log        *logger.Logger
	pantryRepo repos.PantryRepo
}

func NewPantryService(db *gorm.DB, baseLog *logger.Logger, pantryRepo repos.PantryRepo) PantryService {
	return &pantryService{
		db:         db,
		log:        baseLog.With("service", "PantryService"),
		pantryRepo: pantryRepo,
	}
}

func (ps *pantryService) List(ctx context.Context) ([]*types.PantryItem, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	return ps.pantryRepo.ListByUserID(ctx, nil, rd.UserID)
}

func (ps *pantryService) Upsert(ctx context.Context, name string, quantity float64, unit *string) (*types.PantryItem, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}

	v := pkgerrors.NewValidationError()
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		v.Add("name", "must not be empty")
	}
	if quantity < 0 {
		v.Add("quantity", "must not be negative")
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	var out *types.PantryItem
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ps.pantryRepo.GetByUserAndName(ctx, tx, rd.UserID, trimmedName)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Quantity = round3(quantity)
			existing.Unit = normalization.NormalizeUnit(unit)
			if err := ps.pantryRepo.Update(ctx, tx, existing); err != nil {
				return err
			}
			out = existing
			return nil
		}
		created := &types.PantryItem{
			ID:       uuid.New(),
			UserID:   rd.UserID,
			Name:     trimmedName,
			Quantity: round3(quantity),
			Unit:     normalization.NormalizeUnit(unit),
		}
		if _, err := ps.pantryRepo.Create(ctx, tx, created); err != nil {
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

func (ps *pantryService) Delete(ctx context.Context, itemID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	item, err := ps.pantryRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != rd.UserID {
		return fmt.Errorf("pantry item %s: %w", itemID, pkgerrors.ErrNotFound)
	}
	return ps.pantryRepo.Delete(ctx, nil, itemID)
}

// Increment adds delta to the on-hand quantity. A missing row is created
// at exactly delta: the ledger tracks what would be on hand had nothing
// external interfered, not a hard inventory count.
func (ps *pantryService) Increment(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, delta float64, unit *string) (LedgerOutcome, error) {
	item, err := ps.pantryRepo.GetByUserAndName(ctx, tx, userID, strings.TrimSpace(name))
	if err != nil {
		return LedgerNoOp, err
	}
	if item == nil {
		created := &types.PantryItem{
			ID:       uuid.New(),
			UserID:   userID,
			Name:     strings.TrimSpace(name),
			Quantity: round3(clampNonNegative(delta)),
			Unit:     normalization.NormalizeUnit(unit),
		}
		if _, err := ps.pantryRepo.Create(ctx, tx, created); err != nil {
			return LedgerNoOp, err
		}
		return LedgerCreatedNew, nil
	}
	if !normalization.Commensurable(item.Unit, unit) {
		ps.log.Warn("pantry increment skipped: incommensurable units",
			"name", name, "item_unit", derefUnit(item.Unit), "delta_unit", derefUnit(unit))
		return LedgerSkippedIncommensurable, nil
	}
	backfillUnit(item, unit)
	item.Quantity = round3(clampNonNegative(item.Quantity + delta))
	if err := ps.pantryRepo.Update(ctx, tx, item); err != nil {
		return LedgerNoOp, err
	}
	return LedgerApplied, nil
}

// Decrement subtracts delta, floored at zero. Consuming more than is on
// hand zeroes the row out rather than erroring; decrementing an absent row
// does nothing.
func (ps *pantryService) Decrement(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, delta float64, unit *string) (LedgerOutcome, error) {
	item, err := ps.pantryRepo.GetByUserAndName(ctx, tx, userID, strings.TrimSpace(name))
	if err != nil {
		return LedgerNoOp, err
	}
	if item == nil {
		return LedgerNoOp, nil
	}
	if !normalization.Commensurable(item.Unit, unit) {
		ps.log.Warn("pantry decrement skipped: incommensurable units",
			"name", name, "item_unit", derefUnit(item.Unit), "delta_unit", derefUnit(unit))
		return LedgerSkippedIncommensurable, nil
	}
	backfillUnit(item, unit)
	item.Quantity = round3(clampNonNegative(item.Quantity - delta))
	if err := ps.pantryRepo.Update(ctx, tx, item); err != nil {
		return LedgerNoOp, err
	}
	return LedgerApplied, nil
}

// backfillUnit adopts the mutation's unit onto a unit-less row. The wildcard
// matched anyway; recording the unit makes later commensurability checks
// strict instead of leaving the row a permanent wildcard.
func backfillUnit(item *types.PantryItem, unit *string) {
	if item.Unit != nil {
		return
	}
	if normalized := normalization.NormalizeUnit(unit); normalized != nil {
		item.Unit = normalized
	}
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func derefUnit(u *string) string {
	if u == nil {
		return ""
	}
	return *u
}
