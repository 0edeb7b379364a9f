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

type ContactInput struct {
	Name     string  `json:"name" binding:"required"`
	Relation string  `json:"relation"`
	Birthday *string `json:"birthday,omitempty"`
	Notes    string  `json:"notes"`
}

type ContactService interface {
	Create(ctx context.Context, input ContactInput) (*types.Contact, error)
	Update(ctx context.Context, contactID uuid.UUID, input ContactInput) (*types.Contact, error)
	// Touch records that the user was in contact now.
	Touch(ctx context.Context, contactID uuid.UUID) (*types.Contact, error)
	List(ctx context.Context) ([]*types.Contact, error)
	Delete(ctx context.Context, contactID uuid.UUID) error
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contactRepo repos.ContactRepo
}

func NewContactService(db *gorm.DB, baseLog *logger.Logger, contactRepo repos.ContactRepo) ContactService {
	return &contactService{
		db:          db,
		log:         baseLog.With("service", "ContactService"),
		contactRepo: contactRepo,
	}
}

func parseContactInput(input ContactInput) (*time.Time, error) {
	v := pkgerrors.NewValidationError()
	if strings.TrimSpace(input.Name) == "" {
		v.Add("name", "must not be empty")
	}
	var birthday *time.Time
	if input.Birthday != nil && *input.Birthday != "" {
		parsed, err := ParseDate(*input.Birthday)
		if err != nil {
			v.Add("birthday", "must be a date in YYYY-MM-DD form")
		} else {
			birthday = &parsed
		}
	}
	return birthday, v.ErrOrNil()
}

func (cs *contactService) Create(ctx context.Context, input ContactInput) (*types.Contact, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	birthday, err := parseContactInput(input)
	if err != nil {
		return nil, err
	}

	contact := &types.Contact{
		ID:       uuid.New(),
		UserID:   rd.UserID,
		Name:     strings.TrimSpace(input.Name),
		Relation: input.Relation,
		Birthday: birthday,
		Notes:    input.Notes,
	}
	if _, err := cs.contactRepo.Create(ctx, nil, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (cs *contactService) Update(ctx context.Context, contactID uuid.UUID, input ContactInput) (*types.Contact, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	birthday, err := parseContactInput(input)
	if err != nil {
		return nil, err
	}

	contact, err := cs.contactRepo.GetByID(ctx, nil, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil || contact.UserID != rd.UserID {
		return nil, fmt.Errorf("contact %s: %w", contactID, pkgerrors.ErrNotFound)
	}
	contact.Name = strings.TrimSpace(input.Name)
	contact.Relation = input.Relation
	contact.Birthday = birthday
	contact.Notes = input.Notes
	if err := cs.contactRepo.Update(ctx, nil, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (cs *contactService) Touch(ctx context.Context, contactID uuid.UUID) (*types.Contact, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	contact, err := cs.contactRepo.GetByID(ctx, nil, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil || contact.UserID != rd.UserID {
		return nil, fmt.Errorf("contact %s: %w", contactID, pkgerrors.ErrNotFound)
	}
	now := time.Now()
	contact.LastContactAt = &now
	if err := cs.contactRepo.Update(ctx, nil, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (cs *contactService) List(ctx context.Context) ([]*types.Contact, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	return cs.contactRepo.ListByUserID(ctx, nil, rd.UserID)
}

func (cs *contactService) Delete(ctx context.Context, contactID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return pkgerrors.ErrUnauthorized
	}
	contact, err := cs.contactRepo.GetByID(ctx, nil, contactID)
	if err != nil {
		return err
	}
	if contact == nil || contact.UserID != rd.UserID {
		return fmt.Errorf("contact %s: %w", contactID, pkgerrors.ErrNotFound)
	}
	return cs.contactRepo.Delete(ctx, nil, contactID)
}
