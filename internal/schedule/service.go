package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gotejo/backend/internal/models"
	"github.com/gotejo/backend/internal/watering"
)

var (
	// ErrNotFound is returned when the referenced entry does not exist.
	ErrNotFound = errors.New("schedule entry not found")
	// ErrNotOwner is returned when the entry belongs to another account.
	ErrNotOwner = errors.New("schedule entry owned by another account")
	// ErrValidation can be used with errors.Is to detect rejected rule input.
	ErrValidation = errors.New("validation failed")
)

// Store is the persistence interface the service consumes.
type Store interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.ScheduleEntry, error)
	ListActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.ScheduleEntry, error)
	ListActive(ctx context.Context) ([]*models.ScheduleEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleEntry, error)
	Insert(ctx context.Context, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error)
	Update(ctx context.Context, id, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error)
	Delete(ctx context.Context, id, accountID uuid.UUID) (bool, error)
	SetActive(ctx context.Context, id, accountID uuid.UUID, active bool) (bool, error)
}

type Service interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*models.ScheduleEntry, error)
	Create(ctx context.Context, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error)
	Update(ctx context.Context, id, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error)
	Delete(ctx context.Context, id, accountID uuid.UUID) error
	SetActive(ctx context.Context, id, accountID uuid.UUID, active bool) error
	Status(ctx context.Context, accountID uuid.UUID) (watering.Decision, error)
	GlobalStatus(ctx context.Context) (watering.Decision, error)
}

type service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// NewService creates the schedule service. loc is the wall clock the
// evaluator runs in (UTC unless configured otherwise).
func NewService(store Store, loc *time.Location) *service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{store: store, loc: loc, now: time.Now}
}

var _ Service = (*service)(nil)

// validateRule enforces the creation-boundary invariants: a parseable
// time-of-day, a positive duration in minutes, and weekday tags drawn from
// the fixed vocabulary.
func validateRule(timeOfDay string, durationMinutes int, weekdays string) error {
	if _, _, err := watering.ParseClock(timeOfDay); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of minutes", ErrValidation)
	}
	if err := watering.ValidateSet(weekdays); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func (s *service) List(ctx context.Context, accountID uuid.UUID) ([]*models.ScheduleEntry, error) {
	return s.store.ListByAccount(ctx, accountID)
}

func (s *service) Create(ctx context.Context, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error) {
	if err := validateRule(timeOfDay, durationMinutes, weekdays); err != nil {
		return nil, err
	}
	return s.store.Insert(ctx, accountID, timeOfDay, durationMinutes, weekdays)
}

// checkOwnership distinguishes a missing entry (404) from one owned by
// another account (403). The subsequent write statement is owner-scoped, so
// the check is advisory for the error code only.
func (s *service) checkOwnership(ctx context.Context, id, accountID uuid.UUID) error {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrNotFound
	}
	if e.AccountID != accountID {
		return ErrNotOwner
	}
	return nil
}

func (s *service) Update(ctx context.Context, id, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error) {
	if err := s.checkOwnership(ctx, id, accountID); err != nil {
		return nil, err
	}
	if err := validateRule(timeOfDay, durationMinutes, weekdays); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, accountID, timeOfDay, durationMinutes, weekdays)
}

func (s *service) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	if err := s.checkOwnership(ctx, id, accountID); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, id, accountID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *service) SetActive(ctx context.Context, id, accountID uuid.UUID, active bool) error {
	if err := s.checkOwnership(ctx, id, accountID); err != nil {
		return err
	}
	updated, err := s.store.SetActive(ctx, id, accountID, active)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

// Status evaluates the account's active entries against the current instant.
func (s *service) Status(ctx context.Context, accountID uuid.UUID) (watering.Decision, error) {
	entries, err := s.store.ListActiveByAccount(ctx, accountID)
	if err != nil {
		return watering.Decision{}, err
	}
	return watering.Evaluate(s.now(), s.loc, entries), nil
}

// GlobalStatus evaluates every active entry regardless of owner.
func (s *service) GlobalStatus(ctx context.Context) (watering.Decision, error) {
	entries, err := s.store.ListActive(ctx)
	if err != nil {
		return watering.Decision{}, err
	}
	return watering.Evaluate(s.now(), s.loc, entries), nil
}
