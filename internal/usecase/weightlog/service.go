package weightlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

// CreateInput represents the input for logging a weight measurement
type CreateInput struct {
	UserID       uuid.UUID
	WeightKG     decimal.Decimal
	RecordedDate time.Time
	Note         string
}

// UpdateInput represents a partial update to an existing record.
// Nil fields are left unchanged.
type UpdateInput struct {
	WeightKG *decimal.Decimal
	Note     *string
}

// WeightService handles weight record workflows
type WeightService struct {
	Weights domain.WeightRepository
	Engine  *valuation.Engine
	UoW     domain.UnitOfWork
}

// NewWeightService creates a new WeightService instance
func NewWeightService(weights domain.WeightRepository, engine *valuation.Engine, uow domain.UnitOfWork) *WeightService {
	return &WeightService{
		Weights: weights,
		Engine:  engine,
		UoW:     uow,
	}
}

// Create persists a weight record and applies the weight trigger in one
// atomic unit of work: the record and the snapshot it causes commit
// together or not at all.
func (s *WeightService) Create(ctx context.Context, input CreateInput) (*domain.WeightRecord, error) {
	record := &domain.WeightRecord{
		ID:           uuid.New(),
		UserID:       input.UserID,
		WeightKG:     input.WeightKG,
		RecordedDate: domain.DateOf(input.RecordedDate),
		Note:         input.Note,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	err := s.UoW.Do(ctx, func(ctx context.Context) error {
		// The record goes in first; the trigger's previous-weight query
		// looks strictly before the recorded date and never sees it.
		if err := s.Weights.Create(ctx, record); err != nil {
			return err
		}

		_, err := s.Engine.ApplyWeightTrigger(ctx, record.UserID, record.WeightKG, record.RecordedDate)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// History returns weight records from the last N days, oldest first.
func (s *WeightService) History(ctx context.Context, userID uuid.UUID, days int) ([]*domain.WeightRecord, error) {
	cutoff := domain.DateOf(time.Now()).AddDate(0, 0, -days)
	return s.Weights.ListSince(ctx, userID, cutoff)
}

// Update modifies an existing record's weight or note. Editing a record
// does not re-run the valuation trigger; snapshots are immutable.
func (s *WeightService) Update(ctx context.Context, userID, recordID uuid.UUID, input UpdateInput) (*domain.WeightRecord, error) {
	record, err := s.Weights.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	if input.WeightKG != nil {
		record.WeightKG = *input.WeightKG
	}
	if input.Note != nil {
		record.Note = *input.Note
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.Weights.Update(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Delete removes a weight record owned by the user.
func (s *WeightService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	return s.Weights.Delete(ctx, userID, recordID)
}
