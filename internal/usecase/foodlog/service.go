package foodlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

// ItemInput describes one food item within a meal.
type ItemInput struct {
	Name          string
	Calories      int
	AmountG       *decimal.Decimal
	ImageURL      string
	PixelIconType string
}

// CreateInput represents the input for logging a meal
type CreateInput struct {
	UserID       uuid.UUID
	MealType     domain.MealType
	RecordedDate time.Time
	Note         string
	Items        []ItemInput
}

// FoodService handles food record workflows
type FoodService struct {
	Foods  domain.FoodRepository
	Users  domain.UserRepository
	Engine *valuation.Engine
	UoW    domain.UnitOfWork
}

// NewFoodService creates a new FoodService instance
func NewFoodService(foods domain.FoodRepository, users domain.UserRepository, engine *valuation.Engine, uow domain.UnitOfWork) *FoodService {
	return &FoodService{
		Foods:  foods,
		Users:  users,
		Engine: engine,
		UoW:    uow,
	}
}

// Create persists a food record with its items and applies the food
// trigger in one atomic unit of work. The record's total is the sum of
// its item calories; the trigger receives the day total across all of
// the user's records for that date, the new one included.
func (s *FoodService) Create(ctx context.Context, input CreateInput) (*domain.FoodRecord, error) {
	total := 0
	items := make([]domain.FoodItem, 0, len(input.Items))

	recordID := uuid.New()
	for _, item := range input.Items {
		items = append(items, domain.FoodItem{
			ID:            uuid.New(),
			FoodRecordID:  recordID,
			Name:          item.Name,
			Calories:      item.Calories,
			AmountG:       item.AmountG,
			ImageURL:      item.ImageURL,
			PixelIconType: item.PixelIconType,
		})
		total += item.Calories
	}

	record := &domain.FoodRecord{
		ID:            recordID,
		UserID:        input.UserID,
		MealType:      input.MealType,
		RecordedDate:  domain.DateOf(input.RecordedDate),
		TotalCalories: total,
		Note:          input.Note,
		Items:         items,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	err := s.UoW.Do(ctx, func(ctx context.Context) error {
		user, err := s.Users.GetByID(ctx, input.UserID)
		if err != nil {
			return err
		}

		if err := s.Foods.Create(ctx, record); err != nil {
			return err
		}

		// Day total including the record just written
		dayTotal, err := s.Foods.DayTotalCalories(ctx, record.UserID, record.RecordedDate)
		if err != nil {
			return err
		}

		_, err = s.Engine.ApplyFoodTrigger(ctx, record.UserID, record.RecordedDate, dayTotal, user.DailyCalorieTarget)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Daily returns the user's food records for one calendar date.
func (s *FoodService) Daily(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.FoodRecord, error) {
	return s.Foods.ListByDate(ctx, userID, domain.DateOf(date))
}

// AddItem appends an item to an existing record and adjusts its running
// total. Adding an item after the fact does not re-run the food trigger.
func (s *FoodService) AddItem(ctx context.Context, userID, recordID uuid.UUID, input ItemInput) (*domain.FoodItem, error) {
	record, err := s.Foods.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	item := &domain.FoodItem{
		ID:            uuid.New(),
		FoodRecordID:  record.ID,
		Name:          input.Name,
		Calories:      input.Calories,
		AmountG:       input.AmountG,
		ImageURL:      input.ImageURL,
		PixelIconType: input.PixelIconType,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	err = s.UoW.Do(ctx, func(ctx context.Context) error {
		if err := s.Foods.AddItem(ctx, item); err != nil {
			return err
		}
		return s.Foods.SetTotalCalories(ctx, record.ID, record.TotalCalories+item.Calories)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item from a record owned by the user and adjusts
// the running total, clamped at zero.
func (s *FoodService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.Foods.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	// Ownership check: the parent record must belong to the caller
	record, err := s.Foods.GetByID(ctx, userID, item.FoodRecordID)
	if err != nil {
		return err
	}

	newTotal := record.TotalCalories - item.Calories
	if newTotal < 0 {
		newTotal = 0
	}

	return s.UoW.Do(ctx, func(ctx context.Context) error {
		if err := s.Foods.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		return s.Foods.SetTotalCalories(ctx, record.ID, newTotal)
	})
}
