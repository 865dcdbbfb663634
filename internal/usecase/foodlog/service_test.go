package foodlog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ed1sonDont/fitconomy/internal/adapter/repository/memory"
	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/streak"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

func newTestService(t *testing.T) (*FoodService, *memory.Store, *domain.User) {
	t.Helper()

	store := memory.NewStore()
	cfg := valuation.Config{
		InitialValue: decimal.NewFromInt(1000),
		Floor:        decimal.NewFromInt(100),
	}
	engine := valuation.NewEngine(store.Snapshots(), store.Weights(), streak.NewCalculator(store.Activity()), cfg)
	service := NewFoodService(store.Foods(), store.Users(), engine, store.UnitOfWork())

	user := &domain.User{
		ID:                 uuid.New(),
		Email:              "eater@example.com",
		HashedPassword:     "x",
		Username:           "eater",
		DailyCalorieTarget: 2000,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))

	return service, store, user
}

func TestCreate_SumsItemCaloriesIntoTotal(t *testing.T) {
	ctx := context.Background()
	service, _, user := newTestService(t)

	record, err := service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealBreakfast,
		RecordedDate: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		Items: []ItemInput{
			{Name: "oatmeal", Calories: 350},
			{Name: "banana", Calories: 105},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 455, record.TotalCalories)
	assert.Len(t, record.Items, 2)
}

func TestCreate_OutOfRangeMealEarnsBaseOnly(t *testing.T) {
	ctx := context.Background()
	service, store, user := newTestService(t)

	// 455 kcal of a 2000 target is far below the 80% band
	_, err := service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealBreakfast,
		RecordedDate: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		Items:        []ItemInput{{Name: "oatmeal", Calories: 455}},
	})
	require.NoError(t, err)

	value, ok, err := store.Snapshots().MostRecentValue(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, value.Equal(decimal.NewFromInt(1001)), "got %s", value)
}

func TestCreate_InRangeDayTotalEarnsBonus(t *testing.T) {
	ctx := context.Background()
	service, store, user := newTestService(t)

	// 1800 kcal sits inside the 1600..2200 band of a 2000 target
	_, err := service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealDinner,
		RecordedDate: time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
		Items:        []ItemInput{{Name: "feast", Calories: 1800}},
	})
	require.NoError(t, err)

	value, ok, err := store.Snapshots().MostRecentValue(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, value.Equal(decimal.NewFromInt(1003)), "got %s", value)
}

func TestCreate_DayTotalSpansMeals(t *testing.T) {
	ctx := context.Background()
	service, store, user := newTestService(t)

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// 1000 kcal breakfast: below range, base only. 1000 -> 1001
	_, err := service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealBreakfast,
		RecordedDate: date,
		Items:        []ItemInput{{Name: "big breakfast", Calories: 1000}},
	})
	require.NoError(t, err)

	// 800 kcal dinner pushes the day total to 1800, inside the band.
	// 1001 * 1.003 = 1004.003
	_, err = service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealDinner,
		RecordedDate: date,
		Items:        []ItemInput{{Name: "dinner", Calories: 800}},
	})
	require.NoError(t, err)

	value, ok, err := store.Snapshots().MostRecentValue(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, value.Equal(decimal.NewFromFloat(1004.003)), "got %s", value)
}

func TestCreate_StreakBonusWrittenOncePerDay(t *testing.T) {
	ctx := context.Background()
	service, store, user := newTestService(t)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Three consecutive active days before the meal date
	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Weights().Create(ctx, &domain.WeightRecord{
			ID:           uuid.New(),
			UserID:       user.ID,
			WeightKG:     decimal.NewFromFloat(80),
			RecordedDate: date.AddDate(0, 0, -i),
		}))
	}

	for _, meal := range []domain.MealType{domain.MealBreakfast, domain.MealLunch} {
		_, err := service.Create(ctx, CreateInput{
			UserID:       user.ID,
			MealType:     meal,
			RecordedDate: date,
			Items:        []ItemInput{{Name: "meal", Calories: 400}},
		})
		require.NoError(t, err)
	}

	snapshots, err := store.Snapshots().ListSince(ctx, user.ID, date)
	require.NoError(t, err)

	bonuses := 0
	for _, snapshot := range snapshots {
		if snapshot.Trigger == domain.TriggerStreakBonus {
			bonuses++
		}
	}
	assert.Equal(t, 1, bonuses)
	// bonus + one food snapshot per meal
	assert.Len(t, snapshots, 3)
}

func TestAddItem_AdjustsTotalWithoutNewSnapshot(t *testing.T) {
	ctx := context.Background()
	service, store, user := newTestService(t)

	record, err := service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealLunch,
		RecordedDate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Items:        []ItemInput{{Name: "sandwich", Calories: 500}},
	})
	require.NoError(t, err)

	before, err := store.Snapshots().ListSince(ctx, user.ID, time.Time{})
	require.NoError(t, err)

	item, err := service.AddItem(ctx, user.ID, record.ID, ItemInput{Name: "apple", Calories: 80})
	require.NoError(t, err)
	assert.Equal(t, "apple", item.Name)

	reloaded, err := service.Daily(ctx, user.ID, record.RecordedDate)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Equal(t, 580, reloaded[0].TotalCalories)
	assert.Len(t, reloaded[0].Items, 2)

	after, err := store.Snapshots().ListSince(ctx, user.ID, time.Time{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestDeleteItem_ChecksOwnership(t *testing.T) {
	ctx := context.Background()
	service, _, user := newTestService(t)

	record, err := service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealSnack,
		RecordedDate: time.Now(),
		Items:        []ItemInput{{Name: "cookie", Calories: 200}},
	})
	require.NoError(t, err)
	itemID := record.Items[0].ID

	err = service.DeleteItem(ctx, uuid.New(), itemID)
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)

	err = service.DeleteItem(ctx, user.ID, itemID)
	require.NoError(t, err)

	reloaded, err := service.Daily(ctx, user.ID, record.RecordedDate)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Equal(t, 0, reloaded[0].TotalCalories)
	assert.Empty(t, reloaded[0].Items)
}

func TestCreate_RejectsInvalidMealType(t *testing.T) {
	ctx := context.Background()
	service, _, user := newTestService(t)

	_, err := service.Create(ctx, CreateInput{
		UserID:       user.ID,
		MealType:     domain.MealType("brunch"),
		RecordedDate: time.Now(),
		Items:        []ItemInput{{Name: "eggs", Calories: 300}},
	})
	assert.Error(t, err)
}
