package rules

import (
	"github.com/shopspring/decimal"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
)

// Rate constants. Percentages are expressed as fractions (0.005 = 0.5%).
var (
	// WeightDownRate is applied per 0.1 kg lost.
	WeightDownRate = decimal.NewFromFloat(0.005)
	// WeightUpRate is applied per 0.1 kg gained.
	WeightUpRate = decimal.NewFromFloat(0.003)
	// FoodLogRate rewards any logged meal.
	FoodLogRate = decimal.NewFromFloat(0.001)
	// CalorieRangeRate rewards a day total within the target range.
	CalorieRangeRate = decimal.NewFromFloat(0.002)
	// Streak3Rate rewards a streak of at least 3 consecutive days.
	Streak3Rate = decimal.NewFromFloat(0.01)
	// Streak7Rate rewards a streak of at least 7 consecutive days.
	Streak7Rate = decimal.NewFromFloat(0.03)
)

// weightUnit is the weight increment one rate step corresponds to.
var weightUnit = decimal.NewFromFloat(0.1)

// Calorie range bounds relative to the daily target, both inclusive.
var (
	calorieRangeLower = decimal.NewFromFloat(0.8)
	calorieRangeUpper = decimal.NewFromFloat(1.1)
)

// WeightResult is the outcome of evaluating a weight event.
type WeightResult struct {
	Pct     decimal.Decimal
	Trigger domain.TriggerKind
}

// EvaluateWeight maps a weight event to a percentage adjustment and a
// trigger classification. previous is nil for a first-ever measurement.
// Pure function: no side effects, no I/O, total over its valid domain.
//
// Each 0.1 kg decrease earns +0.5%, each 0.1 kg increase costs -0.3%.
// Fractional units are allowed; nothing is rounded to whole increments.
func EvaluateWeight(previous *decimal.Decimal, current decimal.Decimal) WeightResult {
	if previous == nil {
		// First weigh-in: no change, just record the baseline.
		return WeightResult{Pct: decimal.Zero, Trigger: domain.TriggerWeightInitial}
	}

	diff := previous.Sub(current) // positive means weight decreased
	units := diff.Abs().Div(weightUnit)

	switch {
	case diff.IsPositive():
		return WeightResult{Pct: units.Mul(WeightDownRate), Trigger: domain.TriggerWeightDown}
	case diff.IsNegative():
		return WeightResult{Pct: units.Mul(WeightUpRate).Neg(), Trigger: domain.TriggerWeightUp}
	default:
		return WeightResult{Pct: decimal.Zero, Trigger: domain.TriggerWeightInitial}
	}
}

// EvaluateFood maps a food event to its percentage adjustment: the base
// logging reward plus the in-range bonus when the day total sits within
// the calorie target range. The streak bonus is deliberately not part of
// this result; it is always applied as its own preceding snapshot.
func EvaluateFood(dayTotalCalories, dailyTarget int) decimal.Decimal {
	pct := FoodLogRate
	if InCalorieRange(dayTotalCalories, dailyTarget) {
		pct = pct.Add(CalorieRangeRate)
	}
	return pct
}

// InCalorieRange reports whether the day total lies within 80%-110% of
// the daily target, boundaries inclusive. A target of zero makes the
// range satisfiable only by a zero total.
func InCalorieRange(dayTotalCalories, dailyTarget int) bool {
	total := decimal.NewFromInt(int64(dayTotalCalories))
	target := decimal.NewFromInt(int64(dailyTarget))

	lower := target.Mul(calorieRangeLower)
	upper := target.Mul(calorieRangeUpper)

	return total.GreaterThanOrEqual(lower) && total.LessThanOrEqual(upper)
}

// StreakBonusPct returns the bonus percentage for a streak length.
// ok is false when the streak is too short to earn a bonus. A streak of
// 7 or more earns the 3% bonus alone, never stacked with the 1% bonus.
func StreakBonusPct(days int) (decimal.Decimal, bool) {
	switch {
	case days >= 7:
		return Streak7Rate, true
	case days >= 3:
		return Streak3Rate, true
	default:
		return decimal.Zero, false
	}
}
