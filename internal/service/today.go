package service

import (
	"database/sql"
)

type MacroProgress struct {
	Consumed   float64 `json:"consumed"`
	Target     float64 `json:"target"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	BarPercent float64 `json:"bar_percent"`
	OnTarget   bool    `json:"on_target"`
}

// onTargetTolerance is the fraction either side of a target that still
// counts as on target.
const onTargetTolerance = 0.10

type TodayStatus struct {
	Date         string         `json:"date"`
	MealCount    int            `json:"meal_count"`
	Consumed     Totals         `json:"consumed"`
	Planned      Totals         `json:"planned"`
	HasPlan      bool           `json:"has_plan"`
	PlanName     string         `json:"plan_name,omitempty"`
	Calories     *MacroProgress `json:"calories,omitempty"`
	Protein      *MacroProgress `json:"protein,omitempty"`
	Carbs        *MacroProgress `json:"carbs,omitempty"`
	Fat          *MacroProgress `json:"fat,omitempty"`
	CalorieColor Overage        `json:"calorie_color"`
}

func progress(consumed, target float64) *MacroProgress {
	pct := ProgressPercentage(consumed, target)
	return &MacroProgress{
		Consumed:   consumed,
		Target:     target,
		Remaining:  target - consumed,
		Percentage: pct,
		BarPercent: ClampPercent(pct),
		OnTarget:   AdherenceWithin(consumed, target, onTargetTolerance),
	}
}

// TodaySummary aggregates what was eaten on date against the active plan.
func TodaySummary(db *sql.DB, date string) (*TodayStatus, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	meals, err := ListMeals(db, date)
	if err != nil {
		return nil, err
	}
	status := &TodayStatus{Date: date, MealCount: len(meals)}
	status.Consumed = AggregateMeals(meals)
	for _, m := range meals {
		status.Planned.add(CachedTotals(m))
	}

	plan, err := ActivePlan(db)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		status.CalorieColor = OverageColor(0, 0)
		return status, nil
	}
	status.HasPlan = true
	status.PlanName = plan.Name
	status.Calories = progress(status.Consumed.Calories, plan.Targets.Calories)
	status.Protein = progress(status.Consumed.Protein, plan.Targets.Protein)
	status.Carbs = progress(status.Consumed.Carbs, plan.Targets.Carbs)
	status.Fat = progress(status.Consumed.Fat, plan.Targets.Fat)
	status.CalorieColor = OverageColor(status.Consumed.Calories, plan.Targets.Calories)
	return status, nil
}
