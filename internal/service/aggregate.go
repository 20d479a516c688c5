package service

import (
	"math"

	"github.com/imperador1k/dieta/internal/model"
)

// Totals are absolute amounts: kcal for Calories, grams for the macros.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (t *Totals) add(o Totals) {
	t.Calories += o.Calories
	t.Protein += o.Protein
	t.Carbs += o.Carbs
	t.Fat += o.Fat
}

// AggregateMeals sums what was actually eaten across meals. Food items count
// when their own eaten flag is set. Dish ingredients count when the
// ingredient is marked eaten, whatever the outer dish flag says.
func AggregateMeals(meals []model.Meal) Totals {
	var out Totals
	for _, m := range meals {
		for _, it := range m.Items {
			switch it.Kind {
			case model.MealItemFood:
				if it.Food != nil && it.Food.Eaten {
					out.add(FoodContribution(*it.Food))
				}
			case model.MealItemDish:
				if it.Dish == nil {
					continue
				}
				for _, ing := range it.Dish.Ingredients {
					if ing.Eaten {
						out.add(FoodContribution(ing))
					}
				}
			}
		}
	}
	return out
}

// SubtotalDish sums every ingredient of a dish and ignores eaten flags.
func SubtotalDish(d model.Dish) Totals {
	var out Totals
	for _, ing := range d.Ingredients {
		out.add(FoodContribution(ing))
	}
	return out
}

// PlannedMealTotals sums every item of a meal regardless of eaten flags.
func PlannedMealTotals(m model.Meal) Totals {
	var out Totals
	for _, it := range m.Items {
		switch it.Kind {
		case model.MealItemFood:
			if it.Food != nil {
				out.add(FoodContribution(*it.Food))
			}
		case model.MealItemDish:
			if it.Dish != nil {
				out.add(SubtotalDish(*it.Dish))
			}
		}
	}
	return out
}

// RecomputeMealTotals rewrites the cached totals on m from its items.
func RecomputeMealTotals(m *model.Meal) {
	t := PlannedMealTotals(*m)
	m.TotalCalories = t.Calories
	m.Protein = t.Protein
	m.Carbs = t.Carbs
	m.Fat = t.Fat
}

// CachedTotals reads the cached totals stored on a meal.
func CachedTotals(m model.Meal) Totals {
	return Totals{Calories: m.TotalCalories, Protein: m.Protein, Carbs: m.Carbs, Fat: m.Fat}
}

// FoodContribution scales per-100g nutrients by the serving size in grams.
// Non-finite or negative numbers contribute zero.
func FoodContribution(f model.FoodItem) Totals {
	serving := finiteNonNegative(f.ServingSize)
	if serving == 0 {
		return Totals{}
	}
	factor := serving / 100
	return Totals{
		Calories: finiteNonNegative(f.Nutrients.Calories) * factor,
		Protein:  finiteNonNegative(f.Nutrients.Protein) * factor,
		Carbs:    finiteNonNegative(f.Nutrients.Carbohydrates) * factor,
		Fat:      finiteNonNegative(f.Nutrients.Fat) * factor,
	}
}

func finiteNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
