package service_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperador1k/dieta/internal/model"
	"github.com/imperador1k/dieta/internal/service"
)

func food(id string, grams float64, n model.Nutrients, eaten bool) model.FoodItem {
	return model.FoodItem{ID: id, Description: id, ServingSize: grams, Nutrients: n, Eaten: eaten}
}

func TestAggregateMealsEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, service.Totals{}, service.AggregateMeals(nil))
	assert.Equal(t, service.Totals{}, service.AggregateMeals([]model.Meal{}))
}

func TestAggregateMealsEatenGating(t *testing.T) {
	t.Parallel()
	n := model.Nutrients{Calories: 250, Protein: 20, Carbohydrates: 10, Fat: 5}
	meal := model.Meal{Items: []model.MealItem{model.NewFoodMealItem(food("rice", 150, n, false))}}

	before := service.AggregateMeals([]model.Meal{meal})
	assert.Equal(t, service.Totals{}, before)

	meal.Items[0].Food.Eaten = true
	after := service.AggregateMeals([]model.Meal{meal})
	assert.InDelta(t, 250*150.0/100, after.Calories-before.Calories, 1e-9)
	assert.InDelta(t, 30, after.Protein, 1e-9)
	assert.InDelta(t, 15, after.Carbs, 1e-9)
	assert.InDelta(t, 7.5, after.Fat, 1e-9)
}

func TestAggregateMealsDishIngredientsIgnoreOuterFlag(t *testing.T) {
	t.Parallel()
	n := model.Nutrients{Calories: 100, Protein: 10}

	dish := model.Dish{ID: "d1", Name: "bowl", Ingredients: []model.FoodItem{
		food("a", 100, n, true),
		food("b", 200, n, false),
	}}
	item := model.NewDishMealItem(dish)
	item.Eaten = false
	got := service.AggregateMeals([]model.Meal{{Items: []model.MealItem{item}}})
	assert.InDelta(t, 100, got.Calories, 1e-9)
	assert.InDelta(t, 10, got.Protein, 1e-9)

	uneaten := model.Dish{ID: "d2", Name: "salad", Ingredients: []model.FoodItem{
		food("c", 100, n, false),
		food("d", 50, n, false),
	}}
	outerEaten := model.NewDishMealItem(uneaten)
	outerEaten.Eaten = true
	got = service.AggregateMeals([]model.Meal{{Items: []model.MealItem{outerEaten}}})
	assert.Equal(t, service.Totals{}, got)
}

func TestAggregateMealsAcrossMeals(t *testing.T) {
	t.Parallel()
	n := model.Nutrients{Calories: 200, Protein: 10, Carbohydrates: 30, Fat: 4}
	meals := []model.Meal{
		{Items: []model.MealItem{model.NewFoodMealItem(food("oats", 50, n, true))}},
		{Items: []model.MealItem{
			model.NewFoodMealItem(food("bread", 100, n, true)),
			model.NewDishMealItem(model.Dish{Ingredients: []model.FoodItem{food("egg", 25, n, true)}}),
		}},
	}
	got := service.AggregateMeals(meals)
	assert.InDelta(t, 350, got.Calories, 1e-9)
	assert.InDelta(t, 17.5, got.Protein, 1e-9)
	assert.InDelta(t, 52.5, got.Carbs, 1e-9)
	assert.InDelta(t, 7, got.Fat, 1e-9)
}

func TestAggregateMealsMalformedNumbersContributeZero(t *testing.T) {
	t.Parallel()
	meal := model.Meal{Items: []model.MealItem{
		model.NewFoodMealItem(food("zero", 0, model.Nutrients{Calories: 300}, true)),
		model.NewFoodMealItem(food("nan", math.NaN(), model.Nutrients{Calories: 300}, true)),
		model.NewFoodMealItem(food("inf-kcal", 100, model.Nutrients{Calories: math.Inf(1), Protein: 8}, true)),
		model.NewFoodMealItem(food("missing", 100, model.Nutrients{Calories: 120}, true)),
		{Kind: model.MealItemDish},
	}}
	got := service.AggregateMeals([]model.Meal{meal})
	assert.InDelta(t, 120, got.Calories, 1e-9)
	assert.InDelta(t, 8, got.Protein, 1e-9)
	assert.Zero(t, got.Carbs)
	assert.Zero(t, got.Fat)
}

func TestSubtotalDishIgnoresEaten(t *testing.T) {
	t.Parallel()
	dish := model.Dish{Ingredients: []model.FoodItem{
		food("A", 100, model.Nutrients{Calories: 100}, false),
		food("B", 200, model.Nutrients{Calories: 50}, true),
	}}
	assert.InDelta(t, 200, service.SubtotalDish(dish).Calories, 1e-9)
}

func TestRecomputeMealTotalsMatchesItems(t *testing.T) {
	t.Parallel()
	n := model.Nutrients{Calories: 100, Protein: 5, Carbohydrates: 20, Fat: 1}
	meal := model.Meal{
		TotalCalories: 9999,
		Items: []model.MealItem{
			model.NewFoodMealItem(food("apple", 150, n, false)),
			model.NewDishMealItem(model.Dish{Ingredients: []model.FoodItem{food("x", 50, n, false)}}),
		},
	}
	service.RecomputeMealTotals(&meal)
	assert.Equal(t, service.PlannedMealTotals(meal), service.CachedTotals(meal))
	assert.InDelta(t, 200, meal.TotalCalories, 1e-9)
}

func TestMealItemJSONRoundTripKeepsKind(t *testing.T) {
	t.Parallel()
	dish := model.NewDishMealItem(model.Dish{ID: "d", Name: "stew", Ingredients: []model.FoodItem{food("beef", 120, model.Nutrients{Calories: 250}, true)}})
	dish.Eaten = true
	items := []model.MealItem{model.NewFoodMealItem(food("milk", 200, model.Nutrients{Calories: 60}, true)), dish}

	raw, err := json.Marshal(items)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"food"`)
	assert.Contains(t, string(raw), `"type":"dish"`)

	var decoded []model.MealItem
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, model.MealItemFood, decoded[0].Kind)
	assert.True(t, decoded[0].Food.Eaten)
	assert.Equal(t, model.MealItemDish, decoded[1].Kind)
	assert.True(t, decoded[1].Eaten)
	assert.Equal(t, "stew", decoded[1].Dish.Name)
	assert.True(t, decoded[1].Dish.Ingredients[0].Eaten)

	var bad []model.MealItem
	assert.Error(t, json.Unmarshal([]byte(`[{"type":"drink"}]`), &bad))
}
