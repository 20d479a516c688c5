package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/imperador1k/dieta/internal/model"
)

type MealInput struct {
	Date      string
	Name      string
	Plan      string
	Variation string
	Note      string
}

func CreateMeal(db *sql.DB, in MealInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("meal name is required")
	}
	date, err := normalizeDate(in.Date)
	if err != nil {
		return "", err
	}
	var planID, variationID string
	if strings.TrimSpace(in.Plan) != "" {
		p, err := ResolvePlan(db, in.Plan)
		if err != nil {
			return "", err
		}
		planID = p.ID
		if strings.TrimSpace(in.Variation) != "" {
			v, err := FindVariation(p, in.Variation)
			if err != nil {
				return "", err
			}
			variationID = v.ID
		}
	} else if strings.TrimSpace(in.Variation) != "" {
		return "", fmt.Errorf("a variation requires a plan")
	}

	var position int
	if err := db.QueryRow(`SELECT COALESCE(MAX(position), 0) + 1 FROM meals WHERE date = ?`, date).Scan(&position); err != nil {
		return "", fmt.Errorf("next meal position: %w", err)
	}
	id := newID()
	_, err = db.Exec(`
INSERT INTO meals(id, date, plan_id, variation_id, position, name, items_json, note)
VALUES(?, ?, ?, ?, ?, ?, '[]', ?)
`, id, date, nullString(planID), variationID, position, name, strings.TrimSpace(in.Note))
	if err != nil {
		return "", fmt.Errorf("create meal: %w", err)
	}
	return id, nil
}

const mealColumns = `id, date, IFNULL(plan_id, ''), variation_id, position, name, items_json, total_calories, protein, carbs, fat, note, created_at, updated_at`

// scanMeal decodes items one at a time. An item that does not decode is
// dropped and logged so one bad entry cannot hide the rest of the day;
// dropped reports how many were lost.
func scanMeal(row rowScanner) (model.Meal, int, error) {
	var m model.Meal
	var raw string
	if err := row.Scan(&m.ID, &m.Date, &m.PlanID, &m.VariationID, &m.Position, &m.Name, &raw, &m.TotalCalories, &m.Protein, &m.Carbs, &m.Fat, &m.Note, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return model.Meal{}, 0, err
	}
	items, dropped := decodeMealItemsLenient(m.ID, raw)
	m.Items = items
	return m, dropped, nil
}

func decodeMealItems(raw string) ([]model.MealItem, error) {
	items := []model.MealItem{}
	if strings.TrimSpace(raw) == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeMealItemsLenient(mealID, raw string) ([]model.MealItem, int) {
	items := []model.MealItem{}
	if strings.TrimSpace(raw) == "" {
		return items, 0
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		log.Warn("meal items are not a list", zap.String("meal", mealID), zap.Error(err))
		return items, 1
	}
	dropped := 0
	for i, elem := range elems {
		var item model.MealItem
		if err := json.Unmarshal(elem, &item); err != nil {
			log.Warn("dropping undecodable meal item", zap.String("meal", mealID), zap.Int("index", i), zap.Error(err))
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped
}

// ListMeals returns the meals logged on date in position order.
func ListMeals(db *sql.DB, date string) ([]model.Meal, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`SELECT `+mealColumns+` FROM meals WHERE date = ? ORDER BY position ASC, created_at ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()
	meals := make([]model.Meal, 0)
	for rows.Next() {
		m, _, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

func GetMeal(db *sql.DB, id string) (*model.Meal, error) {
	m, _, err := getMeal(db, id)
	return m, err
}

func getMeal(db *sql.DB, id string) (*model.Meal, int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, 0, fmt.Errorf("meal id is required")
	}
	m, dropped, err := scanMeal(db.QueryRow(`SELECT `+mealColumns+` FROM meals WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, 0, fmt.Errorf("meal %s not found", id)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("get meal %s: %w", id, err)
	}
	return &m, dropped, nil
}

// saveMeal is the only writer of items_json and the cached totals.
func saveMeal(db *sql.DB, m *model.Meal) error {
	RecomputeMealTotals(m)
	raw, err := json.Marshal(m.Items)
	if err != nil {
		return fmt.Errorf("marshal meal items: %w", err)
	}
	res, err := db.Exec(`
UPDATE meals
SET items_json = ?, total_calories = ?, protein = ?, carbs = ?, fat = ?, note = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, string(raw), m.TotalCalories, m.Protein, m.Carbs, m.Fat, m.Note, m.ID)
	if err != nil {
		return fmt.Errorf("save meal %s: %w", m.ID, err)
	}
	return checkAffected(res, fmt.Sprintf("meal %s", m.ID))
}

// updateMeal refuses meals with undecodable items; saving would erase them.
func updateMeal(db *sql.DB, mealID string, mutate func(*model.Meal) error) error {
	m, dropped, err := getMeal(db, mealID)
	if err != nil {
		return err
	}
	if dropped > 0 {
		return fmt.Errorf("meal %s has %d undecodable item(s); run doctor before editing it", m.ID, dropped)
	}
	if err := mutate(m); err != nil {
		return err
	}
	return saveMeal(db, m)
}

func AddFoodToMeal(db *sql.DB, mealID string, in FoodInput) (string, error) {
	if err := validateFoodInput(in); err != nil {
		return "", err
	}
	food := newFoodItem(in)
	err := updateMeal(db, mealID, func(m *model.Meal) error {
		m.Items = append(m.Items, model.NewFoodMealItem(food))
		return nil
	})
	if err != nil {
		return "", err
	}
	return food.ID, nil
}

// AddDishToMeal copies the saved dish into the meal. The copy gets fresh ids
// and starts with every ingredient uneaten.
func AddDishToMeal(db *sql.DB, mealID, dishIdentifier string) (string, error) {
	d, err := ResolveDish(db, dishIdentifier)
	if err != nil {
		return "", err
	}
	if len(d.Ingredients) == 0 {
		return "", fmt.Errorf("dish %q has no ingredients", d.Name)
	}
	dish := *d
	dish.ID = newID()
	dish.Ingredients = make([]model.FoodItem, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		ing.ID = newID()
		ing.Eaten = false
		dish.Ingredients[i] = ing
	}
	err = updateMeal(db, mealID, func(m *model.Meal) error {
		m.Items = append(m.Items, model.NewDishMealItem(dish))
		return nil
	})
	if err != nil {
		return "", err
	}
	return dish.ID, nil
}

func RemoveMealItem(db *sql.DB, mealID, itemRef string) error {
	return updateMeal(db, mealID, func(m *model.Meal) error {
		idx, err := findItem(m, itemRef)
		if err != nil {
			return err
		}
		m.Items = append(m.Items[:idx], m.Items[idx+1:]...)
		return nil
	})
}

// SetItemEaten sets a food item's flag, or the outer flag of a dish item
// without touching its ingredients.
func SetItemEaten(db *sql.DB, mealID, itemRef string, eaten bool) error {
	return updateMeal(db, mealID, func(m *model.Meal) error {
		idx, err := findItem(m, itemRef)
		if err != nil {
			return err
		}
		it := &m.Items[idx]
		switch it.Kind {
		case model.MealItemFood:
			it.Food.Eaten = eaten
		case model.MealItemDish:
			it.Eaten = eaten
		}
		return nil
	})
}

// ToggleDishEaten sets the outer dish flag and cascades it to every
// ingredient.
func ToggleDishEaten(db *sql.DB, mealID, itemRef string, eaten bool) error {
	return updateMeal(db, mealID, func(m *model.Meal) error {
		idx, err := findItem(m, itemRef)
		if err != nil {
			return err
		}
		it := &m.Items[idx]
		if it.Kind != model.MealItemDish {
			return fmt.Errorf("item %s is not a dish", itemRef)
		}
		it.Eaten = eaten
		for i := range it.Dish.Ingredients {
			it.Dish.Ingredients[i].Eaten = eaten
		}
		return nil
	})
}

func SetIngredientEaten(db *sql.DB, mealID, itemRef, ingredientRef string, eaten bool) error {
	return updateMeal(db, mealID, func(m *model.Meal) error {
		idx, err := findItem(m, itemRef)
		if err != nil {
			return err
		}
		it := &m.Items[idx]
		if it.Kind != model.MealItemDish {
			return fmt.Errorf("item %s is not a dish", itemRef)
		}
		ingIdx, err := findIngredient(it.Dish, ingredientRef)
		if err != nil {
			return err
		}
		it.Dish.Ingredients[ingIdx].Eaten = eaten
		return nil
	})
}

func SetMealNote(db *sql.DB, mealID, note string) error {
	return updateMeal(db, mealID, func(m *model.Meal) error {
		m.Note = strings.TrimSpace(note)
		return nil
	})
}

func DeleteMeal(db *sql.DB, mealID string) error {
	mealID = strings.TrimSpace(mealID)
	if mealID == "" {
		return fmt.Errorf("meal id is required")
	}
	res, err := db.Exec(`DELETE FROM meals WHERE id = ?`, mealID)
	if err != nil {
		return fmt.Errorf("delete meal %s: %w", mealID, err)
	}
	return checkAffected(res, fmt.Sprintf("meal %s", mealID))
}

// findItem accepts an item id or a 1-based position.
func findItem(m *model.Meal, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, it := range m.Items {
		if it.ID() == ref {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(m.Items) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("item %q not found in meal %q", ref, m.Name)
}

func findIngredient(d *model.Dish, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, ing := range d.Ingredients {
		if ing.ID == ref {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(d.Ingredients) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("ingredient %q not found in dish %q", ref, d.Name)
}
