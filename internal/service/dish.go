package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/imperador1k/dieta/internal/model"
)

type DishInput struct {
	Name         string
	Description  string
	Instructions string
}

// FoodInput describes a food portion: ServingSize in grams, nutrients per 100g.
type FoodInput struct {
	FoodRef     string
	Description string
	ServingSize float64
	Nutrients   model.Nutrients
}

func validateFoodInput(in FoodInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("food description is required")
	}
	if err := validatePositiveFloat("serving size", in.ServingSize); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("calories", in.Nutrients.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", in.Nutrients.Protein); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", in.Nutrients.Carbohydrates); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", in.Nutrients.Fat); err != nil {
		return err
	}
	return nil
}

func newFoodItem(in FoodInput) model.FoodItem {
	return model.FoodItem{
		ID:          newID(),
		FoodRef:     strings.TrimSpace(in.FoodRef),
		Description: strings.TrimSpace(in.Description),
		ServingSize: in.ServingSize,
		Nutrients:   in.Nutrients,
	}
}

func CreateDish(db *sql.DB, in DishInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", fmt.Errorf("dish name is required")
	}
	id := newID()
	_, err := db.Exec(`
INSERT INTO dishes(id, name, description, ingredients_json, instructions)
VALUES(?, ?, ?, '[]', ?)
`, id, name, strings.TrimSpace(in.Description), strings.TrimSpace(in.Instructions))
	if err != nil {
		return "", fmt.Errorf("create dish: %w", err)
	}
	return id, nil
}

const dishColumns = `id, name, description, ingredients_json, instructions, created_at, updated_at`

func scanDish(row rowScanner) (model.Dish, error) {
	var d model.Dish
	var raw string
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &raw, &d.Instructions, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return model.Dish{}, err
	}
	d.Ingredients = []model.FoodItem{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &d.Ingredients); err != nil {
			return model.Dish{}, fmt.Errorf("decode ingredients for dish %s: %w", d.ID, err)
		}
	}
	return d, nil
}

func ListDishes(db *sql.DB) ([]model.Dish, error) {
	rows, err := db.Query(`SELECT ` + dishColumns + ` FROM dishes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	defer rows.Close()
	dishes := make([]model.Dish, 0)
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dishes: %w", err)
	}
	return dishes, nil
}

// ResolveDish matches an id before a case-insensitive name.
func ResolveDish(db *sql.DB, identifier string) (*model.Dish, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("dish id or name is required")
	}
	d, err := scanDish(db.QueryRow(`SELECT `+dishColumns+` FROM dishes WHERE id = ? OR name = ? COLLATE NOCASE ORDER BY (id = ?) DESC LIMIT 1`, identifier, identifier, identifier))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dish %q not found", identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve dish %q: %w", identifier, err)
	}
	return &d, nil
}

func AddDishIngredient(db *sql.DB, dishIdentifier string, in FoodInput) (string, error) {
	if err := validateFoodInput(in); err != nil {
		return "", err
	}
	d, err := ResolveDish(db, dishIdentifier)
	if err != nil {
		return "", err
	}
	ing := newFoodItem(in)
	d.Ingredients = append(d.Ingredients, ing)
	if err := saveIngredients(db, d); err != nil {
		return "", err
	}
	return ing.ID, nil
}

func RemoveDishIngredient(db *sql.DB, dishIdentifier, ingredientID string) error {
	d, err := ResolveDish(db, dishIdentifier)
	if err != nil {
		return err
	}
	kept := make([]model.FoodItem, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		if ing.ID != strings.TrimSpace(ingredientID) {
			kept = append(kept, ing)
		}
	}
	if len(kept) == len(d.Ingredients) {
		return fmt.Errorf("ingredient %s not found in dish %q", ingredientID, d.Name)
	}
	d.Ingredients = kept
	return saveIngredients(db, d)
}

func saveIngredients(db *sql.DB, d *model.Dish) error {
	raw, err := json.Marshal(d.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	res, err := db.Exec(`UPDATE dishes SET ingredients_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(raw), d.ID)
	if err != nil {
		return fmt.Errorf("save ingredients for dish %s: %w", d.ID, err)
	}
	return checkAffected(res, fmt.Sprintf("dish %s", d.ID))
}

func DeleteDish(db *sql.DB, identifier string) error {
	d, err := ResolveDish(db, identifier)
	if err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM dishes WHERE id = ?`, d.ID)
	if err != nil {
		return fmt.Errorf("delete dish %s: %w", d.ID, err)
	}
	return checkAffected(res, fmt.Sprintf("dish %s", d.ID))
}
