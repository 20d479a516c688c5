package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Profile struct {
	Name      string
	Email     string
	Age       int
	HeightCm  float64
	Gender    Gender
	AvatarRef string
	UpdatedAt time.Time
}

// Targets are daily nutritional targets in kcal and grams.
type Targets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Variation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Plan struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	Targets     Targets
	Variations  []Variation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Nutrients are expressed per 100g of food.
type Nutrients struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

type FoodItem struct {
	ID          string    `json:"id"`
	FoodRef     string    `json:"foodRef,omitempty"`
	Description string    `json:"description"`
	ServingSize float64   `json:"servingSize"`
	Nutrients   Nutrients `json:"nutrients"`
	Eaten       bool      `json:"eaten,omitempty"`
}

type Dish struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Ingredients  []FoodItem `json:"ingredients"`
	Instructions string     `json:"instructions,omitempty"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

type MealItemKind string

const (
	MealItemFood MealItemKind = "food"
	MealItemDish MealItemKind = "dish"
)

// MealItem is either a food or a dish, selected by Kind. Exactly one of
// Food and Dish is set. Eaten is the outer dish flag; a food item keeps its
// flag on Food.Eaten.
type MealItem struct {
	Kind  MealItemKind
	Food  *FoodItem
	Dish  *Dish
	Eaten bool
}

func NewFoodMealItem(f FoodItem) MealItem {
	return MealItem{Kind: MealItemFood, Food: &f}
}

func NewDishMealItem(d Dish) MealItem {
	return MealItem{Kind: MealItemDish, Dish: &d}
}

// ID returns the id of the wrapped food or dish.
func (it MealItem) ID() string {
	switch it.Kind {
	case MealItemFood:
		if it.Food != nil {
			return it.Food.ID
		}
	case MealItemDish:
		if it.Dish != nil {
			return it.Dish.ID
		}
	}
	return ""
}

func (it MealItem) Label() string {
	switch it.Kind {
	case MealItemFood:
		if it.Food != nil {
			return it.Food.Description
		}
	case MealItemDish:
		if it.Dish != nil {
			return it.Dish.Name
		}
	}
	return ""
}

type foodItemDoc struct {
	Type MealItemKind `json:"type"`
	FoodItem
}

type dishItemDoc struct {
	Type MealItemKind `json:"type"`
	Dish
	Eaten bool `json:"eaten,omitempty"`
}

func (it MealItem) MarshalJSON() ([]byte, error) {
	switch it.Kind {
	case MealItemFood:
		if it.Food == nil {
			return nil, fmt.Errorf("food meal item has no food")
		}
		return json.Marshal(foodItemDoc{Type: MealItemFood, FoodItem: *it.Food})
	case MealItemDish:
		if it.Dish == nil {
			return nil, fmt.Errorf("dish meal item has no dish")
		}
		return json.Marshal(dishItemDoc{Type: MealItemDish, Dish: *it.Dish, Eaten: it.Eaten})
	default:
		return nil, fmt.Errorf("unknown meal item type %q", it.Kind)
	}
}

func (it *MealItem) UnmarshalJSON(data []byte) error {
	var head struct {
		Type MealItemKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("decode meal item: %w", err)
	}
	switch head.Type {
	case MealItemFood:
		var doc foodItemDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode food item: %w", err)
		}
		*it = MealItem{Kind: MealItemFood, Food: &doc.FoodItem}
	case MealItemDish:
		var doc dishItemDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode dish item: %w", err)
		}
		*it = MealItem{Kind: MealItemDish, Dish: &doc.Dish, Eaten: doc.Eaten}
	default:
		return fmt.Errorf("unknown meal item type %q", head.Type)
	}
	return nil
}

// Meal carries cached totals derived from Items. They are only written by
// the recompute path in the service package.
type Meal struct {
	ID            string
	Date          string
	PlanID        string
	VariationID   string
	Position      int
	Name          string
	Items         []MealItem
	TotalCalories float64
	Protein       float64
	Carbs         float64
	Fat           float64
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BodyMeasurement is keyed by Date (YYYY-MM-DD). Every metric is optional.
type BodyMeasurement struct {
	Date     string
	WeightKg *float64
	NeckCm   *float64
	WaistCm  *float64
	HipsCm   *float64
	Notes    string
}

type BodyGoal struct {
	ID             int64
	TargetWeightKg float64
	EffectiveDate  string
	CreatedAt      time.Time
}

type EvolutionPhoto struct {
	ID        string
	Date      string
	URL       string
	Width     int
	Height    int
	WeightKg  *float64
	RemoteRef string
	CreatedAt time.Time
}
