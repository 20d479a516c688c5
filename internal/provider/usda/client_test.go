package usda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearchParsesUSDAResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/fdc/v1/foods/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "demo" {
			t.Errorf("expected api key in query, got %q", r.URL.RawQuery)
		}
		var payload struct {
			Query    string `json:"query"`
			PageSize int    `json:"pageSize"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Query != "greek yogurt" || payload.PageSize != 5 {
			t.Errorf("unexpected payload: %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "foods": [
    {
      "fdcId": 12345,
      "description": " Greek Yogurt ",
      "brandOwner": "Test Brand",
      "dataType": "Branded",
      "foodNutrients": [
        {"nutrientNumber": "208", "nutrientName": "Energy", "unitName": "KCAL", "value": 59},
        {"nutrientNumber": "203", "nutrientName": "Protein", "unitName": "G", "value": 10.2},
        {"nutrientNumber": "205", "nutrientName": "Carbohydrate, by difference", "unitName": "G", "value": 3.6},
        {"nutrientNumber": "204", "nutrientName": "Total lipid (fat)", "unitName": "G", "value": 0.4}
      ]
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL + "/", HTTPClient: ts.Client()}

	foods, err := c.Search(context.Background(), "  greek yogurt ", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(foods) != 1 {
		t.Fatalf("expected 1 food, got %d", len(foods))
	}
	got := foods[0]
	if got.FDCID != 12345 || got.Description != "Greek Yogurt" || got.Brand != "Test Brand" {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if got.Nutrients.Calories != 59 || got.Nutrients.Protein != 10.2 || got.Nutrients.Carbohydrates != 3.6 || got.Nutrients.Fat != 0.4 {
		t.Fatalf("unexpected nutrients: %+v", got.Nutrients)
	}
}

func TestFoodParsesNutrientsAndPortions(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/fdc/v1/food/171287" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "fdcId": 171287,
  "description": "Egg, whole, raw, fresh",
  "dataType": "SR Legacy",
  "foodNutrients": [
    {"nutrient": {"number": "268", "name": "Energy", "unitName": "kJ"}, "amount": 599},
    {"nutrient": {"number": "208", "name": "Energy", "unitName": "kcal"}, "amount": 143},
    {"nutrient": {"number": "203", "name": "Protein", "unitName": "g"}, "amount": 12.6},
    {"nutrient": {"number": "204", "name": "Total lipid (fat)", "unitName": "g"}, "amount": 9.51},
    {"nutrient": {"number": "205", "name": "Carbohydrate, by difference", "unitName": "g"}, "amount": 0.72}
  ],
  "foodPortions": [
    {"amount": 1, "gramWeight": 50, "modifier": "large", "measureUnit": {"name": "undetermined"}},
    {"amount": 1, "gramWeight": 243, "portionDescription": "1 cup (4.86 large eggs)"},
    {"amount": 1, "gramWeight": 0, "portionDescription": "broken"}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	food, err := c.Food(context.Background(), 171287)
	if err != nil {
		t.Fatalf("food: %v", err)
	}
	if food.Nutrients.Calories != 143 {
		t.Fatalf("expected kcal energy, got %.2f", food.Nutrients.Calories)
	}
	if food.Nutrients.Protein != 12.6 || food.Nutrients.Fat != 9.51 || food.Nutrients.Carbohydrates != 0.72 {
		t.Fatalf("unexpected nutrients: %+v", food.Nutrients)
	}
	if len(food.Portions) != 2 {
		t.Fatalf("expected 2 portions, got %+v", food.Portions)
	}
	if food.Portions[0].Description != "1 large" || food.Portions[0].GramWeight != 50 {
		t.Fatalf("unexpected first portion: %+v", food.Portions[0])
	}
	if food.Portions[1].Description != "1 cup (4.86 large eggs)" {
		t.Fatalf("unexpected second portion: %+v", food.Portions[1])
	}
}

func TestFoodAddsBrandedServingPortion(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
  "fdcId": 99,
  "description": "Protein bar",
  "dataType": "Branded",
  "servingSize": 60,
  "servingSizeUnit": "g",
  "householdServingFullText": "1 bar",
  "foodNutrients": [
    {"nutrient": {"name": "Energy", "unitName": "kcal"}, "amount": 350}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	food, err := c.Food(context.Background(), 99)
	if err != nil {
		t.Fatalf("food: %v", err)
	}
	if food.Nutrients.Calories != 350 {
		t.Fatalf("expected name-based energy fallback, got %.2f", food.Nutrients.Calories)
	}
	if len(food.Portions) != 1 || food.Portions[0].Description != "1 bar" || food.Portions[0].GramWeight != 60 {
		t.Fatalf("unexpected portions: %+v", food.Portions)
	}
}

func TestFoodUsesAtwaterEnergyForFoundationFoods(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
  "fdcId": 2346396,
  "description": "Hummus, commercial",
  "dataType": "Foundation",
  "foodNutrients": [
    {"nutrient": {"number": "957", "name": "Energy (Atwater General Factors)", "unitName": "kcal"}, "amount": 229},
    {"nutrient": {"number": "268", "name": "Energy", "unitName": "kJ"}, "amount": 951},
    {"nutrient": {"number": "958", "name": "Energy (Atwater Specific Factors)", "unitName": "kcal"}, "amount": 220},
    {"nutrient": {"number": "203", "name": "Protein", "unitName": "g"}, "amount": 7.35}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	food, err := c.Food(context.Background(), 2346396)
	if err != nil {
		t.Fatalf("food: %v", err)
	}
	if food.Nutrients.Calories != 220 {
		t.Fatalf("expected specific-factor energy, got %.2f", food.Nutrients.Calories)
	}
	if food.Nutrients.Protein != 7.35 {
		t.Fatalf("unexpected nutrients: %+v", food.Nutrients)
	}
}

func TestSearchPrefersStandardEnergyOverAtwater(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
  "foods": [
    {
      "fdcId": 1,
      "description": "Oats",
      "dataType": "Foundation",
      "foodNutrients": [
        {"nutrientNumber": "958", "nutrientName": "Energy (Atwater Specific Factors)", "unitName": "KCAL", "value": 370},
        {"nutrientNumber": "208", "nutrientName": "Energy", "unitName": "KCAL", "value": 379}
      ]
    },
    {
      "fdcId": 2,
      "description": "Lentils",
      "dataType": "Foundation",
      "foodNutrients": [
        {"nutrientName": "Energy (Atwater General Factors)", "unitName": "KCAL", "value": 116},
        {"nutrientName": "Energy", "unitName": "kJ", "value": 485}
      ]
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	foods, err := c.Search(context.Background(), "grains", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(foods) != 2 {
		t.Fatalf("expected 2 foods, got %d", len(foods))
	}
	if foods[0].Nutrients.Calories != 379 {
		t.Fatalf("expected 208 energy to win, got %.2f", foods[0].Nutrients.Calories)
	}
	if foods[1].Nutrients.Calories != 116 {
		t.Fatalf("expected kcal name match, got %.2f", foods[1].Nutrients.Calories)
	}
}

func TestClientErrors(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/1") {
			_, _ = w.Write([]byte(`not json`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	noKey := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := noKey.Search(context.Background(), "rice", 5); err == nil || !strings.Contains(err.Error(), "USDA_API_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Search(context.Background(), "   ", 5); err == nil {
		t.Fatalf("expected empty query error")
	}
	if _, err := c.Search(context.Background(), "rice", 5); err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := c.Food(context.Background(), 1); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if _, err := c.Food(context.Background(), 0); err == nil {
		t.Fatalf("expected invalid id error")
	}
}
