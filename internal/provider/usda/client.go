package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.nal.usda.gov"

// Nutrients are per 100g, the basis FoodData Central reports for foodNutrients.
type Nutrients struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

type FoodSummary struct {
	FDCID       int64     `json:"fdc_id"`
	Description string    `json:"description"`
	Brand       string    `json:"brand,omitempty"`
	DataType    string    `json:"data_type"`
	Nutrients   Nutrients `json:"nutrients"`
}

type Portion struct {
	Description string  `json:"description"`
	GramWeight  float64 `json:"gram_weight"`
}

type Food struct {
	FDCID       int64     `json:"fdc_id"`
	Description string    `json:"description"`
	Brand       string    `json:"brand,omitempty"`
	DataType    string    `json:"data_type"`
	Nutrients   Nutrients `json:"nutrients"`
	Portions    []Portion `json:"portions"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 12 * time.Second}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

// Search runs a free-text query against FoodData Central.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]FoodSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	payload, err := json.Marshal(map[string]any{
		"query":    query,
		"dataType": []string{"Foundation", "SR Legacy", "Branded"},
		"pageSize": pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal USDA search payload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/fdc/v1/foods/search", payload)
	if err != nil {
		return nil, err
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode USDA search response: %w", err)
	}

	out := make([]FoodSummary, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		var set nutrientSet
		for _, n := range f.FoodNutrients {
			set.add(n.NutrientNumber, n.NutrientName, n.UnitName, n.Value)
		}
		out = append(out, FoodSummary{
			FDCID:       f.FDCID,
			Description: strings.TrimSpace(f.Description),
			Brand:       strings.TrimSpace(f.BrandOwner),
			DataType:    f.DataType,
			Nutrients:   set.Nutrients,
		})
	}
	return out, nil
}

// Food fetches one food with its portion list.
func (c *Client) Food(ctx context.Context, fdcID int64) (Food, error) {
	if fdcID <= 0 {
		return Food{}, fmt.Errorf("fdc id must be > 0")
	}
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/fdc/v1/food/%d", fdcID), nil)
	if err != nil {
		return Food{}, err
	}
	var parsed foodResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Food{}, fmt.Errorf("decode USDA food response: %w", err)
	}

	out := Food{
		FDCID:       parsed.FDCID,
		Description: strings.TrimSpace(parsed.Description),
		Brand:       strings.TrimSpace(parsed.BrandOwner),
		DataType:    parsed.DataType,
		Portions:    []Portion{},
	}
	var set nutrientSet
	for _, n := range parsed.FoodNutrients {
		set.add(n.Nutrient.Number, n.Nutrient.Name, n.Nutrient.UnitName, n.Amount)
	}
	out.Nutrients = set.Nutrients
	for _, p := range parsed.FoodPortions {
		if p.GramWeight <= 0 {
			continue
		}
		out.Portions = append(out.Portions, Portion{Description: portionLabel(p), GramWeight: p.GramWeight})
	}
	if parsed.ServingSize > 0 && strings.EqualFold(strings.TrimSpace(parsed.ServingSizeUnit), "g") {
		label := strings.TrimSpace(parsed.HouseholdServingFullText)
		if label == "" {
			label = "serving"
		}
		out.Portions = append(out.Portions, Portion{Description: label, GramWeight: parsed.ServingSize})
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing USDA API key (set USDA_API_KEY)")
	}
	endpoint := fmt.Sprintf("%s%s?api_key=%s", c.baseURL(), path, url.QueryEscape(c.APIKey))

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create USDA request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read USDA response: %w", err)
	}
	c.logger().Debug("usda request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

// nutrientSet collects per-100g values. Energy can arrive under several
// nutrient ids; the highest ranked source wins regardless of order.
type nutrientSet struct {
	Nutrients
	energyRank int
}

// Energy sources by preference: 208 (kcal), 958 and 957 (Atwater specific
// and general factors, reported for Foundation foods), then any kcal
// nutrient whose name starts with "energy".
var energyRanks = map[string]int{"208": 4, "958": 3, "957": 2}

func (s *nutrientSet) add(number, name, unit string, value float64) {
	number = strings.TrimSpace(number)
	lname := strings.ToLower(strings.TrimSpace(name))
	kcal := strings.EqualFold(strings.TrimSpace(unit), "kcal")

	rank, ok := energyRanks[number]
	if !ok && number == "" && kcal && strings.HasPrefix(lname, "energy") {
		rank, ok = 1, true
	}
	if ok {
		if rank > s.energyRank {
			s.Calories = value
			s.energyRank = rank
		}
		return
	}

	switch {
	case number == "203" || (number == "" && lname == "protein"):
		s.Protein = value
	case number == "204" || (number == "" && lname == "total lipid (fat)"):
		s.Fat = value
	case number == "205" || (number == "" && lname == "carbohydrate, by difference"):
		s.Carbohydrates = value
	}
}

func portionLabel(p foodPortion) string {
	if d := strings.TrimSpace(p.PortionDescription); d != "" && !strings.EqualFold(d, "Quantity not specified") {
		return d
	}
	parts := make([]string, 0, 3)
	if p.Amount > 0 {
		parts = append(parts, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p.Amount), "0"), "."))
	}
	if u := strings.TrimSpace(p.MeasureUnit.Name); u != "" && !strings.EqualFold(u, "undetermined") {
		parts = append(parts, u)
	}
	if m := strings.TrimSpace(p.Modifier); m != "" {
		parts = append(parts, m)
	}
	if len(parts) == 0 {
		return "portion"
	}
	return strings.Join(parts, " ")
}

type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	FDCID         int64            `json:"fdcId"`
	Description   string           `json:"description"`
	BrandOwner    string           `json:"brandOwner"`
	DataType      string           `json:"dataType"`
	FoodNutrients []searchNutrient `json:"foodNutrients"`
}

type searchNutrient struct {
	NutrientNumber string  `json:"nutrientNumber"`
	NutrientName   string  `json:"nutrientName"`
	UnitName       string  `json:"unitName"`
	Value          float64 `json:"value"`
}

type foodResponse struct {
	FDCID                    int64          `json:"fdcId"`
	Description              string         `json:"description"`
	BrandOwner               string         `json:"brandOwner"`
	DataType                 string         `json:"dataType"`
	ServingSize              float64        `json:"servingSize"`
	ServingSizeUnit          string         `json:"servingSizeUnit"`
	HouseholdServingFullText string         `json:"householdServingFullText"`
	FoodNutrients            []foodNutrient `json:"foodNutrients"`
	FoodPortions             []foodPortion  `json:"foodPortions"`
}

type foodNutrient struct {
	Nutrient struct {
		Number   string `json:"number"`
		Name     string `json:"name"`
		UnitName string `json:"unitName"`
	} `json:"nutrient"`
	Amount float64 `json:"amount"`
}

type foodPortion struct {
	Amount             float64 `json:"amount"`
	GramWeight         float64 `json:"gramWeight"`
	PortionDescription string  `json:"portionDescription"`
	Modifier           string  `json:"modifier"`
	MeasureUnit        struct {
		Name string `json:"name"`
	} `json:"measureUnit"`
}
