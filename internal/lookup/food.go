package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const unknownProductName = "Неизвестный продукт"

// FoodService ищет продукты в OpenFoodFacts.
type FoodService struct {
	baseURL string
	client  *http.Client
}

func NewFoodService(baseURL string, timeout time.Duration) *FoodService {
	return &FoodService{
		baseURL: baseURL,
		client:  newHTTPClient(timeout),
	}
}

type offProduct struct {
	ProductName string                 `json:"product_name"`
	Nutriments  map[string]interface{} `json:"nutriments"`
}

// SearchFood возвращает первый найденный продукт.
func (fs *FoodService) SearchFood(ctx context.Context, query string) (*FoodItem, error) {
	reqURL, err := url.Parse(fs.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := fs.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("food search failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResponse struct {
		Products []offProduct `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to decode food response: %w", err)
	}
	if len(apiResponse.Products) == 0 {
		return nil, ErrNotFound
	}

	product := apiResponse.Products[0]
	item := &FoodItem{Name: product.ProductName}
	if item.Name == "" {
		item.Name = unknownProductName
	}
	item.CaloriesPer100g, item.HasCalories = kcalPer100g(product.Nutriments)

	return item, nil
}

// OpenFoodFacts отдаёт значения то числом, то строкой
func kcalPer100g(nutriments map[string]interface{}) (float64, bool) {
	raw, ok := nutriments["energy-kcal_100g"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
