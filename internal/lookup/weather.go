package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// WeatherService получает текущую температуру через OpenWeatherMap.
type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewWeatherService(apiKey, baseURL string, timeout time.Duration) *WeatherService {
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  newHTTPClient(timeout),
	}
}

// Temperature возвращает температуру в городе в градусах Цельсия.
func (ws *WeatherService) Temperature(ctx context.Context, city string) (float64, error) {
	reqURL, err := url.Parse(ws.baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", city)
	params.Set("appid", ws.apiKey)
	params.Set("units", "metric")
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := ws.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("weather request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResponse struct {
		Main *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return 0, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if apiResponse.Main == nil || apiResponse.Main.Temp == nil {
		return 0, fmt.Errorf("weather response has no temperature")
	}

	return *apiResponse.Main.Temp, nil
}
