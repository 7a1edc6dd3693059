package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"headlines/internal/config"
	"headlines/internal/domain"
)

// Client получает текущую погоду из OpenWeatherMap.
// Запросы выполняются с фиксированными единицами измерения и API-ключом
// из конфигурации; повторных попыток нет.
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создает клиент источника погоды на основе конфигурации.
func NewClient(cfg config.WeatherConfig, log *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		units:      cfg.Units,
		httpClient: http.DefaultClient,
		log:        log,
	}
}

// Current возвращает сводку погоды для города, заданного свободным текстом.
// Если источник не вернул блок погодных условий для запроса (неизвестный
// город), возвращается (nil, nil) - это штатный пустой результат.
func (c *Client) Current(ctx context.Context, locationQuery string) (*domain.Weather, error) {
	params := url.Values{
		"q":     {locationQuery},
		"units": {c.units},
		"appid": {c.apiKey},
	}
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request for %q: %w", locationQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("Weather API returned non-200 status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("query", locationQuery),
		)
		return nil, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var owm response
	if err := json.NewDecoder(resp.Body).Decode(&owm); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if len(owm.Weather) == 0 {
		c.log.Debug("No weather conditions for query", slog.String("query", locationQuery))
		return nil, nil
	}
	return &domain.Weather{
		Description: owm.Weather[0].Description,
		Temperature: owm.Main.Temp,
		City:        owm.Name,
		Country:     owm.Sys.Country,
	}, nil
}

// Типы ответа OpenWeatherMap.

type response struct {
	Weather []condition `json:"weather"`
	Main    mainBlock   `json:"main"`
	Name    string      `json:"name"`
	Sys     sysBlock    `json:"sys"`
}

type condition struct {
	Description string `json:"description"`
}

type mainBlock struct {
	Temp float64 `json:"temp"`
}

type sysBlock struct {
	Country string `json:"country"`
}
