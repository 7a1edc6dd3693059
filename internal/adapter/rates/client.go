package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"headlines/internal/config"
	"headlines/internal/domain"
)

// Client получает таблицу текущих курсов валют и считает кросс-курсы.
// Источник отдает курсы относительно общей базовой валюты, поэтому курс
// пары вычисляется делением двух значений таблицы.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создает клиент источника курсов валют на основе конфигурации.
func NewClient(cfg config.RatesConfig, log *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: http.DefaultClient,
		log:        log,
	}
}

// Convert возвращает кросс-курс пары валют и полный отсортированный список
// кодов, известных источнику. Коды приводятся к верхнему регистру перед
// поиском в таблице. Отсутствие кода в таблице - это domain.ErrUnknownCurrency,
// а не сетевой сбой; список известных кодов при этом все равно возвращается,
// чтобы страница могла предложить выбор валюты.
func (c *Client) Convert(ctx context.Context, from, to string) (domain.RateQuote, error) {
	table, err := c.fetchTable(ctx)
	if err != nil {
		return domain.RateQuote{}, err
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	quote := domain.RateQuote{Currencies: codes}

	fromValue, ok := table[strings.ToUpper(from)]
	if !ok {
		return quote, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, from)
	}
	toValue, ok := table[strings.ToUpper(to)]
	if !ok {
		return quote, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, to)
	}
	quote.Rate = toValue / fromValue
	return quote, nil
}

// fetchTable загружает полную таблицу курсов с единственного фиксированного
// эндпоинта источника, без параметра даты.
func (c *Client) fetchTable(ctx context.Context) (map[string]float64, error) {
	params := url.Values{
		"access_key": {c.apiKey},
		"format":     {"1"},
	}
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("Rates API returned non-200 status",
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("rates API error: status %d: %s", resp.StatusCode, body)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rates response contains no rates table")
	}
	return parsed.Rates, nil
}

// Тип ответа источника курсов.

type response struct {
	Rates map[string]float64 `json:"rates"`
}
