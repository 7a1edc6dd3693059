package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// HTTPFetcher загружает документы RSS-лент по HTTP.
// Обрабатывает сетевые ошибки и неуспешные HTTP-статусы; контроль времени
// выполнения возлагается на контекст вызывающей стороны.
type HTTPFetcher struct {
	client *http.Client
	log    *slog.Logger
}

// NewHTTPFetcher создает новый экземпляр HTTPFetcher для загрузки RSS-лент.
func NewHTTPFetcher(log *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: http.DefaultClient,
		log:    log,
	}
}

// Fetch выполняет HTTP-запрос для получения RSS-ленты по указанному URL.
// Возвращает тело ответа как io.ReadCloser, которое должно быть закрыто
// после использования. Любой статус кроме 200 считается ошибкой источника.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	log := f.log.With(slog.String("url", url))
	log.Debug("Fetching feed URL")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch url %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		log.Error("Unexpected status code", slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("unexpected status code: %d for url %s", resp.StatusCode, url)
	}
	log.Debug("Successfully fetched feed URL")
	return resp.Body, nil
}
