package usecase

import (
	"context"
	"io"

	"headlines/internal/domain"
)

// FeedFetcher определяет интерфейс для загрузки документов RSS-лент
// из внешних источников. Возвращает io.ReadCloser, который должен быть
// закрыт после использования.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FeedParser определяет интерфейс для парсинга RSS-данных в доменную модель.
type FeedParser interface {
	Parse(ctx context.Context, reader io.Reader) (*domain.Feed, error)
}
