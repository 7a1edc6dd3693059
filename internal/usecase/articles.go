package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"headlines/internal/domain"
)

// ArticlesUseCase реализует получение статей издания по ключу из реестра лент.
// Координирует нормализацию ключа, загрузку и парсинг RSS-документа.
type ArticlesUseCase struct {
	fetcher            FeedFetcher
	parser             FeedParser
	feeds              map[string]string
	defaultPublication string
	log                *slog.Logger
}

// NewArticlesUseCase создает новый экземпляр UseCase для получения статей.
// Принимает зависимости: загрузчик, парсер, реестр лент (ключ издания -> URL)
// и ключ издания по умолчанию. Реестр неизменяем на время жизни процесса.
func NewArticlesUseCase(
	fetcher FeedFetcher,
	parser FeedParser,
	feeds map[string]string,
	defaultPublication string,
	log *slog.Logger,
) *ArticlesUseCase {
	return &ArticlesUseCase{
		fetcher:            fetcher,
		parser:             parser,
		feeds:              feeds,
		defaultPublication: defaultPublication,
		log:                log,
	}
}

// GetArticles возвращает статьи ленты для указанного ключа издания.
// Ключ приводится к нижнему регистру; пустой или неизвестный ключ заменяется
// изданием по умолчанию. Статьи возвращаются в том виде, в каком их отдал
// парсер, без дополнительной обработки.
func (uc *ArticlesUseCase) GetArticles(ctx context.Context, publicationKey string) ([]domain.Item, error) {
	start := time.Now()
	publication := uc.normalizeKey(publicationKey)
	feedURL := uc.feeds[publication]
	log := uc.log.With(
		slog.String("component", "articles"),
		slog.String("publication", publication),
		slog.String("url", feedURL),
	)

	log.Debug("Fetching publication feed")

	reader, err := uc.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		log.Error("Feed fetch failed",
			slog.String("stage", "fetch"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetch failed for %s: %w", publication, err)
	}
	defer reader.Close()

	feed, err := uc.parser.Parse(ctx, reader)
	if err != nil {
		log.Error("Feed parsing failed",
			slog.String("stage", "parse"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("parse failed for %s: %w", publication, err)
	}

	log.Info("Publication feed loaded",
		slog.Int("items_found", len(feed.Items)),
		slog.Duration("duration", time.Since(start)),
	)
	return feed.Items, nil
}

// normalizeKey приводит ключ издания к нижнему регистру и подставляет
// издание по умолчанию для пустого или отсутствующего в реестре ключа.
func (uc *ArticlesUseCase) normalizeKey(publicationKey string) string {
	key := strings.ToLower(publicationKey)
	if key == "" {
		return uc.defaultPublication
	}
	if _, ok := uc.feeds[key]; !ok {
		return uc.defaultPublication
	}
	return key
}
