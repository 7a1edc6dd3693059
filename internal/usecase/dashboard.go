package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"headlines/internal/domain"
	"headlines/internal/observability"
)

// ArticlesGetter определяет интерфейс получения статей по ключу издания.
type ArticlesGetter interface {
	GetArticles(ctx context.Context, publicationKey string) ([]domain.Item, error)
}

// WeatherGetter определяет интерфейс источника текущей погоды.
// Возвращает nil без ошибки, если источник не нашел погоду для запроса.
type WeatherGetter interface {
	Current(ctx context.Context, locationQuery string) (*domain.Weather, error)
}

// RateGetter определяет интерфейс источника курсов валют.
type RateGetter interface {
	Convert(ctx context.Context, from, to string) (domain.RateQuote, error)
}

// DashboardUseCase собирает домашнюю страницу: разрешает настройки посетителя,
// опрашивает три независимых источника и объединяет результаты.
// Сбой любого источника деградирует только его секцию - страница собирается
// всегда, частично пустой, но целиком.
type DashboardUseCase struct {
	articles ArticlesGetter
	weather  WeatherGetter
	rates    RateGetter
	defaults map[string]string
	timeout  time.Duration
	metrics  *observability.Metrics
	log      *slog.Logger
}

// NewDashboardUseCase создает новый экземпляр UseCase сборки страницы.
// Принимает три источника данных, значения настроек по умолчанию,
// таймаут одного обращения к источнику, метрики и логгер.
func NewDashboardUseCase(
	articles ArticlesGetter,
	weather WeatherGetter,
	rates RateGetter,
	defaults map[string]string,
	timeout time.Duration,
	metrics *observability.Metrics,
	log *slog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		articles: articles,
		weather:  weather,
		rates:    rates,
		defaults: defaults,
		timeout:  timeout,
		metrics:  metrics,
		log:      log,
	}
}

// BuildDashboard разрешает четыре настройки посетителя и собирает данные
// страницы. Три источника опрашиваются параллельно, каждый под собственным
// таймаутом от контекста запроса: источники не связаны по надежности, общий
// бюджет времени им не нужен. Возвращает собранную страницу и разрешенные
// значения настроек - вызывающая сторона сохраняет их обратно посетителю
// (все четыре, на каждый запрос, продлевая срок жизни cookie).
func (uc *DashboardUseCase) BuildDashboard(
	ctx context.Context,
	request, cookie map[string]string,
) (*domain.Dashboard, domain.Preferences, error) {
	start := time.Now()
	uc.metrics.DashboardRequests.Inc()
	prefs := ResolveAll(request, cookie, uc.defaults)
	log := uc.log.With(slog.String("component", "dashboard"))
	log.Info("Dashboard build started",
		slog.String("publication", prefs[domain.PrefPublication]),
		slog.String("city", prefs[domain.PrefCity]),
		slog.String("pair", prefs[domain.PrefCurrencyFrom]+"/"+prefs[domain.PrefCurrencyTo]),
	)

	dash := &domain.Dashboard{
		CurrencyFrom: prefs[domain.PrefCurrencyFrom],
		CurrencyTo:   prefs[domain.PrefCurrencyTo],
	}

	// Каждая горутина пишет только в свою секцию dash; общих изменяемых
	// данных между тремя источниками нет, синхронизация - только WaitGroup.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		dash.Articles = uc.fetchArticles(ctx, prefs[domain.PrefPublication])
	}()
	go func() {
		defer wg.Done()
		dash.Weather = uc.fetchWeather(ctx, prefs[domain.PrefCity])
	}()
	go func() {
		defer wg.Done()
		uc.fetchRate(ctx, dash)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	log.Info("Dashboard build completed",
		slog.Int("articles", len(dash.Articles)),
		slog.Bool("weather_present", dash.Weather != nil),
		slog.Bool("rate_available", dash.RateAvailable),
		slog.Duration("duration", time.Since(start)),
	)
	return dash, prefs, nil
}

// fetchArticles загружает статьи издания. При сбое источника секция
// деградирует до пустого списка.
func (uc *DashboardUseCase) fetchArticles(ctx context.Context, publication string) []domain.Item {
	opCtx, opCancel := context.WithTimeout(ctx, uc.timeout)
	defer opCancel()
	start := time.Now()
	items, err := uc.articles.GetArticles(opCtx, publication)
	uc.metrics.UpstreamDuration.WithLabelValues("feed").Observe(time.Since(start).Seconds())
	if err != nil {
		uc.metrics.UpstreamRequests.WithLabelValues("feed", "error").Inc()
		uc.metrics.DegradedSections.WithLabelValues("articles").Inc()
		uc.log.Error("Articles section degraded",
			slog.String("component", "dashboard"),
			slog.String("publication", publication),
			slog.Any("error", err),
		)
		return nil
	}
	uc.metrics.UpstreamRequests.WithLabelValues("feed", "success").Inc()
	return items
}

// fetchWeather загружает сводку погоды. Отсутствие погоды у источника
// (неизвестный город) - штатный пустой результат, не деградация.
func (uc *DashboardUseCase) fetchWeather(ctx context.Context, city string) *domain.Weather {
	opCtx, opCancel := context.WithTimeout(ctx, uc.timeout)
	defer opCancel()
	start := time.Now()
	weather, err := uc.weather.Current(opCtx, city)
	uc.metrics.UpstreamDuration.WithLabelValues("weather").Observe(time.Since(start).Seconds())
	if err != nil {
		uc.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		uc.metrics.DegradedSections.WithLabelValues("weather").Inc()
		uc.log.Error("Weather section degraded",
			slog.String("component", "dashboard"),
			slog.String("city", city),
			slog.Any("error", err),
		)
		return nil
	}
	if weather == nil {
		uc.metrics.UpstreamRequests.WithLabelValues("weather", "empty").Inc()
		return nil
	}
	uc.metrics.UpstreamRequests.WithLabelValues("weather", "success").Inc()
	return weather
}

// fetchRate загружает кросс-курс и список известных валют, заполняя секцию
// курса напрямую. Неизвестный код валюты отличается от недоступности
// источника: список валют при этом сохраняется, а страница помечает код
// как нераспознанный.
func (uc *DashboardUseCase) fetchRate(ctx context.Context, dash *domain.Dashboard) {
	opCtx, opCancel := context.WithTimeout(ctx, uc.timeout)
	defer opCancel()
	start := time.Now()
	quote, err := uc.rates.Convert(opCtx, dash.CurrencyFrom, dash.CurrencyTo)
	uc.metrics.UpstreamDuration.WithLabelValues("rates").Observe(time.Since(start).Seconds())
	dash.Currencies = quote.Currencies
	if err != nil {
		uc.metrics.DegradedSections.WithLabelValues("rate").Inc()
		if errors.Is(err, domain.ErrUnknownCurrency) {
			uc.metrics.UpstreamRequests.WithLabelValues("rates", "success").Inc()
			dash.UnknownCurrency = true
			uc.log.Warn("Unknown currency code in preferences",
				slog.String("component", "dashboard"),
				slog.String("pair", dash.CurrencyFrom+"/"+dash.CurrencyTo),
				slog.Any("error", err),
			)
			return
		}
		uc.metrics.UpstreamRequests.WithLabelValues("rates", "error").Inc()
		uc.log.Error("Rate section degraded",
			slog.String("component", "dashboard"),
			slog.Any("error", err),
		)
		return
	}
	uc.metrics.UpstreamRequests.WithLabelValues("rates", "success").Inc()
	dash.Rate = quote.Rate
	dash.RateAvailable = true
}
