package app

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"headlines/internal/adapter/fetcher"
	"headlines/internal/adapter/parser"
	"headlines/internal/adapter/rates"
	"headlines/internal/adapter/weather"
	"headlines/internal/config"
	"headlines/internal/domain"
	"headlines/internal/logger"
	"headlines/internal/observability"
	server "headlines/internal/transport/http"
	"headlines/internal/usecase"
)

const templateFile = "web/templates/home.html"

// App представляет основное приложение Headlines.
// Координирует работу всех компонентов: HTTP-сервера, источников данных
// и системы логирования. Обеспечивает graceful startup и shutdown.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	server   *http.Server
	stopChan chan os.Signal
	wg       sync.WaitGroup
}

// New создает и инициализирует новый экземпляр приложения Headlines.
// Выполняет настройку логгера, метрик, клиентов внешних источников,
// шаблона страницы и всех зависимостей между компонентами.
// Возвращает ошибку в случае сбоя любой из инициализационных процедур.
func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(appLogger)

	upstreamTimeout, err := time.ParseDuration(cfg.App.UpstreamTimeout)
	if err != nil {
		return nil, fmt.Errorf("bad upstream timeout: %w", err)
	}
	cookieTTL, err := time.ParseDuration(cfg.App.CookieTTL)
	if err != nil {
		return nil, fmt.Errorf("bad cookie ttl: %w", err)
	}

	tmpl, err := template.ParseFiles(templateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	metrics := observability.NewMetrics()

	httpFetcher := fetcher.NewHTTPFetcher(appLogger)

	xmlParser := parser.NewXMLParser(appLogger)

	weatherClient := weather.NewClient(cfg.Weather, appLogger)

	ratesClient := rates.NewClient(cfg.Rates, appLogger)

	articlesUC := usecase.NewArticlesUseCase(
		httpFetcher,
		xmlParser,
		cfg.App.Feeds,
		cfg.App.Defaults[domain.PrefPublication],
		appLogger,
	)

	dashboardUC := usecase.NewDashboardUseCase(
		articlesUC,
		weatherClient,
		ratesClient,
		cfg.App.Defaults,
		upstreamTimeout,
		metrics,
		appLogger,
	)

	handler := server.NewHandler(appLogger, dashboardUC, tmpl, clockwork.NewRealClock(), cookieTTL)

	router := server.NewServer(appLogger, handler)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	return &App{
		config:   cfg,
		logger:   appLogger,
		server:   httpServer,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Run запускает основное приложение Headlines.
// Поднимает HTTP-сервер и обрабатывает сигналы завершения работы.
// Метод блокируется до получения сигнала завершения.
// Возвращает ошибку в случае неудачи при запуске сервера.
func (a *App) Run() error {
	a.logger.Info("Starting Headlines",
		slog.String("component", "app"),
		slog.Int("feed_count", len(a.config.App.Feeds)),
		slog.String("upstream_timeout", a.config.App.UpstreamTimeout),
	)
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	defer listener.Close()
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed", slog.Any("error", err))
		}
	}()
	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-a.stopChan
	a.logger.Info("Shutdown signal received",
		slog.String("component", "app"),
		slog.String("signal", sig.String()),
	)
	return a.Shutdown()
}

// Shutdown выполняет graceful shutdown приложения.
// Завершает HTTP-сервер с таймаутом 10 секунд и ожидает завершения
// всех горутин. Возвращает ошибку при проблемах завершения сервера.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully")
	return nil
}
