package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"headlines/internal/domain"
)

// Config представляет основную конфигурацию сервиса Headlines.
// Содержит настройки сервера, логгера, приложения и внешних источников данных.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Logger  LoggerConfig  `json:"logger"`
	App     AppConfig     `json:"app"`
	Weather WeatherConfig `json:"weather"`
	Rates   RatesConfig   `json:"rates"`
}

// ServerConfig содержит настройки HTTP-сервера приложения.
type ServerConfig struct {
	Address string `json:"address"`
}

// LoggerConfig содержит настройки системы логирования.
// Определяет уровень детализации логов (debug, info, warn, error).
type LoggerConfig struct {
	Level string `json:"level"`
}

// AppConfig содержит настройки бизнес-логики приложения:
// реестр RSS-лент по ключу издания, значения настроек по умолчанию
// и таймаут одного обращения к внешнему источнику.
type AppConfig struct {
	Feeds           map[string]string `json:"feeds"`
	Defaults        map[string]string `json:"defaults"`
	UpstreamTimeout string            `json:"upstream_timeout"`
	CookieTTL       string            `json:"cookie_ttl"`
}

// WeatherConfig содержит параметры источника данных о погоде.
type WeatherConfig struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	Units   string `json:"units"`
}

// RatesConfig содержит параметры источника курсов валют.
type RatesConfig struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// Load загружает конфигурацию из JSON-файла по указанному пути.
// Возвращает ошибку если файл не существует, недоступен для чтения
// или содержит некорректный JSON. Использует значения по умолчанию
// для незаданных полей конфигурации.
func Load(configPath string) (*Config, error) {
	cfg := New()
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := json.Unmarshal(fileData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from file %s: %w", configPath, err)
	}
	return cfg, nil
}

// New создает новый экземпляр Config со значениями по умолчанию.
// Реестр лент и настройки по умолчанию фиксированы на время жизни процесса;
// конфигурационный файл может их переопределить целиком, но не обязан.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		App: AppConfig{
			Feeds: map[string]string{
				"bbc":   "http://feeds.bbci.co.uk/news/rss.xml",
				"nyt":   "https://rss.nytimes.com/services/xml/rss/nyt/World.xml",
				"fox":   "https://moxie.foxnews.com/feedburner/latest.xml",
				"yahoo": "https://www.yahoo.com/news/rss",
				"other": "https://feeds.simplecast.com/54nAGcIl",
			},
			Defaults: map[string]string{
				domain.PrefPublication:  "bbc",
				domain.PrefCity:         "Aguascalientes, MX",
				domain.PrefCurrencyFrom: "GBP",
				domain.PrefCurrencyTo:   "USD",
			},
			UpstreamTimeout: "7s",
			CookieTTL:       "8760h", // 365 дней
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
			Units:   "metric",
		},
		Rates: RatesConfig{
			BaseURL: "http://api.exchangeratesapi.io/v1/latest",
		},
	}
}

// Validate проверяет корректность конфигурации.
// Проверяет наличие издания по умолчанию в реестре лент, корректность URL,
// полноту значений по умолчанию, валидность таймаутов и учетные данные
// внешних источников. Возвращает ошибку с описанием первой найденной проблемы.
func (c *Config) Validate() error {
	if len(c.App.Feeds) == 0 {
		return fmt.Errorf("app.feeds must not be empty")
	}
	for key, feedURL := range c.App.Feeds {
		if key == "" {
			return fmt.Errorf("feed key cannot be empty for url: %s", feedURL)
		}
		if _, err := url.ParseRequestURI(feedURL); err != nil {
			return fmt.Errorf("invalid url in app.feeds for %q: %s", key, feedURL)
		}
	}
	for _, name := range domain.PrefNames {
		if c.App.Defaults[name] == "" {
			return fmt.Errorf("app.defaults is missing a value for %q", name)
		}
	}
	if _, ok := c.App.Feeds[c.App.Defaults[domain.PrefPublication]]; !ok {
		return fmt.Errorf("default publication %q is not present in app.feeds",
			c.App.Defaults[domain.PrefPublication])
	}
	if _, err := time.ParseDuration(c.App.UpstreamTimeout); err != nil {
		return fmt.Errorf("invalid app.upstream_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.App.CookieTTL); err != nil {
		return fmt.Errorf("invalid app.cookie_ttl: %w", err)
	}
	if c.Weather.BaseURL == "" {
		return fmt.Errorf("weather.base_url is not set")
	}
	if c.Weather.APIKey == "" {
		return fmt.Errorf("weather.api_key is not set")
	}
	if c.Rates.BaseURL == "" {
		return fmt.Errorf("rates.base_url is not set")
	}
	if c.Rates.APIKey == "" {
		return fmt.Errorf("rates.api_key is not set")
	}
	return nil
}
