package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headlines/internal/domain"
	"headlines/internal/observability"
)

var testDefaults = map[string]string{
	domain.PrefPublication:  "bbc",
	domain.PrefCity:         "Aguascalientes, MX",
	domain.PrefCurrencyFrom: "GBP",
	domain.PrefCurrencyTo:   "USD",
}

type stubArticles struct {
	items  []domain.Item
	err    error
	gotKey string
}

func (s *stubArticles) GetArticles(ctx context.Context, key string) ([]domain.Item, error) {
	s.gotKey = key
	return s.items, s.err
}

type stubWeather struct {
	weather *domain.Weather
	err     error
	gotCity string
}

func (s *stubWeather) Current(ctx context.Context, city string) (*domain.Weather, error) {
	s.gotCity = city
	return s.weather, s.err
}

type stubRates struct {
	quote   domain.RateQuote
	err     error
	gotFrom string
	gotTo   string
}

func (s *stubRates) Convert(ctx context.Context, from, to string) (domain.RateQuote, error) {
	s.gotFrom = from
	s.gotTo = to
	return s.quote, s.err
}

func newDashboardUC(a *stubArticles, w *stubWeather, r *stubRates) *DashboardUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDashboardUseCase(a, w, r, testDefaults, 5*time.Second,
		observability.NewMetricsForTesting(), logger)
}

func TestBuildDashboard_AllDefaults(t *testing.T) {
	articles := &stubArticles{items: []domain.Item{{Title: "One"}}}
	weather := &stubWeather{weather: &domain.Weather{City: "Aguascalientes", Country: "MX"}}
	rates := &stubRates{quote: domain.RateQuote{Rate: 1.25, Currencies: []string{"GBP", "USD"}}}
	uc := newDashboardUC(articles, weather, rates)

	dash, prefs, err := uc.BuildDashboard(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "bbc", articles.gotKey)
	assert.Equal(t, "Aguascalientes, MX", weather.gotCity)
	assert.Equal(t, "GBP", rates.gotFrom)
	assert.Equal(t, "USD", rates.gotTo)

	assert.Equal(t, []domain.Item{{Title: "One"}}, dash.Articles)
	require.NotNil(t, dash.Weather)
	assert.True(t, dash.RateAvailable)
	assert.Equal(t, 1.25, dash.Rate)
	assert.Equal(t, []string{"GBP", "USD"}, dash.Currencies)

	for _, name := range domain.PrefNames {
		assert.Equal(t, testDefaults[name], prefs[name])
	}
}

func TestBuildDashboard_RequestAndCookieResolution(t *testing.T) {
	articles := &stubArticles{}
	weather := &stubWeather{}
	rates := &stubRates{quote: domain.RateQuote{Rate: 1, Currencies: []string{"GBP", "USD"}}}
	uc := newDashboardUC(articles, weather, rates)

	request := map[string]string{domain.PrefPublication: "NYT"}
	cookie := map[string]string{domain.PrefCity: "Paris"}
	_, prefs, err := uc.BuildDashboard(context.Background(), request, cookie)

	require.NoError(t, err)
	assert.Equal(t, "NYT", articles.gotKey)
	assert.Equal(t, "Paris", weather.gotCity)
	assert.Equal(t, "NYT", prefs[domain.PrefPublication])
	assert.Equal(t, "Paris", prefs[domain.PrefCity])
}

func TestBuildDashboard_UnknownCurrencyDegradesRateOnly(t *testing.T) {
	articles := &stubArticles{items: []domain.Item{{Title: "One"}}}
	weather := &stubWeather{weather: &domain.Weather{City: "Paris"}}
	rates := &stubRates{
		quote: domain.RateQuote{Currencies: []string{"EUR", "GBP", "USD"}},
		err:   fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, "XYZ"),
	}
	uc := newDashboardUC(articles, weather, rates)

	request := map[string]string{domain.PrefCurrencyTo: "XYZ"}
	dash, _, err := uc.BuildDashboard(context.Background(), request, nil)

	require.NoError(t, err)
	assert.False(t, dash.RateAvailable)
	assert.True(t, dash.UnknownCurrency)
	// Список валют известен источнику и сохраняется для выбора на странице.
	assert.Equal(t, []string{"EUR", "GBP", "USD"}, dash.Currencies)
	assert.NotEmpty(t, dash.Articles)
	assert.NotNil(t, dash.Weather)
}

func TestBuildDashboard_AllUpstreamsDownStillBuilds(t *testing.T) {
	articles := &stubArticles{err: errors.New("feed down")}
	weather := &stubWeather{err: errors.New("weather down")}
	rates := &stubRates{err: errors.New("rates down")}
	uc := newDashboardUC(articles, weather, rates)

	dash, prefs, err := uc.BuildDashboard(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, dash.Articles)
	assert.Nil(t, dash.Weather)
	assert.False(t, dash.RateAvailable)
	assert.False(t, dash.UnknownCurrency)
	assert.NotEmpty(t, prefs)
}

func TestBuildDashboard_AbsentWeatherIsNotAnError(t *testing.T) {
	articles := &stubArticles{}
	weather := &stubWeather{weather: nil}
	rates := &stubRates{quote: domain.RateQuote{Rate: 1, Currencies: []string{"GBP", "USD"}}}
	uc := newDashboardUC(articles, weather, rates)

	dash, _, err := uc.BuildDashboard(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Nil(t, dash.Weather)
	assert.True(t, dash.RateAvailable)
}

func TestBuildDashboard_CancelledContext(t *testing.T) {
	uc := newDashboardUC(&stubArticles{}, &stubWeather{}, &stubRates{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dash, _, err := uc.BuildDashboard(ctx, nil, nil)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, dash)
}
