package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"headlines/internal/domain"
)

func TestResolve_RequestWins(t *testing.T) {
	got := Resolve("nyt", "fox", "bbc")
	assert.Equal(t, "nyt", got)
}

func TestResolve_CookieWinsWithoutRequest(t *testing.T) {
	got := Resolve("", "fox", "bbc")
	assert.Equal(t, "fox", got)
}

func TestResolve_DefaultWhenNothingSupplied(t *testing.T) {
	got := Resolve("", "", "bbc")
	assert.Equal(t, "bbc", got)
}

func TestResolve_AnyNonEmptyStringCounts(t *testing.T) {
	// Значения не валидируются и не обрезаются: пробел - тоже значение.
	got := Resolve(" ", "fox", "bbc")
	assert.Equal(t, " ", got)
}

func TestResolveAll_IndependentPerName(t *testing.T) {
	defaults := map[string]string{
		domain.PrefPublication:  "bbc",
		domain.PrefCity:         "Aguascalientes, MX",
		domain.PrefCurrencyFrom: "GBP",
		domain.PrefCurrencyTo:   "USD",
	}
	request := map[string]string{domain.PrefPublication: "NYT"}
	cookie := map[string]string{domain.PrefCity: "Paris"}

	prefs := ResolveAll(request, cookie, defaults)

	assert.Equal(t, "NYT", prefs[domain.PrefPublication])
	assert.Equal(t, "Paris", prefs[domain.PrefCity])
	assert.Equal(t, "GBP", prefs[domain.PrefCurrencyFrom])
	assert.Equal(t, "USD", prefs[domain.PrefCurrencyTo])
}

func TestResolveAll_AllDefaults(t *testing.T) {
	defaults := map[string]string{
		domain.PrefPublication:  "bbc",
		domain.PrefCity:         "Aguascalientes, MX",
		domain.PrefCurrencyFrom: "GBP",
		domain.PrefCurrencyTo:   "USD",
	}

	prefs := ResolveAll(nil, nil, defaults)

	for _, name := range domain.PrefNames {
		assert.Equal(t, defaults[name], prefs[name])
		assert.NotEmpty(t, prefs[name])
	}
}
