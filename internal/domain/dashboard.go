package domain

// Dashboard - собранные данные домашней страницы.
// Любая секция может деградировать независимо от остальных: пустой список
// статей, nil-погода или недоступный курс не мешают отрисовке страницы.
type Dashboard struct {
	Articles     []Item
	Weather      *Weather
	CurrencyFrom string
	CurrencyTo   string
	Rate         float64
	// RateAvailable равен false, если источник курсов недоступен
	// или один из кодов валют ему неизвестен.
	RateAvailable bool
	// UnknownCurrency равен true, когда курс недоступен именно из-за
	// нераспознанного кода валюты, а не из-за сбоя источника.
	UnknownCurrency bool
	Currencies      []string
}
