package domain

// Имена пользовательских настроек. Каждая настройка разрешается на каждый
// запрос по схеме: параметр запроса -> cookie -> значение по умолчанию.
const (
	PrefPublication  = "publication"
	PrefCity         = "city"
	PrefCurrencyFrom = "currency_from"
	PrefCurrencyTo   = "currency_to"
)

// PrefNames содержит все распознаваемые имена настроек в фиксированном порядке.
var PrefNames = []string{PrefPublication, PrefCity, PrefCurrencyFrom, PrefCurrencyTo}

// Preferences содержит разрешенные значения настроек посетителя по именам.
// Инвариант: значение никогда не пустое - либо из запроса, либо из cookie,
// либо значение по умолчанию.
type Preferences map[string]string
