package domain

import "errors"

// ErrUnknownCurrency возвращается, когда код валюты отсутствует в таблице
// курсов источника. Это штатный ответ здорового источника на неизвестный
// пользовательский код, а не сетевой сбой - проверяется через errors.Is.
var ErrUnknownCurrency = errors.New("unknown currency code")

// RateQuote содержит кросс-курс пары валют и полный список известных
// источнику кодов валют (отсортированный по возрастанию).
// Курс считается как toValue/fromValue относительно общей базовой валюты.
type RateQuote struct {
	Rate       float64
	Currencies []string
}
