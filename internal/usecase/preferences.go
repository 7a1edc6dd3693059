package usecase

import "headlines/internal/domain"

// Resolve возвращает действующее значение одной настройки посетителя.
// Приоритет строгий, побеждает первое непустое значение:
// параметр запроса -> cookie -> значение по умолчанию.
// Значения не валидируются и не обрезаются: любая непустая строка считается
// заданной. Функция чистая и никогда не завершается ошибкой - значение
// по умолчанию существует для всех распознаваемых имен настроек.
func Resolve(requestValue, cookieValue, defaultValue string) string {
	if requestValue != "" {
		return requestValue
	}
	if cookieValue != "" {
		return cookieValue
	}
	return defaultValue
}

// ResolveAll разрешает все четыре настройки посетителя независимо друг
// от друга. Взаимного порядка между настройками нет - они не зависят
// одна от другой.
func ResolveAll(request, cookie map[string]string, defaults map[string]string) domain.Preferences {
	prefs := make(domain.Preferences, len(domain.PrefNames))
	for _, name := range domain.PrefNames {
		prefs[name] = Resolve(request[name], cookie[name], defaults[name])
	}
	return prefs
}
