package domain

import "time"

// Item представляет отдельную статью из RSS-ленты издания.
// Поля передаются в шаблон страницы без дополнительной обработки.
type Item struct {
	Title       string
	Link        string
	Description string
	PubDate     time.Time
}

// Feed представляет полную RSS-ленту с метаданными и списком статей.
type Feed struct {
	Title       string
	Link        string
	Description string
	Items       []Item
}
