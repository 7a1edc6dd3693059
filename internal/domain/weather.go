package domain

// Weather представляет сводку текущей погоды для запрошенного города.
// Все четыре поля заполняются вместе; отсутствие погоды у источника
// моделируется nil-указателем, а не пустой структурой.
type Weather struct {
	Description string
	Temperature float64 // градусы Цельсия
	City        string
	Country     string
}
