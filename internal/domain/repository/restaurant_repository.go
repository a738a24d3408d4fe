package repository

import "github.com/dining-map/internal/domain"

// RestaurantRepository - источник Point Store.
// Датасет грузится один раз при старте и после этого только читается.
type RestaurantRepository interface {
	// All возвращает полный упорядоченный набор ресторанов (порядок файла)
	All() []domain.Restaurant

	// Programs возвращает различные программы, встречающиеся в сторе
	Programs() []domain.Program

	// Count - размер стора
	Count() int
}
