package usecase

import (
	"github.com/dining-map/internal/config"
	"github.com/dining-map/internal/domain"
)

// NavigationUseCase - мост между выбранным городом и целью вьюпорта.
// Чистое отображение без состояния и I/O: анимацией перелёта владеет
// рендер-виджет на стороне клиента.
type NavigationUseCase struct {
	defaultZoom float64
}

// NewNavigationUseCase - создание нового NavigationUseCase
func NewNavigationUseCase(cfg config.SearchConfig) *NavigationUseCase {
	return &NavigationUseCase{
		defaultZoom: cfg.CityZoom,
	}
}

// ResolveTarget переводит выбранный город в цель вьюпорта.
// zoom <= 0 означает "возьми зум по умолчанию".
func (uc *NavigationUseCase) ResolveTarget(city domain.CityAggregate, zoom float64) domain.ViewportTarget {
	if zoom <= 0 {
		zoom = uc.defaultZoom
	}
	return domain.ViewportTarget{
		Center: city.Center,
		Zoom:   zoom,
	}
}
