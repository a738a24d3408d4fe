package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/usecase"
)

func TestNavigationUseCase_ResolveTarget(t *testing.T) {
	uc := usecase.NewNavigationUseCase(searchConfig())

	city := domain.CityAggregate{
		Name:   "New York",
		Count:  3,
		Center: domain.Point{Lat: 40.72, Lon: -74.0},
	}

	t.Run("explicit zoom is passed through", func(t *testing.T) {
		target := uc.ResolveTarget(city, 14)
		assert.Equal(t, city.Center, target.Center)
		assert.Equal(t, 14.0, target.Zoom)
	})

	t.Run("non-positive zoom falls back to default", func(t *testing.T) {
		target := uc.ResolveTarget(city, 0)
		assert.Equal(t, city.Center, target.Center)
		assert.Equal(t, 11.0, target.Zoom)
	})
}
