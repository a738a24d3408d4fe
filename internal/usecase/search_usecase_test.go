package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dining-map/internal/config"
	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/usecase"
)

func searchConfig() config.SearchConfig {
	return config.SearchConfig{
		QueryLimit:  20,
		BrowseLimit: 15,
		CityZoom:    11,
	}
}

func searchFixture() []domain.Restaurant {
	mk := func(name, city string, lat, lon float64) domain.Restaurant {
		return domain.Restaurant{Name: name, Program: domain.ProgramAmex, Lat: lat, Lon: lon, City: ptrString(city)}
	}
	return []domain.Restaurant{
		mk("R1", "New York", 40.70, -74.00),
		mk("R2", "New York", 40.72, -74.02),
		mk("R3", "New York", 40.74, -73.98),
		mk("R4", "Los Angeles", 34.05, -118.25),
		mk("R5", "Los Angeles", 34.06, -118.26),
		mk("R6", "Chicago", 41.88, -87.63),
		mk("R7", "New Orleans", 29.95, -90.07),
		mk("R8", "Newark", 40.73, -74.17),
		{Name: "R9", Program: domain.ProgramChase, Lat: 35.0, Lon: -100.0}, // без города
	}
}

func TestSearchUseCase_BuildCityIndex(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop(), searchConfig())
	index := uc.BuildCityIndex(searchFixture())

	// Запись без города не образует агрегат
	require.Len(t, index.Cities, 5)

	// Сортировка: количество по убыванию, при равенстве имя по возрастанию
	assert.Equal(t, "New York", index.Cities[0].Name)
	assert.Equal(t, 3, index.Cities[0].Count)
	assert.Equal(t, "Los Angeles", index.Cities[1].Name)
	assert.Equal(t, 2, index.Cities[1].Count)
	assert.Equal(t, "Chicago", index.Cities[2].Name)
	assert.Equal(t, "New Orleans", index.Cities[3].Name)
	assert.Equal(t, "Newark", index.Cities[4].Name)

	// Центр агрегата - среднее координат участников
	assert.InDelta(t, 40.72, index.Cities[0].Center.Lat, 1e-9)
	assert.InDelta(t, -74.0, index.Cities[0].Center.Lon, 1e-9)
}

func TestSearchUseCase_Search(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop(), searchConfig())
	index := uc.BuildCityIndex(searchFixture())

	t.Run("empty query returns top cities by count", func(t *testing.T) {
		result := uc.Search(index, "", 3)
		require.Len(t, result, 3)
		assert.Equal(t, "New York", result[0].Name)
		assert.Equal(t, "Los Angeles", result[1].Name)
		assert.Equal(t, "Chicago", result[2].Name)
	})

	t.Run("whitespace-only query behaves like empty", func(t *testing.T) {
		result := uc.Search(index, "   ", 2)
		require.Len(t, result, 2)
		assert.Equal(t, "New York", result[0].Name)
	})

	t.Run("exact match ranks before other substring matches", func(t *testing.T) {
		result := uc.Search(index, "new york", 5)
		require.NotEmpty(t, result)
		assert.Equal(t, "New York", result[0].Name)
	})

	t.Run("prefix match", func(t *testing.T) {
		result := uc.Search(index, "los", 5)
		require.Len(t, result, 1)
		assert.Equal(t, "Los Angeles", result[0].Name)
		assert.Equal(t, 2, result[0].Count)
	})

	t.Run("prefix matches rank before plain substring matches", func(t *testing.T) {
		// "new" - префикс для New York/New Orleans/Newark; все три вернутся,
		// внутри уровня порядок по количеству
		result := uc.Search(index, "new", 5)
		require.Len(t, result, 3)
		assert.Equal(t, "New York", result[0].Name)
		assert.Equal(t, "New Orleans", result[1].Name)
		assert.Equal(t, "Newark", result[2].Name)
	})

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		result := uc.Search(index, "ANGEL", 5)
		require.Len(t, result, 1)
		assert.Equal(t, "Los Angeles", result[0].Name)
	})

	t.Run("no match is a valid empty result", func(t *testing.T) {
		result := uc.Search(index, "zzz", 5)
		assert.Empty(t, result)
	})

	t.Run("limit truncates", func(t *testing.T) {
		result := uc.Search(index, "new", 1)
		require.Len(t, result, 1)
		assert.Equal(t, "New York", result[0].Name)
	})

	t.Run("zero limit falls back to defaults", func(t *testing.T) {
		assert.Len(t, uc.Search(index, "", 0), 5)    // browse: все 5 < browseLimit
		assert.Len(t, uc.Search(index, "new", 0), 3) // query: все 3 < queryLimit
	})
}

func TestSearchUseCase_Deterministic(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop(), searchConfig())
	index := uc.BuildCityIndex(searchFixture())

	first := uc.Search(index, "new", 5)
	second := uc.Search(index, "new", 5)
	assert.Equal(t, first, second)
}
