package usecase_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dining-map/internal/config"
	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/domain/repository"
	"github.com/dining-map/internal/pkg/errors"
	"github.com/dining-map/internal/usecase"
)

func clusterConfig() config.ClusterConfig {
	return config.ClusterConfig{
		RadiusPx:   60,
		TileSize:   512,
		SplitZoom:  17,
		MaxZoom:    22,
		TierSmall:  10,
		TierMedium: 50,
	}
}

func newClusterUC(cacheRepo repository.CacheRepository) *usecase.ClusterUseCase {
	return usecase.NewClusterUseCase(cacheRepo, zap.NewNop(), clusterConfig(), time.Minute)
}

func cityViewport(zoom float64) domain.Viewport {
	return domain.Viewport{
		Center: domain.Point{Lat: 40.0, Lon: -95.0},
		Zoom:   zoom,
		Bounds: domain.BoundingBox{MinLat: 20.0, MinLon: -130.0, MaxLat: 50.0, MaxLon: -60.0},
	}
}

func TestClusterUseCase_SingleEntity(t *testing.T) {
	uc := newClusterUC(nil)

	entities := []domain.Restaurant{
		{Name: "A", Program: domain.ProgramAmex, Lat: 40.7, Lon: -74.0, City: ptrString("New York")},
	}

	nodes, err := uc.Clusters(context.Background(), entities, cityViewport(10))

	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, 1, nodes[0].Count)
	assert.Equal(t, domain.SizeSingle, nodes[0].Size)
	assert.InDelta(t, 40.7, nodes[0].Center.Lat, 1e-9)
	assert.InDelta(t, -74.0, nodes[0].Center.Lon, 1e-9)
	require.NotNil(t, nodes[0].Restaurant)
	assert.Equal(t, "A", nodes[0].Restaurant.Name)
}

func TestClusterUseCase_Partition(t *testing.T) {
	uc := newClusterUC(nil)

	// Две плотные группы (Манхэттен и LA) плюс одиночка в Чикаго
	entities := []domain.Restaurant{
		{Name: "NY1", Program: domain.ProgramAmex, Lat: 40.7000, Lon: -74.0000},
		{Name: "NY2", Program: domain.ProgramChase, Lat: 40.7005, Lon: -74.0004},
		{Name: "NY3", Program: domain.ProgramAmex, Lat: 40.7008, Lon: -73.9995},
		{Name: "LA1", Program: domain.ProgramChase, Lat: 34.0500, Lon: -118.2500},
		{Name: "LA2", Program: domain.ProgramAmex, Lat: 34.0504, Lon: -118.2504},
		{Name: "CHI", Program: domain.ProgramAmex, Lat: 41.8800, Lon: -87.6300},
	}

	nodes, err := uc.Clusters(context.Background(), entities, cityViewport(4))
	require.NoError(t, err)

	// Каждая точка ровно в одном узле
	total := 0
	seen := make(map[string]int)
	for _, n := range nodes {
		total += n.Count
		for _, r := range n.Members() {
			seen[r.Name]++
		}
	}
	assert.Equal(t, len(entities), total)
	for _, e := range entities {
		assert.Equal(t, 1, seen[e.Name], "entity %s must appear exactly once", e.Name)
	}

	// На низком зуме соседние группы схлопываются в агрегаты
	assert.Len(t, nodes, 3)
	assert.Equal(t, 3, nodes[0].Count)
	assert.Equal(t, 2, nodes[1].Count)
	assert.Equal(t, 1, nodes[2].Count)
}

func TestClusterUseCase_Deterministic(t *testing.T) {
	uc := newClusterUC(nil)
	entities := storeFixture()
	viewport := cityViewport(6)

	first, err := uc.Clusters(context.Background(), entities, viewport)
	require.NoError(t, err)
	second, err := uc.Clusters(context.Background(), entities, viewport)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClusterUseCase_SplitZoom(t *testing.T) {
	uc := newClusterUC(nil)

	// Точки на одном пятачке: ниже splitZoom слились бы в один кластер
	entities := []domain.Restaurant{
		{Name: "NY1", Program: domain.ProgramAmex, Lat: 40.7000, Lon: -74.0000},
		{Name: "NY2", Program: domain.ProgramChase, Lat: 40.7001, Lon: -74.0001},
	}

	nodes, err := uc.Clusters(context.Background(), entities, cityViewport(18))
	require.NoError(t, err)

	assert.Len(t, nodes, 2)
	for _, n := range nodes {
		assert.Equal(t, 1, n.Count)
		assert.Equal(t, domain.SizeSingle, n.Size)
	}
}

func TestClusterUseCase_ClusterCenterIsCentroid(t *testing.T) {
	uc := newClusterUC(nil)

	entities := []domain.Restaurant{
		{Name: "NY1", Program: domain.ProgramAmex, Lat: 40.7000, Lon: -74.0000},
		{Name: "NY2", Program: domain.ProgramChase, Lat: 40.7004, Lon: -74.0004},
	}

	nodes, err := uc.Clusters(context.Background(), entities, cityViewport(4))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, 2, nodes[0].Count)

	// Центроид лежит между участниками
	assert.Greater(t, nodes[0].Center.Lat, 40.7000)
	assert.Less(t, nodes[0].Center.Lat, 40.7004)
	assert.Greater(t, nodes[0].Center.Lon, -74.0004)
	assert.Less(t, nodes[0].Center.Lon, -74.0000)
}

func TestClusterUseCase_InvalidViewport(t *testing.T) {
	uc := newClusterUC(nil)
	entities := storeFixture()

	cases := []struct {
		name     string
		viewport domain.Viewport
	}{
		{
			name: "NaN zoom",
			viewport: domain.Viewport{
				Zoom:   math.NaN(),
				Bounds: domain.BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1},
			},
		},
		{
			name: "NaN bounds",
			viewport: domain.Viewport{
				Zoom:   10,
				Bounds: domain.BoundingBox{MinLat: math.NaN(), MinLon: 0, MaxLat: 1, MaxLon: 1},
			},
		},
		{
			name: "inverted bounds",
			viewport: domain.Viewport{
				Zoom:   10,
				Bounds: domain.BoundingBox{MinLat: 50, MinLon: 0, MaxLat: 20, MaxLon: 1},
			},
		},
		{
			name: "latitude out of range",
			viewport: domain.Viewport{
				Zoom:   10,
				Bounds: domain.BoundingBox{MinLat: -120, MinLon: 0, MaxLat: 1, MaxLon: 1},
			},
		},
		{
			name: "zoom out of range",
			viewport: domain.Viewport{
				Zoom:   99,
				Bounds: domain.BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := uc.Clusters(context.Background(), entities, tc.viewport)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidViewport))
			assert.Empty(t, nodes)
		})
	}
}

func TestClusterUseCase_EmptyInput(t *testing.T) {
	uc := newClusterUC(nil)

	nodes, err := uc.Clusters(context.Background(), nil, cityViewport(10))
	assert.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestClusterUseCase_Cached(t *testing.T) {
	ctx := context.Background()
	entities := storeFixture()
	viewport := cityViewport(6)

	t.Run("miss computes and stores", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newClusterUC(mockCache)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)
		mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)

		nodes, err := uc.ClustersCached(ctx, entities, viewport, "all")
		assert.NoError(t, err)
		assert.NotEmpty(t, nodes)

		mockCache.AssertExpectations(t)
	})

	t.Run("hit skips recompute", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newClusterUC(mockCache)

		cached := []domain.ClusterNode{
			{Center: domain.Point{Lat: 1, Lon: 2}, Count: 7, Size: domain.SizeSmall},
		}
		data, err := json.Marshal(cached)
		require.NoError(t, err)

		mockCache.On("Get", ctx, mock.Anything).Return(data, nil)

		nodes, err := uc.ClustersCached(ctx, entities, viewport, "all")
		assert.NoError(t, err)
		assert.Equal(t, cached, nodes)

		mockCache.AssertExpectations(t)
	})

	t.Run("cache failure degrades to recompute", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := newClusterUC(mockCache)

		mockCache.On("Get", ctx, mock.Anything).Return(nil, stderrors.New("redis down"))
		mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(stderrors.New("redis down"))

		nodes, err := uc.ClustersCached(ctx, entities, viewport, "all")
		assert.NoError(t, err)
		assert.NotEmpty(t, nodes)
	})
}
