package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/domain/repository"
	"github.com/dining-map/internal/pkg/utils"
)

const statsCacheKey = "stats:current"
const statsTopCities = 5

// StatsUseCase - use case для сводной статистики по датасету.
// Стор иммутабелен, так что сводка по сути константа; кеш с TTL просто
// снимает повторную агрегацию с горячего эндпоинта.
type StatsUseCase struct {
	restaurantRepo repository.RestaurantRepository
	cacheRepo      repository.CacheRepository
	cityIndex      *domain.CityIndex
	logger         *zap.Logger
	cacheTTL       time.Duration
}

// NewStatsUseCase - создание нового StatsUseCase.
// cityIndex строится один раз при старте и передаётся готовым.
func NewStatsUseCase(
	restaurantRepo repository.RestaurantRepository,
	cacheRepo repository.CacheRepository,
	cityIndex *domain.CityIndex,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		restaurantRepo: restaurantRepo,
		cacheRepo:      cacheRepo,
		cityIndex:      cityIndex,
		logger:         logger,
		cacheTTL:       cacheTTL,
	}
}

// Summary возвращает сводку: всего ресторанов, по программам, топ городов,
// покрытие датасета (bbox, центр, диагональ в км)
func (uc *StatsUseCase) Summary(ctx context.Context) (*domain.Statistics, error) {
	if uc.cacheRepo != nil {
		if data, err := uc.cacheRepo.Get(ctx, statsCacheKey); err == nil && data != nil {
			var stats domain.Statistics
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
			uc.logger.Warn("Corrupted stats cache entry, recomputing")
		}
	}

	stats := uc.compute()

	if uc.cacheRepo != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := uc.cacheRepo.Set(ctx, statsCacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("Failed to cache stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func (uc *StatsUseCase) compute() *domain.Statistics {
	all := uc.restaurantRepo.All()

	byProgram := make(map[domain.Program]int)
	bbox := domain.BoundingBox{
		MinLat: 90, MinLon: 180,
		MaxLat: -90, MaxLon: -180,
	}
	for _, r := range all {
		byProgram[r.Program]++
		if r.Lat < bbox.MinLat {
			bbox.MinLat = r.Lat
		}
		if r.Lat > bbox.MaxLat {
			bbox.MaxLat = r.Lat
		}
		if r.Lon < bbox.MinLon {
			bbox.MinLon = r.Lon
		}
		if r.Lon > bbox.MaxLon {
			bbox.MaxLon = r.Lon
		}
	}

	topCities := uc.cityIndex.Cities
	if len(topCities) > statsTopCities {
		topCities = topCities[:statsTopCities]
	}
	top := make([]domain.CityCount, len(topCities))
	for i, c := range topCities {
		top[i] = domain.CityCount{City: c.Name, Count: c.Count}
	}

	return &domain.Statistics{
		TotalRestaurants: len(all),
		ByProgram:        byProgram,
		TotalCities:      len(uc.cityIndex.Cities),
		TopCities:        top,
		Coverage: domain.CoverageStats{
			BBox: bbox,
			Center: domain.Point{
				Lat: (bbox.MinLat + bbox.MaxLat) / 2,
				Lon: (bbox.MinLon + bbox.MaxLon) / 2,
			},
			DiagonalKm: utils.HaversineDistance(bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon),
		},
	}
}
