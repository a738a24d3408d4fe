package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/dining-map/internal/config"
	"github.com/dining-map/internal/domain"
	"github.com/dining-map/internal/domain/repository"
	"github.com/dining-map/internal/pkg/errors"
	"github.com/dining-map/internal/pkg/utils"
)

// ClusterUseCase - use case для кластеризации маркеров.
// Grid/radius алгоритм в экранных пикселях: точки обходятся в порядке
// стора, непокрытая точка открывает кластер и поглощает все оставшиеся
// непокрытые точки в радиусе radiusPx от себя. Центр агрегата - центроид
// участников в проекции (стабилен при панорамировании, меняется только
// вместе с составом). Пересчёт всегда полный, без инкрементальных дельт.
type ClusterUseCase struct {
	cacheRepo repository.CacheRepository
	logger    *zap.Logger

	radiusPx  float64
	tileSize  float64
	splitZoom float64
	maxZoom   float64
	tiers     domain.SizeTiers
	cacheTTL  time.Duration
}

// NewClusterUseCase - создание нового ClusterUseCase.
// cacheRepo может быть nil - тогда каждый запрос пересчитывается.
func NewClusterUseCase(
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cfg config.ClusterConfig,
	ttl time.Duration,
) *ClusterUseCase {
	return &ClusterUseCase{
		cacheRepo: cacheRepo,
		logger:    logger,
		radiusPx:  float64(cfg.RadiusPx),
		tileSize:  float64(cfg.TileSize),
		splitZoom: cfg.SplitZoom,
		maxZoom:   cfg.MaxZoom,
		tiers: domain.SizeTiers{
			Small:  cfg.TierSmall,
			Medium: cfg.TierMedium,
		},
		cacheTTL: ttl,
	}
}

// Clusters разбивает видимый набор на узлы для текущего вьюпорта.
// Каждый ресторан попадает ровно в один узел; одинаковый вход даёт
// одинаковый результат. Вырожденный вьюпорт возвращает пустой набор
// и INVALID_VIEWPORT, не панику.
func (uc *ClusterUseCase) Clusters(
	ctx context.Context,
	entities []domain.Restaurant,
	viewport domain.Viewport,
) ([]domain.ClusterNode, error) {
	if err := uc.validateViewport(viewport); err != nil {
		uc.logger.Warn("Degenerate viewport, returning empty cluster set",
			zap.Float64("zoom", viewport.Zoom),
			zap.Any("bounds", viewport.Bounds),
		)
		return []domain.ClusterNode{}, err
	}

	if len(entities) == 0 {
		return []domain.ClusterNode{}, nil
	}

	// Начиная со splitZoom кластеры не образуются: каждый маркер сам по себе
	if viewport.Zoom >= uc.splitZoom {
		nodes := make([]domain.ClusterNode, len(entities))
		for i := range entities {
			nodes[i] = uc.singleNode(entities[i])
		}
		return nodes, nil
	}

	worldSize := uc.tileSize * math.Pow(2, viewport.Zoom)

	xs := make([]float64, len(entities))
	ys := make([]float64, len(entities))
	for i, e := range entities {
		xs[i], ys[i] = utils.Project(e.Lat, e.Lon, worldSize)
	}

	clustered := make([]bool, len(entities))
	nodes := make([]domain.ClusterNode, 0, len(entities))

	for i := range entities {
		if clustered[i] {
			continue
		}
		clustered[i] = true
		members := []int{i}

		// Поглощение в порядке стора: first-seen, first-clustered
		for j := i + 1; j < len(entities); j++ {
			if clustered[j] {
				continue
			}
			dx := xs[j] - xs[i]
			dy := ys[j] - ys[i]
			if dx*dx+dy*dy <= uc.radiusPx*uc.radiusPx {
				clustered[j] = true
				members = append(members, j)
			}
		}

		if len(members) == 1 {
			nodes = append(nodes, uc.singleNode(entities[i]))
			continue
		}

		var sumX, sumY float64
		restaurants := make([]domain.Restaurant, len(members))
		for k, idx := range members {
			sumX += xs[idx]
			sumY += ys[idx]
			restaurants[k] = entities[idx]
		}
		lat, lon := utils.Unproject(sumX/float64(len(members)), sumY/float64(len(members)), worldSize)

		nodes = append(nodes, domain.ClusterNode{
			Center:      domain.Point{Lat: lat, Lon: lon},
			Count:       len(members),
			Size:        uc.tiers.Tier(len(members)),
			Restaurants: restaurants,
		})
	}

	return nodes, nil
}

// ClustersCached - cache-aside обёртка для HTTP-слоя. filterKey кодирует
// активный фильтр программ; ключ округляет зум и bbox, округление же
// играет роль epsilon из правила "пересчёт при заметном сдвиге".
func (uc *ClusterUseCase) ClustersCached(
	ctx context.Context,
	entities []domain.Restaurant,
	viewport domain.Viewport,
	filterKey string,
) ([]domain.ClusterNode, error) {
	if uc.cacheRepo == nil {
		return uc.Clusters(ctx, entities, viewport)
	}

	key := uc.cacheKey(viewport, filterKey)

	if data, err := uc.cacheRepo.Get(ctx, key); err == nil && data != nil {
		var nodes []domain.ClusterNode
		if err := json.Unmarshal(data, &nodes); err == nil {
			return nodes, nil
		}
		uc.logger.Warn("Corrupted cluster cache entry, recomputing", zap.String("key", key))
	}

	nodes, err := uc.Clusters(ctx, entities, viewport)
	if err != nil {
		return nodes, err
	}

	if data, err := json.Marshal(nodes); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache cluster set", zap.String("key", key), zap.Error(err))
		}
	}

	return nodes, nil
}

func (uc *ClusterUseCase) singleNode(r domain.Restaurant) domain.ClusterNode {
	restaurant := r
	return domain.ClusterNode{
		Center:     r.Location(),
		Count:      1,
		Size:       domain.SizeSingle,
		Restaurant: &restaurant,
	}
}

func (uc *ClusterUseCase) validateViewport(v domain.Viewport) error {
	if math.IsNaN(v.Zoom) || v.Zoom < 0 || v.Zoom > uc.maxZoom {
		return errors.ErrInvalidViewport.WithDetails(map[string]interface{}{
			"zoom": v.Zoom,
		})
	}

	b := v.Bounds
	if !utils.ValidateCoordinates(b.MinLat, b.MinLon) ||
		!utils.ValidateCoordinates(b.MaxLat, b.MaxLon) ||
		b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return errors.ErrInvalidViewport.WithDetails(map[string]interface{}{
			"bounds": fmt.Sprintf("%+v", b),
		})
	}

	return nil
}

// cacheKey: зум с шагом 0.25, bbox с точностью до тысячных градуса
func (uc *ClusterUseCase) cacheKey(v domain.Viewport, filterKey string) string {
	return fmt.Sprintf("clusters:%s:z%.2f:%.3f:%.3f:%.3f:%.3f",
		filterKey,
		math.Round(v.Zoom*4)/4,
		v.Bounds.MinLat, v.Bounds.MinLon,
		v.Bounds.MaxLat, v.Bounds.MaxLon,
	)
}
